package players

import (
	"database/sql"
	"errors"
	"sync"
)

// AnonymousName is the placeholder assigned when a player registers
// without supplying a name.
const AnonymousName = "ANONYMOUS"

var (
	// ErrPlayerNotFound is returned when the referenced player id does not exist.
	ErrPlayerNotFound = errors.New("player not found")

	// ErrInvalidName is returned when a rename does not satisfy the
	// accepted character rule (letters and whitespace only).
	ErrInvalidName = errors.New("invalid player name")
)

// Player represents a registered player.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Anonymous bool   `json:"anonymous"`
	CreatedAt int64  `json:"createdAt"`
}

// store handles all database operations for the player directory.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
