package ledger

import (
	"database/sql"
	"sync"
)

// Game is one recorded dice roll. Immutable once appended; destroyed only in
// bulk via DeleteAllByPlayer.
type Game struct {
	ID        string `json:"id"`
	PlayerID  string `json:"playerId"`
	Dice1     int    `json:"dice1"`
	Dice2     int    `json:"dice2"`
	Result    bool   `json:"result"`
	CreatedAt int64  `json:"createdAt"`
}

// store handles all database operations for the game ledger.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}
