package players

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// nameRule is the accepted character rule for explicit names: letters and
// whitespace only, at least one letter.
var nameRule = regexp.MustCompile(`^[\p{L}\s]*\p{L}[\p{L}\s]*$`)

// New creates a new PlayerStore backed by the given database.
func New(db *sql.DB) PlayerStore {
	return &store{
		db: db,
	}
}

// Register creates a new player. An absent or blank name gets the anonymous
// placeholder; name uniqueness is not enforced.
func (s *store) Register(name string) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	player := &Player{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now().Unix(),
	}
	if player.Name == "" {
		player.Name = AnonymousName
		player.Anonymous = true
	}

	_, err := s.db.Exec(
		"INSERT INTO players (id, name, anonymous, created_at) VALUES (?, ?, ?, ?)",
		player.ID, player.Name, player.Anonymous, player.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to register player: %w", err)
	}

	log.Info("Registered new player", "playerID", player.ID, "name", player.Name, "anonymous", player.Anonymous)
	return player, nil
}

// Rename updates a player's display name. The new name must pass the
// letters-and-whitespace rule; a successful rename clears the anonymous flag.
func (s *store) Rename(id, newName string) (*Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	newName = strings.TrimSpace(newName)
	if !nameRule.MatchString(newName) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, newName)
	}

	res, err := s.db.Exec("UPDATE players SET name = ?, anonymous = 0 WHERE id = ?", newName, id)
	if err != nil {
		return nil, fmt.Errorf("failed to rename player %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to rename player %s: %w", id, err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("player %s: %w", id, ErrPlayerNotFound)
	}

	log.Info("Renamed player", "playerID", id, "name", newName)
	return s.getLocked(id)
}

// Get retrieves a single player by id.
func (s *store) Get(id string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getLocked(id)
}

func (s *store) getLocked(id string) (*Player, error) {
	var p Player
	err := s.db.QueryRow(
		"SELECT id, name, anonymous, created_at FROM players WHERE id = ?", id,
	).Scan(&p.ID, &p.Name, &p.Anonymous, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("player %s: %w", id, ErrPlayerNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query player %s: %w", id, err)
	}
	return &p, nil
}

// GetAll returns every registered player ordered by registration time.
func (s *store) GetAll() ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, anonymous, created_at FROM players ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	var all []Player
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name, &p.Anonymous, &p.CreatedAt); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		all = append(all, p)
	}
	return all, rows.Err()
}

func (s *store) IsKnownPlayer(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM players WHERE id = ?)", id).Scan(&exists)
	if err != nil {
		log.Error("Failed to check if player exists", "error", err, "playerID", id)
		return false
	}
	return exists
}

// Clear removes every player. Used by the ops clear endpoint and tests.
func (s *store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM players"); err != nil {
		return fmt.Errorf("failed to clear players: %w", err)
	}
	return nil
}
