package ledger

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new GameLedger backed by the given database.
func New(db *sql.DB) GameLedger {
	return &store{
		db: db,
	}
}

// Append stores one game. ID and CreatedAt are assigned here when unset, so
// timestamps are taken under the write lock and never decrease within a
// player's sequence. A well-formed game is never rejected.
func (s *store) Append(game *Game) (*Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if game.ID == "" {
		game.ID = uuid.NewString()
	}
	if game.CreatedAt == 0 {
		game.CreatedAt = time.Now().UnixNano()
	}

	_, err := s.db.Exec(
		"INSERT INTO games (id, player_id, dice1, dice2, result, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		game.ID, game.PlayerID, game.Dice1, game.Dice2, game.Result, game.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append game for player %s: %w", game.PlayerID, err)
	}

	log.Debug("Appended game", "gameID", game.ID, "playerID", game.PlayerID, "dice1", game.Dice1, "dice2", game.Dice2, "result", game.Result)
	return game, nil
}

// ListByPlayer returns the player's games ordered by creation time ascending.
// A player with no games (or an unknown player) yields an empty slice.
func (s *store) ListByPlayer(playerID string) ([]Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT id, player_id, dice1, dice2, result, created_at FROM games WHERE player_id = ? ORDER BY created_at, id",
		playerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list games for player %s: %w", playerID, err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// DeleteAllByPlayer removes every game owned by the player and reports how
// many were deleted. Idempotent: a second call returns 0, not an error.
func (s *store) DeleteAllByPlayer(playerID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM games WHERE player_id = ?", playerID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete games for player %s: %w", playerID, err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to delete games for player %s: %w", playerID, err)
	}

	log.Info("Deleted games for player", "playerID", playerID, "count", deleted)
	return deleted, nil
}

// AllGames returns the full ledger. Reads reflect every append committed at
// call time.
func (s *store) AllGames() ([]Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, player_id, dice1, dice2, result, created_at FROM games ORDER BY created_at, id")
	if err != nil {
		return nil, fmt.Errorf("failed to scan ledger: %w", err)
	}
	defer rows.Close()

	return scanGames(rows)
}

// Clear removes every game. Used by the ops clear endpoint and tests.
func (s *store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec("DELETE FROM games"); err != nil {
		return fmt.Errorf("failed to clear games: %w", err)
	}
	return nil
}

func scanGames(rows *sql.Rows) ([]Game, error) {
	var games []Game
	for rows.Next() {
		var g Game
		if err := rows.Scan(&g.ID, &g.PlayerID, &g.Dice1, &g.Dice2, &g.Result, &g.CreatedAt); err != nil {
			// A row that cannot be read means the ledger is corrupt. Dropping it
			// would silently skew the ranking, so fail the whole read instead.
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}
		games = append(games, g)
	}
	return games, rows.Err()
}
