package ledger

import "sync"

// MockLedger is a mock implementation of the GameLedger interface for testing.
// It is safe for concurrent use.
type MockLedger struct {
	mu sync.Mutex

	// Spies for method calls
	AppendFunc            func(game *Game) (*Game, error)
	ListByPlayerFunc      func(playerID string) ([]Game, error)
	DeleteAllByPlayerFunc func(playerID string) (int64, error)
	AllGamesFunc          func() ([]Game, error)
	ClearFunc             func() error

	// Call records
	AppendCalls            []*Game
	ListByPlayerCalls      []string
	DeleteAllByPlayerCalls []string
	AllGamesCalls          int
}

// NewMock creates a new mock instance.
func NewMock() *MockLedger {
	return &MockLedger{}
}

// Reset clears all call records.
func (m *MockLedger) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendCalls = nil
	m.ListByPlayerCalls = nil
	m.DeleteAllByPlayerCalls = nil
	m.AllGamesCalls = 0
}

func (m *MockLedger) Append(game *Game) (*Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendCalls = append(m.AppendCalls, game)
	if m.AppendFunc != nil {
		return m.AppendFunc(game)
	}
	if game.ID == "" {
		game.ID = "mock-game"
	}
	return game, nil
}

func (m *MockLedger) ListByPlayer(playerID string) ([]Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListByPlayerCalls = append(m.ListByPlayerCalls, playerID)
	if m.ListByPlayerFunc != nil {
		return m.ListByPlayerFunc(playerID)
	}
	return nil, nil
}

func (m *MockLedger) DeleteAllByPlayer(playerID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteAllByPlayerCalls = append(m.DeleteAllByPlayerCalls, playerID)
	if m.DeleteAllByPlayerFunc != nil {
		return m.DeleteAllByPlayerFunc(playerID)
	}
	return 0, nil
}

func (m *MockLedger) AllGames() ([]Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AllGamesCalls++
	if m.AllGamesFunc != nil {
		return m.AllGamesFunc()
	}
	return nil, nil
}

func (m *MockLedger) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	return nil
}
