package dice

import "sync"

// MockRoller is a mock implementation of the Roller interface for testing.
// It is safe for concurrent use.
type MockRoller struct {
	mu sync.Mutex

	// RollFunc overrides the default behavior when set.
	RollFunc func() (int, int)

	// Rolls is consumed one pair per call when RollFunc is nil.
	Rolls [][2]int

	// RollCalls counts the calls made.
	RollCalls int
}

// NewMock creates a new mock Roller.
func NewMock(rolls ...[2]int) *MockRoller {
	return &MockRoller{Rolls: rolls}
}

func (m *MockRoller) Roll() (int, int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RollCalls++
	if m.RollFunc != nil {
		return m.RollFunc()
	}
	if len(m.Rolls) > 0 {
		next := m.Rolls[0]
		m.Rolls = m.Rolls[1:]
		return next[0], next[1]
	}
	return 1, 2
}
