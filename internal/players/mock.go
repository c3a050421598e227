package players

import "sync"

// MockStore is a mock implementation of the PlayerStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	RegisterFunc      func(name string) (*Player, error)
	RenameFunc        func(id, newName string) (*Player, error)
	GetFunc           func(id string) (*Player, error)
	GetAllFunc        func() ([]Player, error)
	IsKnownPlayerFunc func(id string) bool
	ClearFunc         func() error

	// Call records
	RegisterCalls []string
	RenameCalls   []struct {
		ID      string
		NewName string
	}
	GetCalls []string
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterCalls = nil
	m.RenameCalls = nil
	m.GetCalls = nil
}

func (m *MockStore) Register(name string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RegisterCalls = append(m.RegisterCalls, name)
	if m.RegisterFunc != nil {
		return m.RegisterFunc(name)
	}
	return &Player{ID: "mock-player", Name: name}, nil
}

func (m *MockStore) Rename(id, newName string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RenameCalls = append(m.RenameCalls, struct {
		ID      string
		NewName string
	}{id, newName})
	if m.RenameFunc != nil {
		return m.RenameFunc(id, newName)
	}
	return &Player{ID: id, Name: newName}, nil
}

func (m *MockStore) Get(id string) (*Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetCalls = append(m.GetCalls, id)
	if m.GetFunc != nil {
		return m.GetFunc(id)
	}
	return &Player{ID: id, Name: "Mock Player"}, nil
}

func (m *MockStore) GetAll() ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetAllFunc != nil {
		return m.GetAllFunc()
	}
	return nil, nil
}

func (m *MockStore) IsKnownPlayer(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.IsKnownPlayerFunc != nil {
		return m.IsKnownPlayerFunc(id)
	}
	return true
}

func (m *MockStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ClearFunc != nil {
		return m.ClearFunc()
	}
	return nil
}
