package notifier

import (
	"sync"

	"github.com/jmalvarez/dice-ranking/internal/ledger"
	"github.com/jmalvarez/dice-ranking/internal/ranking"
)

// MockNotifier is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type MockNotifier struct {
	mu sync.Mutex

	// Spies for method calls
	SendResultNotificationFunc func(game *ledger.Game, playerName string, dryRun bool) error
	SendRankingFunc            func(snapshot *ranking.Snapshot, dryRun bool) error
	FormatRankingResponseFunc  func(snapshot *ranking.Snapshot) (any, error)

	// Call records
	SendResultNotificationCalls []ResultNotificationCall
	SendRankingCalls            []*ranking.Snapshot
}

// ResultNotificationCall holds the arguments for a call to SendResultNotification.
type ResultNotificationCall struct {
	Game       *ledger.Game
	PlayerName string
	DryRun     bool
}

// NewMock creates a new mock Notifier.
func NewMock() *MockNotifier {
	return &MockNotifier{}
}

// Reset clears all call records.
func (m *MockNotifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = nil
	m.SendRankingCalls = nil
}

func (m *MockNotifier) SendResultNotification(game *ledger.Game, playerName string, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendResultNotificationCalls = append(m.SendResultNotificationCalls, ResultNotificationCall{Game: game, PlayerName: playerName, DryRun: dryRun})
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(game, playerName, dryRun)
	}
	return nil
}

func (m *MockNotifier) SendRanking(snapshot *ranking.Snapshot, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendRankingCalls = append(m.SendRankingCalls, snapshot)
	if m.SendRankingFunc != nil {
		return m.SendRankingFunc(snapshot, dryRun)
	}
	return nil
}

func (m *MockNotifier) FormatRankingResponse(snapshot *ranking.Snapshot) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatRankingResponseFunc != nil {
		return m.FormatRankingResponseFunc(snapshot)
	}
	return nil, nil
}
