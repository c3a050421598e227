package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	rollsPlayed       int
	rollsWon          int
	snapshotDurations []float64
	orphanGames       float64
	slackNotifSent    int
	slackNotifFailed  int
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		snapshotDurations: make([]float64, 0),
	}
}

func (m *Mock) IncRollsPlayed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rollsPlayed++
}

func (m *Mock) IncRollsWon() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rollsWon++
}

func (m *Mock) ObserveSnapshotDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snapshotDurations = append(m.snapshotDurations, duration)
}

func (m *Mock) AddOrphanGames(count float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orphanGames += count
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// RollsPlayed returns the number of times IncRollsPlayed was called.
func (m *Mock) RollsPlayed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rollsPlayed
}

// RollsWon returns the number of times IncRollsWon was called.
func (m *Mock) RollsWon() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rollsWon
}

// OrphanGames returns the accumulated orphan record count.
func (m *Mock) OrphanGames() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orphanGames
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
