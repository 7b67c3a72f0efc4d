package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                sync.Mutex
	statsRecorded     int
	statsFailed       int
	leaderboardBuilds int
	recordDurations   []float64
	slackNotifSent    int
	slackNotifFailed  int
	startupTime       float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		recordDurations: make([]float64, 0),
	}
}

func (m *Mock) IncStatsRecorded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statsRecorded++
}

func (m *Mock) IncStatsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statsFailed++
}

func (m *Mock) IncLeaderboardBuilds() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaderboardBuilds++
}

func (m *Mock) ObserveRecordDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordDurations = append(m.recordDurations, duration)
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

// StatsRecorded returns the number of times IncStatsRecorded was called.
func (m *Mock) StatsRecorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statsRecorded
}

// StatsFailed returns the number of times IncStatsFailed was called.
func (m *Mock) StatsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.statsFailed
}

// LeaderboardBuilds returns the number of times IncLeaderboardBuilds was called.
func (m *Mock) LeaderboardBuilds() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.leaderboardBuilds
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
