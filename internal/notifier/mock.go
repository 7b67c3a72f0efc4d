package notifier

import (
	"sync"

	"github.com/sasgl/league-api/internal/leaderboard"
	"github.com/sasgl/league-api/internal/stats"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendResultNotificationFunc func(playerName, eventName string, recorded *stats.RecordedStats, dryRun bool) error
	SendStandingsFunc          func(clubName string, standings []leaderboard.Standing, dryRun bool) error

	// Call records
	ResultCalls []struct {
		PlayerName string
		EventName  string
		Recorded   *stats.RecordedStats
	}
	StandingsCalls []struct {
		ClubName  string
		Standings []leaderboard.Standing
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResultCalls = nil
	m.StandingsCalls = nil
}

func (m *Mock) SendResultNotification(playerName, eventName string, recorded *stats.RecordedStats, dryRun bool) error {
	m.mu.Lock()
	m.ResultCalls = append(m.ResultCalls, struct {
		PlayerName string
		EventName  string
		Recorded   *stats.RecordedStats
	}{playerName, eventName, recorded})
	m.mu.Unlock()
	if m.SendResultNotificationFunc != nil {
		return m.SendResultNotificationFunc(playerName, eventName, recorded, dryRun)
	}
	return nil
}

func (m *Mock) SendStandings(clubName string, standings []leaderboard.Standing, dryRun bool) error {
	m.mu.Lock()
	m.StandingsCalls = append(m.StandingsCalls, struct {
		ClubName  string
		Standings []leaderboard.Standing
	}{clubName, standings})
	m.mu.Unlock()
	if m.SendStandingsFunc != nil {
		return m.SendStandingsFunc(clubName, standings, dryRun)
	}
	return nil
}
