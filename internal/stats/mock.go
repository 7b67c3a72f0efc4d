package stats

import "sync"

// MockStore is a mock implementation of the StatsStore interface for testing.
type MockStore struct {
	mu sync.Mutex

	RecordResultFunc   func(sub Submission) (*RecordedStats, error)
	UserStatsFunc      func(userID string) (*UserStats, error)
	ClubStatsFunc      func(clubID string) (*ClubStats, error)
	DashboardStatsFunc func(userID string) (*DashboardStats, error)
	AdminSnapshotFunc  func() (*Snapshot, error)

	RecordResultCalls []Submission
}

func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) RecordResult(sub Submission) (*RecordedStats, error) {
	m.mu.Lock()
	m.RecordResultCalls = append(m.RecordResultCalls, sub)
	m.mu.Unlock()
	if m.RecordResultFunc != nil {
		return m.RecordResultFunc(sub)
	}
	return &RecordedStats{
		Event: EventUserStats{EventID: sub.EventID, UserID: sub.UserID, GamesPlayed: 1,
			Points: sub.Points, Birdies: sub.Birdies, AvgPoints: float64(sub.Points)},
		User: UserStats{UserID: sub.UserID, TotalGames: 1, TotalPoints: sub.Points},
	}, nil
}

func (m *MockStore) UserStats(userID string) (*UserStats, error) {
	if m.UserStatsFunc != nil {
		return m.UserStatsFunc(userID)
	}
	return &UserStats{UserID: userID}, nil
}

func (m *MockStore) ClubStats(clubID string) (*ClubStats, error) {
	if m.ClubStatsFunc != nil {
		return m.ClubStatsFunc(clubID)
	}
	return &ClubStats{ClubID: clubID}, nil
}

func (m *MockStore) DashboardStats(userID string) (*DashboardStats, error) {
	if m.DashboardStatsFunc != nil {
		return m.DashboardStatsFunc(userID)
	}
	return &DashboardStats{}, nil
}

func (m *MockStore) AdminSnapshot() (*Snapshot, error) {
	if m.AdminSnapshotFunc != nil {
		return m.AdminSnapshotFunc()
	}
	return &Snapshot{}, nil
}
