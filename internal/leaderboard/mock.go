package leaderboard

// MockStore is a mock implementation of the LeaderboardStore interface for testing.
type MockStore struct {
	ClubStandingsFunc func(clubID string) ([]Standing, error)
	LeagueDetailFunc  func(leagueID string) (*LeagueDetail, error)
}

func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) ClubStandings(clubID string) ([]Standing, error) {
	if m.ClubStandingsFunc != nil {
		return m.ClubStandingsFunc(clubID)
	}
	return nil, nil
}

func (m *MockStore) LeagueDetail(leagueID string) (*LeagueDetail, error) {
	if m.LeagueDetailFunc != nil {
		return m.LeagueDetailFunc(leagueID)
	}
	return nil, ErrLeagueNotFound
}
