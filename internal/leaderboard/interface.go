package leaderboard

import "errors"

// LeaderboardStore defines the interface for reading leaderboards. Reads are
// pure: building a leaderboard never mutates stored data.
type LeaderboardStore interface {
	ClubStandings(clubID string) ([]Standing, error)
	LeagueDetail(leagueID string) (*LeagueDetail, error)
}

var (
	ErrClubNotFound   = errors.New("club not found")
	ErrLeagueNotFound = errors.New("league not found")
)
