package stats

import "errors"

// StatsStore defines the interface for recording and reading statistics.
type StatsStore interface {
	RecordResult(sub Submission) (*RecordedStats, error)
	UserStats(userID string) (*UserStats, error)
	ClubStats(clubID string) (*ClubStats, error)
	DashboardStats(userID string) (*DashboardStats, error)
	AdminSnapshot() (*Snapshot, error)
}

var (
	ErrEventNotFound = errors.New("event not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrClubNotFound  = errors.New("club not found")
)
