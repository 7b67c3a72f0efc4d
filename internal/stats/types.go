package stats

import (
	"database/sql"
	"sync"
	"time"
)

// store handles all database operations for player and club statistics.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Submission is one player's result for one event. Metrics are absolute
// values for the round; the aggregates they roll into are incremental.
type Submission struct {
	EventID     string `json:"event_id"`
	UserID      string `json:"user_id"`
	Score       *int   `json:"score,omitempty"`
	Points      int    `json:"points"`
	Birdies     int    `json:"birdies"`
	Strokes     int    `json:"strokes"`
	Putts       int    `json:"putts"`
	GreensInReg int    `json:"greens_in_reg"`
	FairwaysHit int    `json:"fairways_hit"`
	Notes       string `json:"notes,omitempty"`
	SubmittedBy string `json:"submitted_by,omitempty"`
}

// EventUserStats is a player's running aggregate within a single event.
type EventUserStats struct {
	EventID     string  `json:"event_id"`
	UserID      string  `json:"user_id"`
	GamesPlayed int     `json:"games_played"`
	Points      int     `json:"points"`
	Birdies     int     `json:"birdies"`
	AvgPoints   float64 `json:"avg_points"`
}

// UserStats is a player's career aggregate across all events.
type UserStats struct {
	UserID             string    `json:"user_id"`
	TotalGames         int       `json:"total_games"`
	TotalPoints        int       `json:"total_points"`
	TotalBirdies       int       `json:"total_birdies"`
	TotalStrokes       int       `json:"total_strokes"`
	TotalPutts         int       `json:"total_putts"`
	GreensInRegulation int       `json:"greens_in_regulation"`
	FairwaysHit        int       `json:"fairways_hit"`
	AvgPoints          float64   `json:"avg_points"`
	LastUpdated        time.Time `json:"last_updated"`
}

// ClubStats is a club's aggregate over the games its members played.
type ClubStats struct {
	ClubID             string    `json:"club_id"`
	TotalGames         int       `json:"total_games"`
	TotalPoints        int       `json:"total_points"`
	TotalBirdies       int       `json:"total_birdies"`
	TotalStrokes       int       `json:"total_strokes"`
	TotalPutts         int       `json:"total_putts"`
	GreensInRegulation int       `json:"greens_in_regulation"`
	FairwaysHit        int       `json:"fairways_hit"`
	AvgPointsPerPlayer float64   `json:"avg_points_per_player"`
	LastUpdated        time.Time `json:"last_updated"`
}

// RecordedStats is the merged view returned after a submission lands.
type RecordedStats struct {
	Event EventUserStats `json:"event"`
	User  UserStats      `json:"user"`
}

// DashboardStats is the player's home-screen summary.
type DashboardStats struct {
	Name         string `json:"name"`
	Role         string `json:"role"`
	ClubName     string `json:"club_name,omitempty"`
	TotalPoints  int    `json:"total_points"`
	EventsPlayed int    `json:"events_played"`
	BestScore    int    `json:"best_score"`
}

// Snapshot is the admin data dump: every table worth inspecting, with
// password hashes left out.
type Snapshot struct {
	Users          []SnapshotUser        `json:"users"`
	UserStats      []UserStats           `json:"user_stats"`
	Clubs          []SnapshotClub        `json:"clubs"`
	ClubMembers    []SnapshotMember      `json:"club_members"`
	ClubStats      []ClubStats           `json:"club_stats"`
	Events         []SnapshotEvent       `json:"events"`
	Participants   []SnapshotParticipant `json:"event_participants"`
	EventUserStats []EventUserStats      `json:"event_user_stats"`
}

type SnapshotUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SnapshotClub struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	CreatedBy string `json:"created_by"`
}

type SnapshotMember struct {
	ClubID string `json:"club_id"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

type SnapshotEvent struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date,omitempty"`
	ClubID    string  `json:"club_id,omitempty"`
}

type SnapshotParticipant struct {
	EventID     string     `json:"event_id"`
	UserID      string     `json:"user_id"`
	Score       *int       `json:"score,omitempty"`
	Points      int        `json:"points"`
	Birdies     int        `json:"birdies"`
	SubmittedBy string     `json:"submitted_by,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}
