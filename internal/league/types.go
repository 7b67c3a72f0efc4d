package league

import (
	"database/sql"
	"sync"
	"time"
)

// store handles all database operations for events and leagues.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Event is a competition: a league, a tournament or a casual round.
// Status is never stored; it is derived from the date window at read time.
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Description string    `json:"description,omitempty"`
	StartDate   string    `json:"start_date"`
	EndDate     *string   `json:"end_date,omitempty"`
	Handicap    bool      `json:"handicap"`
	Location    string    `json:"location,omitempty"`
	ClubID      string    `json:"club_id,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LeagueSummary is an event of type league decorated with its club logo,
// as shown on a player's active-leagues screen.
type LeagueSummary struct {
	Event
	LogoURL string `json:"logo_url,omitempty"`
}

// Participant is an event participant row joined with the user's name.
type Participant struct {
	EventID     string     `json:"event_id"`
	UserID      string     `json:"user_id"`
	Name        string     `json:"name"`
	ClubID      string     `json:"club_id,omitempty"`
	Score       *int       `json:"score,omitempty"`
	Points      int        `json:"points"`
	Birdies     int        `json:"birdies"`
	Strokes     int        `json:"strokes"`
	Putts       int        `json:"putts"`
	GreensInReg int        `json:"greens_in_reg"`
	FairwaysHit int        `json:"fairways_hit"`
	Notes       string     `json:"notes,omitempty"`
	SubmittedBy string     `json:"submitted_by,omitempty"`
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
}

// CreateEventParams carries the fields required to create an event.
type CreateEventParams struct {
	Name        string
	Type        string
	Description string
	StartDate   string
	EndDate     *string
	Handicap    bool
	Location    string
	ClubID      string
	CreatedBy   string
}

// UpdateEventParams is a full replacement of an event's editable fields.
type UpdateEventParams struct {
	Name        string
	Type        string
	Description string
	StartDate   string
	EndDate     *string
	Handicap    bool
	Location    string
}

// Event types.
const (
	TypeLeague     = "league"
	TypeTournament = "tournament"
	TypeCasual     = "casual"
)

// Derived event statuses.
const (
	StatusUpcoming  = "upcoming"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// DateLayout is the wire and storage format for event dates.
const DateLayout = "2006-01-02"
