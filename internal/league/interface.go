package league

import "errors"

// LeagueStore defines the interface for interacting with events and leagues.
type LeagueStore interface {
	CreateEvent(params CreateEventParams) (*Event, error)
	UpdateEvent(id string, params UpdateEventParams) (*Event, error)
	DeleteEvent(id string) error
	GetEvent(id string) (*Event, error)
	ListEvents() ([]Event, error)
	EventsForClub(clubID string) ([]Event, error)
	Participants(eventID string) ([]Participant, error)
	RegisterForLeague(leagueID, userID string) error
	ActiveLeaguesFor(userID string) ([]LeagueSummary, error)
	IsClubMember(leagueID, userID string) (bool, error)
}

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrLeagueNotFound    = errors.New("league not found")
	ErrNotUpcoming       = errors.New("league not found or not upcoming")
	ErrAlreadyRegistered = errors.New("already registered for this league")
)
