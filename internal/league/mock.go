package league

import "sync"

// MockStore is a mock implementation of the LeagueStore interface for testing.
type MockStore struct {
	mu sync.Mutex

	CreateEventFunc       func(params CreateEventParams) (*Event, error)
	UpdateEventFunc       func(id string, params UpdateEventParams) (*Event, error)
	DeleteEventFunc       func(id string) error
	GetEventFunc          func(id string) (*Event, error)
	ListEventsFunc        func() ([]Event, error)
	EventsForClubFunc     func(clubID string) ([]Event, error)
	ParticipantsFunc      func(eventID string) ([]Participant, error)
	RegisterForLeagueFunc func(leagueID, userID string) error
	ActiveLeaguesForFunc  func(userID string) ([]LeagueSummary, error)
	IsClubMemberFunc      func(leagueID, userID string) (bool, error)

	CreateEventCalls []CreateEventParams
	RegisterCalls    []struct{ LeagueID, UserID string }
}

func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) CreateEvent(params CreateEventParams) (*Event, error) {
	m.mu.Lock()
	m.CreateEventCalls = append(m.CreateEventCalls, params)
	m.mu.Unlock()
	if m.CreateEventFunc != nil {
		return m.CreateEventFunc(params)
	}
	return &Event{ID: "mock-event", Name: params.Name, Type: params.Type, Status: StatusUpcoming}, nil
}

func (m *MockStore) UpdateEvent(id string, params UpdateEventParams) (*Event, error) {
	if m.UpdateEventFunc != nil {
		return m.UpdateEventFunc(id, params)
	}
	return &Event{ID: id, Name: params.Name, Type: params.Type}, nil
}

func (m *MockStore) DeleteEvent(id string) error {
	if m.DeleteEventFunc != nil {
		return m.DeleteEventFunc(id)
	}
	return nil
}

func (m *MockStore) GetEvent(id string) (*Event, error) {
	if m.GetEventFunc != nil {
		return m.GetEventFunc(id)
	}
	return nil, ErrEventNotFound
}

func (m *MockStore) ListEvents() ([]Event, error) {
	if m.ListEventsFunc != nil {
		return m.ListEventsFunc()
	}
	return nil, nil
}

func (m *MockStore) EventsForClub(clubID string) ([]Event, error) {
	if m.EventsForClubFunc != nil {
		return m.EventsForClubFunc(clubID)
	}
	return nil, nil
}

func (m *MockStore) Participants(eventID string) ([]Participant, error) {
	if m.ParticipantsFunc != nil {
		return m.ParticipantsFunc(eventID)
	}
	return nil, nil
}

func (m *MockStore) RegisterForLeague(leagueID, userID string) error {
	m.mu.Lock()
	m.RegisterCalls = append(m.RegisterCalls, struct{ LeagueID, UserID string }{leagueID, userID})
	m.mu.Unlock()
	if m.RegisterForLeagueFunc != nil {
		return m.RegisterForLeagueFunc(leagueID, userID)
	}
	return nil
}

func (m *MockStore) ActiveLeaguesFor(userID string) ([]LeagueSummary, error) {
	if m.ActiveLeaguesForFunc != nil {
		return m.ActiveLeaguesForFunc(userID)
	}
	return nil, nil
}

func (m *MockStore) IsClubMember(leagueID, userID string) (bool, error) {
	if m.IsClubMemberFunc != nil {
		return m.IsClubMemberFunc(leagueID, userID)
	}
	return false, nil
}
