package club

import "sync"

// MockStore is a mock implementation of the ClubStore interface for testing.
type MockStore struct {
	mu sync.Mutex

	RegisterFunc      func(params RegisterClubParams) (*Club, error)
	ApproveFunc       func(clubID string) error
	ListApprovedFunc  func() ([]ClubSummary, error)
	ListAllFunc       func() ([]ClubRef, error)
	GetFunc           func(clubID string) (*Club, error)
	UpdateFunc        func(clubID, requesterID string, patch ClubPatch) error
	MyClubFunc        func(userID string) (*Club, error)
	IsCaptainFunc     func(clubID, userID string) (bool, error)
	RequestJoinFunc   func(clubID, userID string) error
	ApproveMemberFunc func(clubID, userID string) (*Member, error)
	RejectRequestFunc func(clubID, userID, requesterID string) error
	MembersFunc       func(clubID, requesterID string) ([]Member, error)
	UserRequestsFunc  func(userID string) ([]MembershipStatus, error)

	RegisterCalls    []RegisterClubParams
	RequestJoinCalls []struct{ ClubID, UserID string }
}

func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Register(params RegisterClubParams) (*Club, error) {
	m.mu.Lock()
	m.RegisterCalls = append(m.RegisterCalls, params)
	m.mu.Unlock()
	if m.RegisterFunc != nil {
		return m.RegisterFunc(params)
	}
	return &Club{ID: "mock-club", Name: params.Name, Status: StatusPending}, nil
}

func (m *MockStore) Approve(clubID string) error {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(clubID)
	}
	return nil
}

func (m *MockStore) ListApproved() ([]ClubSummary, error) {
	if m.ListApprovedFunc != nil {
		return m.ListApprovedFunc()
	}
	return nil, nil
}

func (m *MockStore) ListAll() ([]ClubRef, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc()
	}
	return nil, nil
}

func (m *MockStore) Get(clubID string) (*Club, error) {
	if m.GetFunc != nil {
		return m.GetFunc(clubID)
	}
	return nil, ErrClubNotFound
}

func (m *MockStore) Update(clubID, requesterID string, patch ClubPatch) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(clubID, requesterID, patch)
	}
	return nil
}

func (m *MockStore) MyClub(userID string) (*Club, error) {
	if m.MyClubFunc != nil {
		return m.MyClubFunc(userID)
	}
	return nil, ErrNoClub
}

func (m *MockStore) IsCaptain(clubID, userID string) (bool, error) {
	if m.IsCaptainFunc != nil {
		return m.IsCaptainFunc(clubID, userID)
	}
	return false, nil
}

func (m *MockStore) RequestJoin(clubID, userID string) error {
	m.mu.Lock()
	m.RequestJoinCalls = append(m.RequestJoinCalls, struct{ ClubID, UserID string }{clubID, userID})
	m.mu.Unlock()
	if m.RequestJoinFunc != nil {
		return m.RequestJoinFunc(clubID, userID)
	}
	return nil
}

func (m *MockStore) ApproveMember(clubID, userID string) (*Member, error) {
	if m.ApproveMemberFunc != nil {
		return m.ApproveMemberFunc(clubID, userID)
	}
	return &Member{UserID: userID, Status: StatusApproved}, nil
}

func (m *MockStore) RejectRequest(clubID, userID, requesterID string) error {
	if m.RejectRequestFunc != nil {
		return m.RejectRequestFunc(clubID, userID, requesterID)
	}
	return nil
}

func (m *MockStore) Members(clubID, requesterID string) ([]Member, error) {
	if m.MembersFunc != nil {
		return m.MembersFunc(clubID, requesterID)
	}
	return nil, nil
}

func (m *MockStore) UserRequests(userID string) ([]MembershipStatus, error) {
	if m.UserRequestsFunc != nil {
		return m.UserRequestsFunc(userID)
	}
	return nil, nil
}
