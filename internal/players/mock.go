package players

import "sync"

// MockStore is a mock implementation of the PlayerStore interface for testing.
type MockStore struct {
	mu sync.Mutex

	CreateFunc        func(p NewPlayer) (*Player, error)
	GetByIDFunc       func(id string) (*Player, error)
	GetByEmailFunc    func(email string) (*Player, error)
	UpdateProfileFunc func(id string, patch ProfilePatch) (*Player, error)

	CreateCalls        []NewPlayer
	GetByIDCalls       []string
	UpdateProfileCalls []string
}

func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Create(p NewPlayer) (*Player, error) {
	m.mu.Lock()
	m.CreateCalls = append(m.CreateCalls, p)
	m.mu.Unlock()
	if m.CreateFunc != nil {
		return m.CreateFunc(p)
	}
	return &Player{ID: "mock-player", Name: p.Name, Email: p.Email, Role: RolePlayer}, nil
}

func (m *MockStore) GetByID(id string) (*Player, error) {
	m.mu.Lock()
	m.GetByIDCalls = append(m.GetByIDCalls, id)
	m.mu.Unlock()
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(id)
	}
	return &Player{ID: id, Role: RolePlayer}, nil
}

func (m *MockStore) GetByEmail(email string) (*Player, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(email)
	}
	return nil, ErrPlayerNotFound
}

func (m *MockStore) UpdateProfile(id string, patch ProfilePatch) (*Player, error) {
	m.mu.Lock()
	m.UpdateProfileCalls = append(m.UpdateProfileCalls, id)
	m.mu.Unlock()
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(id, patch)
	}
	return &Player{ID: id}, nil
}
