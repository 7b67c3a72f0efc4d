package players

import "errors"

// PlayerStore defines the interface for interacting with player records.
type PlayerStore interface {
	Create(p NewPlayer) (*Player, error)
	GetByID(id string) (*Player, error)
	GetByEmail(email string) (*Player, error)
	UpdateProfile(id string, patch ProfilePatch) (*Player, error)
}

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrEmailTaken     = errors.New("a player with that email already exists")
	ErrEmptyPatch     = errors.New("no fields to update")
)
