package players

import (
	"database/sql"
	"sync"
	"time"
)

// store handles all database operations for players.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Player is a registered user of the league platform.
type Player struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewPlayer carries the fields required to register a player.
type NewPlayer struct {
	Name         string
	Email        string
	PasswordHash string
	PhoneNumber  string
}

// ProfilePatch is a typed partial update: nil fields are left untouched.
type ProfilePatch struct {
	Name         *string
	Email        *string
	PhoneNumber  *string
	PasswordHash *string
}

// IsEmpty reports whether the patch would change nothing.
func (p ProfilePatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.PhoneNumber == nil && p.PasswordHash == nil
}

// Platform-wide roles.
const (
	RolePlayer  = "player"
	RoleCaptain = "captain"
	RoleAdmin   = "admin"
)
