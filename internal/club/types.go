package club

import (
	"database/sql"
	"sync"
	"time"
)

// store handles all database operations for clubs and memberships.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Club is a registered golf club.
type Club struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Description      string    `json:"description,omitempty"`
	LogoURL          string    `json:"logo_url,omitempty"`
	CreatedBy        string    `json:"created_by"`
	IsPrivate        bool      `json:"is_private"`
	Status           string    `json:"status"`
	CaptainName      string    `json:"captain_name,omitempty"`
	CaptainEmail     string    `json:"captain_email,omitempty"`
	CaptainContactNo string    `json:"captain_contact_no,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// ClubRef is the minimal id/name pair used by listing endpoints.
type ClubRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ClubSummary is the public listing shape for approved clubs.
type ClubSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}

// Member is a club membership row joined with the user's identity.
type Member struct {
	UserID   string    `json:"user_id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}

// MembershipStatus is one pending/approved membership of a user.
type MembershipStatus struct {
	ClubID string `json:"club_id"`
	Status string `json:"status"`
}

// RegisterClubParams carries the fields required to register a club.
type RegisterClubParams struct {
	Name             string
	Email            string
	Phone            string
	Description      string
	LogoURL          string
	CreatedBy        string
	IsPrivate        bool
	CaptainContactNo string
}

// ClubPatch is a typed partial update for a club profile.
type ClubPatch struct {
	Name        *string
	Email       *string
	Phone       *string
	Description *string
	IsPrivate   *bool
}

// Membership roles and statuses.
const (
	MemberRoleMember   = "member"
	MemberRoleCaptain  = "captain"
	MemberRoleChairman = "chairman"

	StatusPending  = "pending"
	StatusApproved = "approved"
)
