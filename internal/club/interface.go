package club

import "errors"

// ClubStore defines the interface for interacting with clubs and memberships.
type ClubStore interface {
	Register(params RegisterClubParams) (*Club, error)
	Approve(clubID string) error
	ListApproved() ([]ClubSummary, error)
	ListAll() ([]ClubRef, error)
	Get(clubID string) (*Club, error)
	Update(clubID, requesterID string, patch ClubPatch) error
	MyClub(userID string) (*Club, error)
	IsCaptain(clubID, userID string) (bool, error)

	RequestJoin(clubID, userID string) error
	ApproveMember(clubID, userID string) (*Member, error)
	RejectRequest(clubID, userID, requesterID string) error
	Members(clubID, requesterID string) ([]Member, error)
	UserRequests(userID string) ([]MembershipStatus, error)
}

var (
	ErrClubNotFound     = errors.New("club not found")
	ErrNoClub           = errors.New("no associated club found")
	ErrAlreadyOwner     = errors.New("user already created a club")
	ErrDuplicateRequest = errors.New("join request already exists")
	ErrMemberNotFound   = errors.New("member not found")
	ErrRequestNotFound  = errors.New("pending request not found")
	ErrNotCaptain       = errors.New("only the club captain may do this")
	ErrNotMember        = errors.New("not an approved member of this club")
)
