package club

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

// Register creates a club in pending status, promotes the creator to captain
// and enrolls them as an approved captain member, all in one transaction.
func (s *store) Register(params RegisterClubParams) (*Club, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var creatorName, creatorEmail string
	err = tx.QueryRow("SELECT name, email FROM users WHERE id = ?", params.CreatedBy).
		Scan(&creatorName, &creatorEmail)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("creator: %w", ErrMemberNotFound)
		}
		return nil, fmt.Errorf("failed to look up creator: %w", err)
	}

	var owns bool
	err = tx.QueryRow("SELECT EXISTS(SELECT 1 FROM clubs WHERE created_by = ?)", params.CreatedBy).Scan(&owns)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing club: %w", err)
	}
	if owns {
		return nil, ErrAlreadyOwner
	}

	if _, err := tx.Exec("UPDATE users SET role = 'captain' WHERE id = ?", params.CreatedBy); err != nil {
		return nil, fmt.Errorf("failed to promote creator to captain: %w", err)
	}

	now := time.Now()
	c := &Club{
		ID:               uuid.New().String(),
		Name:             params.Name,
		Email:            params.Email,
		Phone:            params.Phone,
		Description:      params.Description,
		LogoURL:          params.LogoURL,
		CreatedBy:        params.CreatedBy,
		IsPrivate:        params.IsPrivate,
		Status:           StatusPending,
		CaptainName:      creatorName,
		CaptainEmail:     creatorEmail,
		CaptainContactNo: params.CaptainContactNo,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err = tx.Exec(`
		INSERT INTO clubs
			(id, name, email, phone, description, logo_url, created_by, is_private, status,
			 captain_name, captain_email, captain_contact_no, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Phone, c.Description, c.LogoURL, c.CreatedBy, c.IsPrivate,
		c.Status, c.CaptainName, c.CaptainEmail, c.CaptainContactNo, now.Unix(), now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert club: %w", err)
	}

	// The captain is a member of their own club from day one.
	_, err = tx.Exec(`
		INSERT INTO club_members (club_id, user_id, role, status, joined_at)
		VALUES (?, ?, ?, ?, ?)`,
		c.ID, params.CreatedBy, MemberRoleCaptain, StatusApproved, now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to enroll captain: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit club registration: %w", err)
	}

	log.Info("Registered new club", "clubID", c.ID, "name", c.Name, "captain", creatorName)
	return c, nil
}

// Approve flips a pending club to approved. Admin only (enforced upstream).
func (s *store) Approve(clubID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE clubs SET status = ?, updated_at = ? WHERE id = ?",
		StatusApproved, time.Now().Unix(), clubID)
	if err != nil {
		return fmt.Errorf("failed to approve club: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrClubNotFound
	}
	return nil
}

func (s *store) ListApproved() ([]ClubSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, COALESCE(description, ''), COALESCE(logo_url, '')
		FROM clubs WHERE status = ?`, StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved clubs: %w", err)
	}
	defer rows.Close()

	var clubs []ClubSummary
	for rows.Next() {
		var c ClubSummary
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.LogoURL); err != nil {
			return nil, fmt.Errorf("failed to scan club summary: %w", err)
		}
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}

func (s *store) ListAll() ([]ClubRef, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name FROM clubs")
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	defer rows.Close()

	var clubs []ClubRef
	for rows.Next() {
		var c ClubRef
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan club ref: %w", err)
		}
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}

func (s *store) Get(clubID string) (*Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.scanClub(s.db.QueryRow(selectClub+" WHERE id = ?", clubID))
}

// Update applies a partial club update. Only the captain (creator) may edit.
func (s *store) Update(clubID, requesterID string, patch ClubPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var owned bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM clubs WHERE id = ? AND created_by = ?)",
		clubID, requesterID).Scan(&owned)
	if err != nil {
		return fmt.Errorf("failed to check club ownership: %w", err)
	}
	if !owned {
		return ErrNotCaptain
	}

	var isPrivate any
	if patch.IsPrivate != nil {
		isPrivate = *patch.IsPrivate
	}

	_, err = s.db.Exec(`
		UPDATE clubs SET
			name = COALESCE(?, name),
			email = COALESCE(?, email),
			phone = COALESCE(?, phone),
			description = COALESCE(?, description),
			is_private = COALESCE(?, is_private),
			updated_at = ?
		WHERE id = ?`,
		nullable(patch.Name), nullable(patch.Email), nullable(patch.Phone),
		nullable(patch.Description), isPrivate, time.Now().Unix(), clubID,
	)
	if err != nil {
		return fmt.Errorf("failed to update club: %w", err)
	}

	log.Info("Updated club", "clubID", clubID)
	return nil
}

// MyClub returns the club the user captains, or failing that the club they
// are an approved member of.
func (s *store) MyClub(userID string) (*Club, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, err := s.scanClub(s.db.QueryRow(selectClub+" WHERE created_by = ?", userID))
	if err == nil {
		return c, nil
	}
	if err != ErrClubNotFound {
		return nil, err
	}

	c, err = s.scanClub(s.db.QueryRow(selectClub+`
		WHERE id IN (
			SELECT club_id FROM club_members WHERE user_id = ? AND status = ?
		) LIMIT 1`, userID, StatusApproved))
	if err == ErrClubNotFound {
		return nil, ErrNoClub
	}
	return c, err
}

// IsCaptain reports whether the user created the club or holds an approved
// captain or chairman membership in it.
func (s *store) IsCaptain(clubID, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var owned bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM clubs WHERE id = ? AND created_by = ?)",
		clubID, userID).Scan(&owned)
	if err != nil {
		return false, fmt.Errorf("failed to check club ownership: %w", err)
	}
	if owned {
		return true, nil
	}

	var captain bool
	err = s.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM club_members
			WHERE club_id = ? AND user_id = ? AND status = ? AND role IN (?, ?)
		)`, clubID, userID, StatusApproved, MemberRoleCaptain, MemberRoleChairman).Scan(&captain)
	if err != nil {
		return false, fmt.Errorf("failed to check captain membership: %w", err)
	}
	return captain, nil
}

func (s *store) RequestJoin(clubID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var clubExists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM clubs WHERE id = ?)", clubID).Scan(&clubExists)
	if err != nil {
		return fmt.Errorf("failed to check club: %w", err)
	}
	if !clubExists {
		return ErrClubNotFound
	}

	var exists bool
	err = s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM club_members WHERE club_id = ? AND user_id = ?)",
		clubID, userID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check existing request: %w", err)
	}
	if exists {
		return ErrDuplicateRequest
	}

	_, err = s.db.Exec(`
		INSERT INTO club_members (club_id, user_id, role, status, joined_at)
		VALUES (?, ?, ?, ?, ?)`,
		clubID, userID, MemberRoleMember, StatusPending, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert join request: %w", err)
	}

	log.Info("Join request submitted", "clubID", clubID, "userID", userID)
	return nil
}

func (s *store) ApproveMember(clubID, userID string) (*Member, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE club_members SET status = ? WHERE club_id = ? AND user_id = ?",
		StatusApproved, clubID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to approve member: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrMemberNotFound
	}

	var m Member
	var joinedAt int64
	err = s.db.QueryRow(`
		SELECT u.id, u.name, u.email, cm.role, cm.status, cm.joined_at
		FROM club_members cm
		JOIN users u ON u.id = cm.user_id
		WHERE cm.club_id = ? AND cm.user_id = ?`, clubID, userID).
		Scan(&m.UserID, &m.Name, &m.Email, &m.Role, &m.Status, &joinedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to read approved member: %w", err)
	}
	m.JoinedAt = time.Unix(joinedAt, 0)

	log.Info("Approved club member", "clubID", clubID, "userID", userID)
	return &m, nil
}

// RejectRequest deletes a pending join request. Only the club captain may reject.
func (s *store) RejectRequest(clubID, userID, requesterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var owned bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM clubs WHERE id = ? AND created_by = ?)",
		clubID, requesterID).Scan(&owned)
	if err != nil {
		return fmt.Errorf("failed to check club ownership: %w", err)
	}
	if !owned {
		return ErrNotCaptain
	}

	res, err := s.db.Exec("DELETE FROM club_members WHERE club_id = ? AND user_id = ? AND status = ?",
		clubID, userID, StatusPending)
	if err != nil {
		return fmt.Errorf("failed to delete join request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrRequestNotFound
	}

	log.Info("Rejected join request", "clubID", clubID, "userID", userID)
	return nil
}

// Members lists a club's members. The requester must themselves be an
// approved member of the club.
func (s *store) Members(clubID, requesterID string) ([]Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var allowed bool
	err := s.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM club_members WHERE club_id = ? AND user_id = ? AND status = ?
		)`, clubID, requesterID, StatusApproved).Scan(&allowed)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}
	if !allowed {
		return nil, ErrNotMember
	}

	rows, err := s.db.Query(`
		SELECT u.id, u.name, u.email, cm.role, cm.status, cm.joined_at
		FROM club_members cm
		JOIN users u ON u.id = cm.user_id
		WHERE cm.club_id = ?
		ORDER BY cm.joined_at DESC`, clubID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		var joinedAt int64
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &m.Role, &m.Status, &joinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		m.JoinedAt = time.Unix(joinedAt, 0)
		members = append(members, m)
	}
	return members, rows.Err()
}

func (s *store) UserRequests(userID string) ([]MembershipStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT club_id, status FROM club_members WHERE user_id = ?", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user requests: %w", err)
	}
	defer rows.Close()

	var statuses []MembershipStatus
	for rows.Next() {
		var ms MembershipStatus
		if err := rows.Scan(&ms.ClubID, &ms.Status); err != nil {
			return nil, fmt.Errorf("failed to scan membership status: %w", err)
		}
		statuses = append(statuses, ms)
	}
	return statuses, rows.Err()
}

const selectClub = `
	SELECT id, name, COALESCE(email, ''), COALESCE(phone, ''), COALESCE(description, ''),
	       COALESCE(logo_url, ''), created_by, is_private, status, COALESCE(captain_name, ''),
	       COALESCE(captain_email, ''), COALESCE(captain_contact_no, ''), created_at, updated_at
	FROM clubs`

func (s *store) scanClub(row *sql.Row) (*Club, error) {
	var c Club
	var createdAt, updatedAt int64

	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Description, &c.LogoURL,
		&c.CreatedBy, &c.IsPrivate, &c.Status, &c.CaptainName, &c.CaptainEmail,
		&c.CaptainContactNo, &createdAt, &updatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrClubNotFound
		}
		return nil, fmt.Errorf("failed to scan club: %w", err)
	}

	c.CreatedAt = time.Unix(createdAt, 0)
	c.UpdatedAt = time.Unix(updatedAt, 0)
	return &c, nil
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
