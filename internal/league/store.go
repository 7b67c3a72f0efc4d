package league

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new LeagueStore.
func New(db *sql.DB) LeagueStore {
	return &store{
		db: db,
	}
}

// CreateEvent inserts the event and, when it belongs to a club, enrolls all
// of the club's approved members as zeroed participants in one transaction.
func (s *store) CreateEvent(params CreateEventParams) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	e := &Event{
		ID:          uuid.New().String(),
		Name:        params.Name,
		Type:        params.Type,
		Description: params.Description,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		Handicap:    params.Handicap,
		Location:    params.Location,
		ClubID:      params.ClubID,
		CreatedBy:   params.CreatedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	e.Status = DeriveStatus(e.StartDate, e.EndDate, now)

	var clubID any
	if params.ClubID != "" {
		clubID = params.ClubID
	}
	var endDate any
	if params.EndDate != nil {
		endDate = *params.EndDate
	}

	_, err = tx.Exec(`
		INSERT INTO events
			(id, name, type, description, start_date, end_date, handicap, location,
			 club_id, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Type, e.Description, e.StartDate, endDate, e.Handicap,
		e.Location, clubID, e.CreatedBy, now.Unix(), now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert event: %w", err)
	}

	if params.ClubID != "" {
		rows, err := tx.Query(
			"SELECT user_id FROM club_members WHERE club_id = ? AND status = 'approved'",
			params.ClubID)
		if err != nil {
			return nil, fmt.Errorf("failed to list club members: %w", err)
		}
		var memberIDs []string
		for rows.Next() {
			var id string
			if err := rows.Scan(&id); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan member id: %w", err)
			}
			memberIDs = append(memberIDs, id)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to iterate members: %w", err)
		}

		for _, userID := range memberIDs {
			_, err = tx.Exec(
				"INSERT INTO event_participants (event_id, user_id, club_id) VALUES (?, ?, ?)",
				e.ID, userID, params.ClubID)
			if err != nil {
				return nil, fmt.Errorf("failed to enroll member %s: %w", userID, err)
			}
		}
		log.Info("Auto-enrolled club members in event", "eventID", e.ID, "count", len(memberIDs))
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit event creation: %w", err)
	}

	log.Info("Created event", "eventID", e.ID, "name", e.Name, "type", e.Type)
	return e, nil
}

func (s *store) UpdateEvent(id string, params UpdateEventParams) (*Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var endDate any
	if params.EndDate != nil {
		endDate = *params.EndDate
	}

	res, err := s.db.Exec(`
		UPDATE events SET
			name = ?, type = ?, description = ?, start_date = ?, end_date = ?,
			handicap = ?, location = ?, updated_at = ?
		WHERE id = ?`,
		params.Name, params.Type, params.Description, params.StartDate, endDate,
		params.Handicap, params.Location, time.Now().Unix(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrEventNotFound
	}

	return s.getEventLocked(id)
}

func (s *store) DeleteEvent(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM events WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return ErrEventNotFound
	}

	log.Info("Deleted event", "eventID", id)
	return nil
}

func (s *store) GetEvent(id string) (*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.getEventLocked(id)
}

func (s *store) getEventLocked(id string) (*Event, error) {
	e, err := scanEvent(s.db.QueryRow(selectEvent+" WHERE id = ?", id))
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (s *store) ListEvents() ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryEvents(selectEvent + " ORDER BY start_date DESC")
}

func (s *store) EventsForClub(clubID string) ([]Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryEvents(selectEvent+" WHERE club_id = ? ORDER BY start_date DESC", clubID)
}

func (s *store) queryEvents(query string, args ...any) ([]Event, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []Event
	now := time.Now()
	for rows.Next() {
		e, err := scanEventRow(rows, now)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

func (s *store) Participants(eventID string) ([]Participant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM events WHERE id = ?)", eventID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check event: %w", err)
	}
	if !exists {
		return nil, ErrEventNotFound
	}

	rows, err := s.db.Query(`
		SELECT ep.event_id, ep.user_id, u.name, COALESCE(ep.club_id, ''), ep.score,
		       ep.points, ep.birdies, ep.strokes, ep.putts, ep.greens_in_reg,
		       ep.fairways_hit, COALESCE(ep.notes, ''), COALESCE(ep.submitted_by, ''),
		       ep.submitted_at
		FROM event_participants ep
		JOIN users u ON u.id = ep.user_id
		WHERE ep.event_id = ?`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var participants []Participant
	for rows.Next() {
		var p Participant
		var score sql.NullInt64
		var submittedAt sql.NullInt64
		err := rows.Scan(&p.EventID, &p.UserID, &p.Name, &p.ClubID, &score,
			&p.Points, &p.Birdies, &p.Strokes, &p.Putts, &p.GreensInReg,
			&p.FairwaysHit, &p.Notes, &p.SubmittedBy, &submittedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		if score.Valid {
			v := int(score.Int64)
			p.Score = &v
		}
		if submittedAt.Valid {
			ts := time.Unix(submittedAt.Int64, 0)
			p.SubmittedAt = &ts
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// RegisterForLeague signs the user up for an upcoming league. Leagues that
// have already started are closed for self-registration.
func (s *store) RegisterForLeague(leagueID, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.getEventLocked(leagueID)
	if err == ErrEventNotFound {
		return ErrNotUpcoming
	}
	if err != nil {
		return err
	}
	if e.Type != TypeLeague || e.Status != StatusUpcoming {
		return ErrNotUpcoming
	}

	var exists bool
	err = s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM event_participants WHERE event_id = ? AND user_id = ?)",
		leagueID, userID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check registration: %w", err)
	}
	if exists {
		return ErrAlreadyRegistered
	}

	var clubID any
	if e.ClubID != "" {
		clubID = e.ClubID
	}
	_, err = s.db.Exec(
		"INSERT INTO event_participants (event_id, user_id, club_id) VALUES (?, ?, ?)",
		leagueID, userID, clubID)
	if err != nil {
		return fmt.Errorf("failed to register participant: %w", err)
	}

	log.Info("Registered participant for league", "leagueID", leagueID, "userID", userID)
	return nil
}

// ActiveLeaguesFor lists the leagues of every club the user is an approved
// member of, each labelled with its derived status.
func (s *store) ActiveLeaguesFor(userID string) ([]LeagueSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(selectEvent+`
		JOIN clubs c ON c.id = events.club_id
		JOIN club_members cm ON cm.club_id = c.id
		WHERE events.type = ? AND cm.user_id = ? AND cm.status = 'approved'
		ORDER BY events.start_date ASC`, TypeLeague, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active leagues: %w", err)
	}
	defer rows.Close()

	// Logos come in a second pass to keep the event scan shared.
	var leagues []LeagueSummary
	now := time.Now()
	for rows.Next() {
		e, err := scanEventRow(rows, now)
		if err != nil {
			return nil, err
		}
		leagues = append(leagues, LeagueSummary{Event: *e})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range leagues {
		var logo sql.NullString
		err := s.db.QueryRow("SELECT logo_url FROM clubs WHERE id = ?", leagues[i].ClubID).Scan(&logo)
		if err != nil && err != sql.ErrNoRows {
			return nil, fmt.Errorf("failed to fetch club logo: %w", err)
		}
		leagues[i].LogoURL = logo.String
	}
	return leagues, nil
}

// IsClubMember reports whether the user belongs to the club that owns the league.
func (s *store) IsClubMember(leagueID, userID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var clubID sql.NullString
	err := s.db.QueryRow("SELECT club_id FROM events WHERE id = ?", leagueID).Scan(&clubID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, ErrLeagueNotFound
		}
		return false, fmt.Errorf("failed to look up league: %w", err)
	}
	if !clubID.Valid {
		return false, nil
	}

	var member bool
	err = s.db.QueryRow(
		"SELECT EXISTS(SELECT 1 FROM club_members WHERE club_id = ? AND user_id = ? AND status = 'approved')",
		clubID.String, userID).Scan(&member)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return member, nil
}

const selectEvent = `
	SELECT events.id, events.name, events.type, COALESCE(events.description, ''),
	       events.start_date, events.end_date, events.handicap,
	       COALESCE(events.location, ''), COALESCE(events.club_id, ''),
	       COALESCE(events.created_by, ''), events.created_at, events.updated_at
	FROM events`

func scanEvent(row *sql.Row) (*Event, error) {
	e, err := scanEventFrom(row.Scan, time.Now())
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	return e, err
}

func scanEventRow(rows *sql.Rows, now time.Time) (*Event, error) {
	e, err := scanEventFrom(rows.Scan, now)
	if err != nil {
		return nil, fmt.Errorf("failed to scan event: %w", err)
	}
	return e, nil
}

func scanEventFrom(scan func(...any) error, now time.Time) (*Event, error) {
	var e Event
	var endDate sql.NullString
	var createdAt, updatedAt int64

	err := scan(&e.ID, &e.Name, &e.Type, &e.Description, &e.StartDate, &endDate,
		&e.Handicap, &e.Location, &e.ClubID, &e.CreatedBy, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if endDate.Valid {
		e.EndDate = &endDate.String
	}
	e.CreatedAt = time.Unix(createdAt, 0)
	e.UpdatedAt = time.Unix(updatedAt, 0)
	e.Status = DeriveStatus(e.StartDate, e.EndDate, now)
	return &e, nil
}
