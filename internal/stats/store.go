package stats

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new StatsStore.
func New(db *sql.DB) StatsStore {
	return &store{
		db: db,
	}
}

// RecordResult applies one submission in a single transaction: the raw
// participant row is overwritten, then the per-event, per-user and per-club
// aggregates are bumped incrementally. Every submission counts as a game
// played, resubmissions included. If any step fails nothing is written.
func (s *store) RecordResult(sub Submission) (*RecordedStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var eventClubID sql.NullString
	err = tx.QueryRow("SELECT club_id FROM events WHERE id = ?", sub.EventID).Scan(&eventClubID)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up event: %w", err)
	}

	var userExists bool
	err = tx.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", sub.UserID).Scan(&userExists)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !userExists {
		return nil, ErrUserNotFound
	}

	now := time.Now()

	var score any
	if sub.Score != nil {
		score = *sub.Score
	}
	var clubID any
	if eventClubID.Valid {
		clubID = eventClubID.String
	}

	// The participant row keeps only the latest submitted round.
	_, err = tx.Exec(`
		INSERT INTO event_participants
			(event_id, user_id, club_id, score, points, birdies, strokes, putts,
			 greens_in_reg, fairways_hit, notes, submitted_by, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(event_id, user_id) DO UPDATE SET
			score = excluded.score,
			points = excluded.points,
			birdies = excluded.birdies,
			strokes = excluded.strokes,
			putts = excluded.putts,
			greens_in_reg = excluded.greens_in_reg,
			fairways_hit = excluded.fairways_hit,
			notes = excluded.notes,
			submitted_by = excluded.submitted_by,
			submitted_at = excluded.submitted_at`,
		sub.EventID, sub.UserID, clubID, score, sub.Points, sub.Birdies,
		sub.Strokes, sub.Putts, sub.GreensInReg, sub.FairwaysHit,
		sub.Notes, sub.SubmittedBy, now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert participant: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO event_user_stats (event_id, user_id, games_played, points, birdies, avg_points)
		VALUES (?, ?, 1, ?, ?, ?)
		ON CONFLICT(event_id, user_id) DO UPDATE SET
			games_played = games_played + 1,
			points = points + excluded.points,
			birdies = birdies + excluded.birdies,
			avg_points = CAST(points + excluded.points AS REAL) / (games_played + 1)`,
		sub.EventID, sub.UserID, sub.Points, sub.Birdies, float64(sub.Points),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert event stats: %w", err)
	}

	_, err = tx.Exec(`
		INSERT INTO user_stats
			(user_id, total_games, total_points, total_birdies, total_strokes,
			 total_putts, greens_in_regulation, fairways_hit, avg_points, last_updated)
		VALUES (?, 1, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			total_games = COALESCE(total_games, 0) + 1,
			total_points = COALESCE(total_points, 0) + excluded.total_points,
			total_birdies = COALESCE(total_birdies, 0) + excluded.total_birdies,
			total_strokes = COALESCE(total_strokes, 0) + excluded.total_strokes,
			total_putts = COALESCE(total_putts, 0) + excluded.total_putts,
			greens_in_regulation = COALESCE(greens_in_regulation, 0) + excluded.greens_in_regulation,
			fairways_hit = COALESCE(fairways_hit, 0) + excluded.fairways_hit,
			avg_points = CAST(COALESCE(total_points, 0) + excluded.total_points AS REAL)
				/ (COALESCE(total_games, 0) + 1),
			last_updated = excluded.last_updated`,
		sub.UserID, sub.Points, sub.Birdies, sub.Strokes, sub.Putts,
		sub.GreensInReg, sub.FairwaysHit, float64(sub.Points), now.Unix(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user stats: %w", err)
	}

	// Fan out to every club where the player is an approved member.
	rows, err := tx.Query(
		"SELECT club_id FROM club_members WHERE user_id = ? AND status = 'approved'",
		sub.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	var clubIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan club id: %w", err)
		}
		clubIDs = append(clubIDs, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}

	for _, id := range clubIDs {
		_, err = tx.Exec(`
			INSERT INTO club_stats
				(club_id, total_games, total_points, total_birdies, total_strokes,
				 total_putts, greens_in_regulation, fairways_hit, avg_points_per_player, last_updated)
			VALUES (?, 1, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(club_id) DO UPDATE SET
				total_games = COALESCE(total_games, 0) + 1,
				total_points = COALESCE(total_points, 0) + excluded.total_points,
				total_birdies = COALESCE(total_birdies, 0) + excluded.total_birdies,
				total_strokes = COALESCE(total_strokes, 0) + excluded.total_strokes,
				total_putts = COALESCE(total_putts, 0) + excluded.total_putts,
				greens_in_regulation = COALESCE(greens_in_regulation, 0) + excluded.greens_in_regulation,
				fairways_hit = COALESCE(fairways_hit, 0) + excluded.fairways_hit,
				avg_points_per_player = CAST(COALESCE(total_points, 0) + excluded.total_points AS REAL)
					/ (COALESCE(total_games, 0) + 1),
				last_updated = excluded.last_updated`,
			id, sub.Points, sub.Birdies, sub.Strokes, sub.Putts,
			sub.GreensInReg, sub.FairwaysHit, float64(sub.Points), now.Unix(),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert club stats for %s: %w", id, err)
		}
	}

	recorded := &RecordedStats{}
	err = tx.QueryRow(`
		SELECT event_id, user_id, games_played, points, birdies, avg_points
		FROM event_user_stats WHERE event_id = ? AND user_id = ?`,
		sub.EventID, sub.UserID).Scan(
		&recorded.Event.EventID, &recorded.Event.UserID, &recorded.Event.GamesPlayed,
		&recorded.Event.Points, &recorded.Event.Birdies, &recorded.Event.AvgPoints)
	if err != nil {
		return nil, fmt.Errorf("failed to read back event stats: %w", err)
	}

	userStats, err := scanUserStats(tx.QueryRow(selectUserStats, sub.UserID))
	if err != nil {
		return nil, fmt.Errorf("failed to read back user stats: %w", err)
	}
	recorded.User = *userStats

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit stats: %w", err)
	}

	log.Info("Recorded result", "eventID", sub.EventID, "userID", sub.UserID,
		"points", sub.Points, "clubs", len(clubIDs))
	return recorded, nil
}

// UserStats returns the player's career aggregate, zeroed when the player
// has not played yet.
func (s *store) UserStats(userID string) (*UserStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM users WHERE id = ?)", userID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	us, err := scanUserStats(s.db.QueryRow(selectUserStats, userID))
	if err == sql.ErrNoRows {
		return &UserStats{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user stats: %w", err)
	}
	return us, nil
}

func (s *store) ClubStats(clubID string) (*ClubStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var exists bool
	err := s.db.QueryRow("SELECT EXISTS(SELECT 1 FROM clubs WHERE id = ?)", clubID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to look up club: %w", err)
	}
	if !exists {
		return nil, ErrClubNotFound
	}

	cs := &ClubStats{}
	var lastUpdated int64
	err = s.db.QueryRow(`
		SELECT club_id, total_games, total_points, total_birdies, total_strokes,
		       total_putts, greens_in_regulation, fairways_hit, avg_points_per_player, last_updated
		FROM club_stats WHERE club_id = ?`, clubID).Scan(
		&cs.ClubID, &cs.TotalGames, &cs.TotalPoints, &cs.TotalBirdies,
		&cs.TotalStrokes, &cs.TotalPutts, &cs.GreensInRegulation,
		&cs.FairwaysHit, &cs.AvgPointsPerPlayer, &lastUpdated)
	if err == sql.ErrNoRows {
		return &ClubStats{ClubID: clubID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read club stats: %w", err)
	}
	cs.LastUpdated = time.Unix(lastUpdated, 0)
	return cs, nil
}

// DashboardStats builds the player's home-screen summary from the users,
// membership, aggregate and participant tables.
func (s *store) DashboardStats(userID string) (*DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d := &DashboardStats{}
	err := s.db.QueryRow("SELECT name, role FROM users WHERE id = ?", userID).Scan(&d.Name, &d.Role)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	err = s.db.QueryRow(`
		SELECT c.name FROM clubs c
		JOIN club_members cm ON cm.club_id = c.id
		WHERE cm.user_id = ? AND cm.status = 'approved'
		ORDER BY cm.joined_at ASC LIMIT 1`, userID).Scan(&d.ClubName)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to look up club: %w", err)
	}

	err = s.db.QueryRow(`
		SELECT COALESCE(total_points, 0), COALESCE(total_games, 0)
		FROM user_stats WHERE user_id = ?`, userID).Scan(&d.TotalPoints, &d.EventsPlayed)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("failed to read totals: %w", err)
	}

	err = s.db.QueryRow(`
		SELECT COALESCE(MAX(points), 0) FROM event_participants
		WHERE user_id = ? AND submitted_at IS NOT NULL`, userID).Scan(&d.BestScore)
	if err != nil {
		return nil, fmt.Errorf("failed to read best score: %w", err)
	}

	return d, nil
}

// AdminSnapshot dumps every table for the admin console.
func (s *store) AdminSnapshot() (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{}

	rows, err := s.db.Query("SELECT id, name, email, role FROM users ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	for rows.Next() {
		var u SnapshotUser
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.Role); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		snap.Users = append(snap.Users, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(selectUserStatsAll)
	if err != nil {
		return nil, fmt.Errorf("failed to query user stats: %w", err)
	}
	for rows.Next() {
		us, err := scanUserStatsFrom(rows.Scan)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan user stats: %w", err)
		}
		snap.UserStats = append(snap.UserStats, *us)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query("SELECT id, name, status, created_by FROM clubs ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query clubs: %w", err)
	}
	for rows.Next() {
		var c SnapshotClub
		if err := rows.Scan(&c.ID, &c.Name, &c.Status, &c.CreatedBy); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan club: %w", err)
		}
		snap.Clubs = append(snap.Clubs, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query("SELECT club_id, user_id, role, status FROM club_members")
	if err != nil {
		return nil, fmt.Errorf("failed to query club members: %w", err)
	}
	for rows.Next() {
		var m SnapshotMember
		if err := rows.Scan(&m.ClubID, &m.UserID, &m.Role, &m.Status); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		snap.ClubMembers = append(snap.ClubMembers, m)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT club_id, total_games, total_points, total_birdies, total_strokes,
		       total_putts, greens_in_regulation, fairways_hit, avg_points_per_player, last_updated
		FROM club_stats`)
	if err != nil {
		return nil, fmt.Errorf("failed to query club stats: %w", err)
	}
	for rows.Next() {
		var cs ClubStats
		var lastUpdated int64
		err := rows.Scan(&cs.ClubID, &cs.TotalGames, &cs.TotalPoints, &cs.TotalBirdies,
			&cs.TotalStrokes, &cs.TotalPutts, &cs.GreensInRegulation,
			&cs.FairwaysHit, &cs.AvgPointsPerPlayer, &lastUpdated)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan club stats: %w", err)
		}
		cs.LastUpdated = time.Unix(lastUpdated, 0)
		snap.ClubStats = append(snap.ClubStats, cs)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT id, name, type, start_date, end_date, COALESCE(club_id, '')
		FROM events ORDER BY start_date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	for rows.Next() {
		var e SnapshotEvent
		var endDate sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &e.Type, &e.StartDate, &endDate, &e.ClubID); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if endDate.Valid {
			e.EndDate = &endDate.String
		}
		snap.Events = append(snap.Events, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT event_id, user_id, score, points, birdies, COALESCE(submitted_by, ''), submitted_at
		FROM event_participants`)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	for rows.Next() {
		var p SnapshotParticipant
		var score, submittedAt sql.NullInt64
		err := rows.Scan(&p.EventID, &p.UserID, &score, &p.Points, &p.Birdies,
			&p.SubmittedBy, &submittedAt)
		if err != nil {
			rows.Close()
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
		snap.Participants = append(snap.Participants, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.Query(`
		SELECT event_id, user_id, games_played, points, birdies, avg_points
		FROM event_user_stats`)
	if err != nil {
		return nil, fmt.Errorf("failed to query event stats: %w", err)
	}
	for rows.Next() {
		var es EventUserStats
		err := rows.Scan(&es.EventID, &es.UserID, &es.GamesPlayed, &es.Points,
			&es.Birdies, &es.AvgPoints)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan event stats: %w", err)
		}
		snap.EventUserStats = append(snap.EventUserStats, es)
	}
	rows.Close()
	return snap, rows.Err()
}

const selectUserStatsAll = `
	SELECT user_id, total_games, total_points, total_birdies, total_strokes,
	       total_putts, greens_in_regulation, fairways_hit, avg_points, last_updated
	FROM user_stats`

const selectUserStats = selectUserStatsAll + " WHERE user_id = ?"

func scanUserStats(row *sql.Row) (*UserStats, error) {
	return scanUserStatsFrom(row.Scan)
}

func scanUserStatsFrom(scan func(...any) error) (*UserStats, error) {
	us := &UserStats{}
	var lastUpdated int64
	err := scan(&us.UserID, &us.TotalGames, &us.TotalPoints, &us.TotalBirdies,
		&us.TotalStrokes, &us.TotalPutts, &us.GreensInRegulation,
		&us.FairwaysHit, &us.AvgPoints, &lastUpdated)
	if err != nil {
		return nil, err
	}
	us.LastUpdated = time.Unix(lastUpdated, 0)
	return us, nil
}
