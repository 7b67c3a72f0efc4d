package leaderboard

import (
	"database/sql"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sasgl/league-api/internal/league"
)

// New creates a new LeaderboardStore.
func New(db *sql.DB) LeaderboardStore {
	return &store{
		db: db,
	}
}

// ClubStandings ranks the club's approved members by the sum of their best
// counted rounds across the club's events. Only submitted rounds count; a
// player with fewer rounds than the cutoff is ranked on what they have.
func (s *store) ClubStandings(clubID string) ([]Standing, error) {
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

	rows, err := s.db.Query(`
		WITH ranked AS (
			SELECT ep.user_id, u.name, ep.points,
			       ROW_NUMBER() OVER (PARTITION BY ep.user_id ORDER BY ep.points DESC) AS rn
			FROM event_participants ep
			JOIN users u ON u.id = ep.user_id
			JOIN events e ON e.id = ep.event_id
			JOIN club_members cm
			  ON cm.club_id = ? AND cm.user_id = ep.user_id AND cm.status = 'approved'
			WHERE e.club_id = ? AND ep.submitted_at IS NOT NULL
		)
		SELECT user_id, name, points FROM ranked
		WHERE rn <= ?
		ORDER BY user_id, points DESC`,
		clubID, clubID, countedRounds)
	if err != nil {
		return nil, fmt.Errorf("failed to query standings: %w", err)
	}
	defer rows.Close()

	var standings []Standing
	for rows.Next() {
		var userID, name string
		var points int
		if err := rows.Scan(&userID, &name, &points); err != nil {
			return nil, fmt.Errorf("failed to scan standing row: %w", err)
		}
		if len(standings) == 0 || standings[len(standings)-1].UserID != userID {
			standings = append(standings, Standing{UserID: userID, Name: name})
		}
		last := &standings[len(standings)-1]
		last.Scores = append(last.Scores, points)
		last.Total += points
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Total != standings[j].Total {
			return standings[i].Total > standings[j].Total
		}
		return standings[i].UserID < standings[j].UserID
	})

	log.Debug("Built club standings", "clubID", clubID, "players", len(standings))
	return standings, nil
}

// LeagueDetail returns the league with its leaderboard read straight from
// the running per-event aggregates, highest points first.
func (s *store) LeagueDetail(leagueID string) (*LeagueDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	detail := &LeagueDetail{}
	var endDate sql.NullString
	var createdAt, updatedAt int64
	e := &detail.League
	err := s.db.QueryRow(`
		SELECT id, name, type, COALESCE(description, ''), start_date, end_date,
		       handicap, COALESCE(location, ''), COALESCE(club_id, ''),
		       COALESCE(created_by, ''), created_at, updated_at
		FROM events WHERE id = ? AND type = ?`, leagueID, league.TypeLeague).Scan(
		&e.ID, &e.Name, &e.Type, &e.Description, &e.StartDate, &endDate,
		&e.Handicap, &e.Location, &e.ClubID, &e.CreatedBy, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrLeagueNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up league: %w", err)
	}
	if endDate.Valid {
		e.EndDate = &endDate.String
	}
	e.CreatedAt = time.Unix(createdAt, 0)
	e.UpdatedAt = time.Unix(updatedAt, 0)
	e.Status = league.DeriveStatus(e.StartDate, e.EndDate, time.Now())

	rows, err := s.db.Query(`
		SELECT es.user_id, u.name, es.games_played, es.points, es.birdies, es.avg_points
		FROM event_user_stats es
		JOIN users u ON u.id = es.user_id
		WHERE es.event_id = ?
		ORDER BY es.points DESC, es.user_id ASC`, leagueID)
	if err != nil {
		return nil, fmt.Errorf("failed to query leaderboard: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r Row
		err := rows.Scan(&r.UserID, &r.Name, &r.GamesPlayed, &r.Points, &r.Birdies, &r.AvgPoints)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard row: %w", err)
		}
		detail.Leaderboard = append(detail.Leaderboard, r)
	}
	return detail, rows.Err()
}
