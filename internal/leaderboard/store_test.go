package leaderboard_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sasgl/league-api/internal/database"
	"github.com/sasgl/league-api/internal/leaderboard"
	"github.com/sasgl/league-api/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (leaderboard.LeaderboardStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return leaderboard.New(db), db, teardown
}

func insertUser(t *testing.T, db *sql.DB, name string) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now().Unix()
	_, err := db.Exec(`
		INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, 'hash', 'player', ?, ?)`,
		id, name, name+"@example.com", now, now)
	require.NoError(t, err)
	return id
}

func insertClub(t *testing.T, db *sql.DB, createdBy string) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now().Unix()
	_, err := db.Exec(`
		INSERT INTO clubs (id, name, created_by, status, created_at, updated_at)
		VALUES (?, 'Club', ?, 'approved', ?, ?)`,
		id, createdBy, now, now)
	require.NoError(t, err)
	return id
}

func insertEvent(t *testing.T, db *sql.DB, clubID, eventType, startDate string, endDate *string) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now().Unix()
	var club, end any
	if clubID != "" {
		club = clubID
	}
	if endDate != nil {
		end = *endDate
	}
	_, err := db.Exec(`
		INSERT INTO events (id, name, type, start_date, end_date, club_id, created_at, updated_at)
		VALUES (?, 'Event', ?, ?, ?, ?, ?, ?)`,
		id, eventType, startDate, end, club, now, now)
	require.NoError(t, err)
	return id
}

func enroll(t *testing.T, db *sql.DB, clubID, userID string) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO club_members (club_id, user_id, role, status, joined_at)
		VALUES (?, ?, 'member', 'approved', ?)`,
		clubID, userID, time.Now().Unix())
	require.NoError(t, err)
}

func insertRound(t *testing.T, db *sql.DB, eventID, userID string, points int, submitted bool) {
	t.Helper()
	var submittedAt any
	if submitted {
		submittedAt = time.Now().Unix()
	}
	_, err := db.Exec(`
		INSERT INTO event_participants (event_id, user_id, points, submitted_at)
		VALUES (?, ?, ?, ?)`,
		eventID, userID, points, submittedAt)
	require.NoError(t, err)
}

func TestClubStandings_BestFourOfN(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	userID := insertUser(t, db, "Player")
	clubID := insertClub(t, db, userID)
	enroll(t, db, clubID, userID)

	for _, points := range []int{10, 50, 30, 5, 40} {
		eventID := insertEvent(t, db, clubID, league.TypeLeague, "2026-01-01", nil)
		insertRound(t, db, eventID, userID, points, true)
	}

	standings, err := store.ClubStandings(clubID)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, []int{50, 40, 30, 10}, standings[0].Scores, "worst round dropped")
	assert.Equal(t, 130, standings[0].Total)
}

func TestClubStandings_FewerRoundsThanCutoff(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	userID := insertUser(t, db, "Player")
	clubID := insertClub(t, db, userID)
	enroll(t, db, clubID, userID)

	for _, points := range []int{20, 10} {
		eventID := insertEvent(t, db, clubID, league.TypeLeague, "2026-01-01", nil)
		insertRound(t, db, eventID, userID, points, true)
	}

	standings, err := store.ClubStandings(clubID)
	require.NoError(t, err)
	require.Len(t, standings, 1)
	assert.Equal(t, []int{20, 10}, standings[0].Scores)
	assert.Equal(t, 30, standings[0].Total)
}

func TestClubStandings_OrderingAndTieBreak(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	alice := insertUser(t, db, "Alice")
	bob := insertUser(t, db, "Bob")
	carol := insertUser(t, db, "Carol")
	clubID := insertClub(t, db, alice)
	for _, id := range []string{alice, bob, carol} {
		enroll(t, db, clubID, id)
	}

	eventID := insertEvent(t, db, clubID, league.TypeLeague, "2026-01-01", nil)
	insertRound(t, db, eventID, alice, 30, true)
	insertRound(t, db, eventID, bob, 40, true)
	insertRound(t, db, eventID, carol, 30, true)

	standings, err := store.ClubStandings(clubID)
	require.NoError(t, err)
	require.Len(t, standings, 3)
	assert.Equal(t, bob, standings[0].UserID)

	// Equal totals break on user id ascending.
	tied := []string{standings[1].UserID, standings[2].UserID}
	assert.Less(t, tied[0], tied[1])
	assert.ElementsMatch(t, []string{alice, carol}, tied)
}

func TestClubStandings_ExcludesUnsubmittedAndOutsiders(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	member := insertUser(t, db, "Member")
	outsider := insertUser(t, db, "Outsider")
	clubID := insertClub(t, db, member)
	enroll(t, db, clubID, member)

	eventID := insertEvent(t, db, clubID, league.TypeLeague, "2026-01-01", nil)
	insertRound(t, db, eventID, member, 20, false)
	insertRound(t, db, eventID, outsider, 99, true)

	standings, err := store.ClubStandings(clubID)
	require.NoError(t, err)
	assert.Empty(t, standings, "auto-enrolled zero rows and non-members never rank")
}

func TestClubStandings_UnknownClub(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.ClubStandings("missing")
	assert.ErrorIs(t, err, leaderboard.ErrClubNotFound)
}

func TestClubStandings_ReadIsIdempotent(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	userID := insertUser(t, db, "Player")
	clubID := insertClub(t, db, userID)
	enroll(t, db, clubID, userID)
	eventID := insertEvent(t, db, clubID, league.TypeLeague, "2026-01-01", nil)
	insertRound(t, db, eventID, userID, 25, true)

	first, err := store.ClubStandings(clubID)
	require.NoError(t, err)
	second, err := store.ClubStandings(clubID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLeagueDetail(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	alice := insertUser(t, db, "Alice")
	bob := insertUser(t, db, "Bob")
	clubID := insertClub(t, db, alice)
	leagueID := insertEvent(t, db, clubID, league.TypeLeague,
		time.Now().AddDate(0, 0, -1).Format(league.DateLayout), nil)

	for _, row := range []struct {
		userID string
		points int
	}{{alice, 30}, {bob, 45}} {
		_, err := db.Exec(`
			INSERT INTO event_user_stats (event_id, user_id, games_played, points, birdies, avg_points)
			VALUES (?, ?, 1, ?, 0, ?)`,
			leagueID, row.userID, row.points, float64(row.points))
		require.NoError(t, err)
	}

	detail, err := store.LeagueDetail(leagueID)
	require.NoError(t, err)
	assert.Equal(t, league.StatusActive, detail.League.Status)
	require.Len(t, detail.Leaderboard, 2)
	assert.Equal(t, "Bob", detail.Leaderboard[0].Name)
	assert.Equal(t, 45, detail.Leaderboard[0].Points)
	assert.Equal(t, "Alice", detail.Leaderboard[1].Name)
}

func TestLeagueDetail_OnlyLeagues(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	userID := insertUser(t, db, "Player")
	clubID := insertClub(t, db, userID)
	tournamentID := insertEvent(t, db, clubID, league.TypeTournament, "2026-01-01", nil)

	_, err := store.LeagueDetail(tournamentID)
	assert.ErrorIs(t, err, leaderboard.ErrLeagueNotFound)

	_, err = store.LeagueDetail("missing")
	assert.ErrorIs(t, err, leaderboard.ErrLeagueNotFound)
}
