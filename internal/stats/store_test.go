package stats_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sasgl/league-api/internal/database"
	"github.com/sasgl/league-api/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (stats.StatsStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return stats.New(db), db, teardown
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

func insertClub(t *testing.T, db *sql.DB, name, createdBy string) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now().Unix()
	_, err := db.Exec(`
		INSERT INTO clubs (id, name, created_by, status, created_at, updated_at)
		VALUES (?, ?, ?, 'approved', ?, ?)`,
		id, name, createdBy, now, now)
	require.NoError(t, err)
	return id
}

func insertEvent(t *testing.T, db *sql.DB, clubID string) string {
	t.Helper()
	id := uuid.New().String()
	now := time.Now().Unix()
	var club any
	if clubID != "" {
		club = clubID
	}
	_, err := db.Exec(`
		INSERT INTO events (id, name, type, start_date, club_id, created_at, updated_at)
		VALUES (?, 'Test League', 'league', '2026-01-01', ?, ?, ?)`,
		id, club, now, now)
	require.NoError(t, err)
	return id
}

func enroll(t *testing.T, db *sql.DB, clubID, userID, status string) {
	t.Helper()
	_, err := db.Exec(`
		INSERT INTO club_members (club_id, user_id, role, status, joined_at)
		VALUES (?, ?, 'member', ?, ?)`,
		clubID, userID, status, time.Now().Unix())
	require.NoError(t, err)
}

func TestRecordResult_Cascade(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	userID := insertUser(t, db, "Player")
	clubID := insertClub(t, db, "Club", userID)
	enroll(t, db, clubID, userID, "approved")
	eventID := insertEvent(t, db, clubID)

	score := 72
	recorded, err := store.RecordResult(stats.Submission{
		EventID:     eventID,
		UserID:      userID,
		Score:       &score,
		Points:      20,
		Birdies:     2,
		Strokes:     72,
		Putts:       30,
		GreensInReg: 10,
		FairwaysHit: 8,
		SubmittedBy: userID,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, recorded.Event.GamesPlayed)
	assert.Equal(t, 20, recorded.Event.Points)
	assert.Equal(t, 2, recorded.Event.Birdies)
	assert.InDelta(t, 20.0, recorded.Event.AvgPoints, 0.001)

	assert.Equal(t, 1, recorded.User.TotalGames)
	assert.Equal(t, 20, recorded.User.TotalPoints)
	assert.Equal(t, 72, recorded.User.TotalStrokes)
	assert.Equal(t, 10, recorded.User.GreensInRegulation)

	// Participant row carries the raw round and a submission timestamp.
	var points int
	var submittedAt sql.NullInt64
	require.NoError(t, db.QueryRow(
		"SELECT points, submitted_at FROM event_participants WHERE event_id = ? AND user_id = ?",
		eventID, userID).Scan(&points, &submittedAt))
	assert.Equal(t, 20, points)
	assert.True(t, submittedAt.Valid)

	// Club aggregate was fanned out.
	cs, err := store.ClubStats(clubID)
	require.NoError(t, err)
	assert.Equal(t, 1, cs.TotalGames)
	assert.Equal(t, 20, cs.TotalPoints)
}

func TestRecordResult_ResubmissionCountsAsNewGame(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	userID := insertUser(t, db, "Player")
	eventID := insertEvent(t, db, "")

	_, err := store.RecordResult(stats.Submission{EventID: eventID, UserID: userID, Points: 20})
	require.NoError(t, err)

	recorded, err := store.RecordResult(stats.Submission{EventID: eventID, UserID: userID, Points: 30})
	require.NoError(t, err)

	assert.Equal(t, 2, recorded.Event.GamesPlayed)
	assert.Equal(t, 50, recorded.Event.Points)
	assert.InDelta(t, 25.0, recorded.Event.AvgPoints, 0.001)

	assert.Equal(t, 2, recorded.User.TotalGames)
	assert.Equal(t, 50, recorded.User.TotalPoints)
	assert.InDelta(t, 25.0, recorded.User.AvgPoints, 0.001)

	// The participant row keeps only the latest round.
	var points int
	require.NoError(t, db.QueryRow(
		"SELECT points FROM event_participants WHERE event_id = ? AND user_id = ?",
		eventID, userID).Scan(&points))
	assert.Equal(t, 30, points)
}

func TestRecordResult_UnknownEventOrUser(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	userID := insertUser(t, db, "Player")
	eventID := insertEvent(t, db, "")

	_, err := store.RecordResult(stats.Submission{EventID: "missing", UserID: userID, Points: 10})
	assert.ErrorIs(t, err, stats.ErrEventNotFound)

	_, err = store.RecordResult(stats.Submission{EventID: eventID, UserID: "missing", Points: 10})
	assert.ErrorIs(t, err, stats.ErrUserNotFound)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM event_participants").Scan(&count))
	assert.Zero(t, count)
}

func TestRecordResult_RollsBackOnFailure(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	userID := insertUser(t, db, "Player")
	clubID := insertClub(t, db, "Club", userID)
	enroll(t, db, clubID, userID, "approved")
	eventID := insertEvent(t, db, clubID)

	// Breaking the last table in the cascade must void the whole submission.
	_, err := db.Exec("DROP TABLE club_stats")
	require.NoError(t, err)

	_, err = store.RecordResult(stats.Submission{EventID: eventID, UserID: userID, Points: 20})
	require.Error(t, err)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM event_participants").Scan(&count))
	assert.Zero(t, count, "participant row must not survive the rollback")
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM user_stats").Scan(&count))
	assert.Zero(t, count, "user aggregate must not survive the rollback")
}

func TestRecordResult_MultiClubFanOut(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	userID := insertUser(t, db, "Player")
	clubA := insertClub(t, db, "Club A", userID)
	clubB := insertClub(t, db, "Club B", insertUser(t, db, "Other"))
	clubC := insertClub(t, db, "Club C", insertUser(t, db, "Third"))
	enroll(t, db, clubA, userID, "approved")
	enroll(t, db, clubB, userID, "approved")
	enroll(t, db, clubC, userID, "pending")
	eventID := insertEvent(t, db, clubA)

	_, err := store.RecordResult(stats.Submission{EventID: eventID, UserID: userID, Points: 15})
	require.NoError(t, err)

	for _, id := range []string{clubA, clubB} {
		cs, err := store.ClubStats(id)
		require.NoError(t, err)
		assert.Equal(t, 15, cs.TotalPoints, "approved club gets the points")
	}

	// Pending membership gets nothing.
	cs, err := store.ClubStats(clubC)
	require.NoError(t, err)
	assert.Zero(t, cs.TotalGames)
}

func TestUserStats_ZeroedWhenUnplayed(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	userID := insertUser(t, db, "Player")

	us, err := store.UserStats(userID)
	require.NoError(t, err)
	assert.Equal(t, userID, us.UserID)
	assert.Zero(t, us.TotalGames)

	_, err = store.UserStats("missing")
	assert.ErrorIs(t, err, stats.ErrUserNotFound)
}

func TestClubStats_UnknownClub(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()

	_, err := store.ClubStats("missing")
	assert.ErrorIs(t, err, stats.ErrClubNotFound)
}

func TestDashboardStats(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	userID := insertUser(t, db, "Player")
	clubID := insertClub(t, db, "Home Club", userID)
	enroll(t, db, clubID, userID, "approved")
	first := insertEvent(t, db, clubID)
	second := insertEvent(t, db, clubID)

	_, err := store.RecordResult(stats.Submission{EventID: first, UserID: userID, Points: 20})
	require.NoError(t, err)
	_, err = store.RecordResult(stats.Submission{EventID: second, UserID: userID, Points: 35})
	require.NoError(t, err)

	d, err := store.DashboardStats(userID)
	require.NoError(t, err)
	assert.Equal(t, "Player", d.Name)
	assert.Equal(t, "Home Club", d.ClubName)
	assert.Equal(t, 55, d.TotalPoints)
	assert.Equal(t, 2, d.EventsPlayed)
	assert.Equal(t, 35, d.BestScore)

	_, err = store.DashboardStats("missing")
	assert.ErrorIs(t, err, stats.ErrUserNotFound)
}

func TestAdminSnapshot(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	userID := insertUser(t, db, "Player")
	clubID := insertClub(t, db, "Club", userID)
	enroll(t, db, clubID, userID, "approved")
	eventID := insertEvent(t, db, clubID)

	_, err := store.RecordResult(stats.Submission{EventID: eventID, UserID: userID, Points: 20})
	require.NoError(t, err)

	snap, err := store.AdminSnapshot()
	require.NoError(t, err)
	assert.Len(t, snap.Users, 1)
	assert.Len(t, snap.Clubs, 1)
	assert.Len(t, snap.ClubMembers, 1)
	assert.Len(t, snap.Events, 1)
	assert.Len(t, snap.Participants, 1)
	assert.Len(t, snap.UserStats, 1)
	assert.Len(t, snap.ClubStats, 1)
	assert.Len(t, snap.EventUserStats, 1)
	assert.Equal(t, 20, snap.UserStats[0].TotalPoints)
}
