package league_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sasgl/league-api/internal/database"
	"github.com/sasgl/league-api/internal/league"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (league.LeagueStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return league.New(db), db, teardown
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
		INSERT INTO clubs (id, name, created_by, status, logo_url, created_at, updated_at)
		VALUES (?, 'Test Club', ?, 'approved', 'https://img.test/logo.png', ?, ?)`,
		id, createdBy, now, now)
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

func dateOffset(days int) string {
	return time.Now().AddDate(0, 0, days).Format(league.DateLayout)
}

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)
	end := "2026-06-20"

	assert.Equal(t, league.StatusUpcoming, league.DeriveStatus("2026-06-16", nil, now))
	assert.Equal(t, league.StatusActive, league.DeriveStatus("2026-06-15", &end, now))
	assert.Equal(t, league.StatusActive, league.DeriveStatus("2026-06-01", nil, now),
		"open-ended event stays active once started")

	past := "2026-06-10"
	assert.Equal(t, league.StatusCompleted, league.DeriveStatus("2026-06-01", &past, now))
}

func TestCreateEvent_AutoEnrollsApprovedMembers(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	captainID := insertUser(t, db, "Captain")
	memberID := insertUser(t, db, "Member")
	pendingID := insertUser(t, db, "Pending")
	clubID := insertClub(t, db, captainID)
	enroll(t, db, clubID, captainID, "approved")
	enroll(t, db, clubID, memberID, "approved")
	enroll(t, db, clubID, pendingID, "pending")

	e, err := store.CreateEvent(league.CreateEventParams{
		Name:      "Winter League",
		Type:      league.TypeLeague,
		StartDate: dateOffset(7),
		ClubID:    clubID,
		CreatedBy: captainID,
	})
	require.NoError(t, err)
	assert.Equal(t, league.StatusUpcoming, e.Status)

	participants, err := store.Participants(e.ID)
	require.NoError(t, err)
	require.Len(t, participants, 2, "only approved members are enrolled")
	for _, p := range participants {
		assert.NotEqual(t, pendingID, p.UserID)
		assert.Equal(t, 0, p.Points)
		assert.Nil(t, p.Score)
		assert.Nil(t, p.SubmittedAt)
	}
}

func TestCreateEvent_NoClub(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	adminID := insertUser(t, db, "Admin")

	e, err := store.CreateEvent(league.CreateEventParams{
		Name:      "Open Day",
		Type:      league.TypeCasual,
		StartDate: dateOffset(1),
		CreatedBy: adminID,
	})
	require.NoError(t, err)

	participants, err := store.Participants(e.ID)
	require.NoError(t, err)
	assert.Empty(t, participants)
}

func TestUpdateAndDeleteEvent(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	adminID := insertUser(t, db, "Admin")
	e, err := store.CreateEvent(league.CreateEventParams{
		Name:      "Old Name",
		Type:      league.TypeCasual,
		StartDate: dateOffset(1),
		CreatedBy: adminID,
	})
	require.NoError(t, err)

	end := dateOffset(10)
	updated, err := store.UpdateEvent(e.ID, league.UpdateEventParams{
		Name:      "New Name",
		Type:      league.TypeTournament,
		StartDate: dateOffset(2),
		EndDate:   &end,
		Handicap:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, league.TypeTournament, updated.Type)
	assert.True(t, updated.Handicap)
	require.NotNil(t, updated.EndDate)
	assert.Equal(t, end, *updated.EndDate)

	_, err = store.UpdateEvent("missing", league.UpdateEventParams{Name: "x"})
	assert.ErrorIs(t, err, league.ErrEventNotFound)

	require.NoError(t, store.DeleteEvent(e.ID))
	assert.ErrorIs(t, store.DeleteEvent(e.ID), league.ErrEventNotFound)

	_, err = store.GetEvent(e.ID)
	assert.ErrorIs(t, err, league.ErrEventNotFound)
}

func TestListEvents_OrderedByStartDateDesc(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	adminID := insertUser(t, db, "Admin")
	for _, offset := range []int{3, 1, 2} {
		_, err := store.CreateEvent(league.CreateEventParams{
			Name:      "Event",
			Type:      league.TypeCasual,
			StartDate: dateOffset(offset),
			CreatedBy: adminID,
		})
		require.NoError(t, err)
	}

	events, err := store.ListEvents()
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.True(t, events[0].StartDate > events[1].StartDate)
	assert.True(t, events[1].StartDate > events[2].StartDate)
}

func TestRegisterForLeague(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	adminID := insertUser(t, db, "Admin")
	playerID := insertUser(t, db, "Player")

	upcoming, err := store.CreateEvent(league.CreateEventParams{
		Name:      "Upcoming League",
		Type:      league.TypeLeague,
		StartDate: dateOffset(7),
		CreatedBy: adminID,
	})
	require.NoError(t, err)

	require.NoError(t, store.RegisterForLeague(upcoming.ID, playerID))
	assert.ErrorIs(t, store.RegisterForLeague(upcoming.ID, playerID), league.ErrAlreadyRegistered)

	// A league that has already started is closed.
	started, err := store.CreateEvent(league.CreateEventParams{
		Name:      "Started League",
		Type:      league.TypeLeague,
		StartDate: dateOffset(-1),
		CreatedBy: adminID,
	})
	require.NoError(t, err)
	assert.ErrorIs(t, store.RegisterForLeague(started.ID, playerID), league.ErrNotUpcoming)

	// Non-league events never accept self-registration.
	casual, err := store.CreateEvent(league.CreateEventParams{
		Name:      "Casual Round",
		Type:      league.TypeCasual,
		StartDate: dateOffset(7),
		CreatedBy: adminID,
	})
	require.NoError(t, err)
	assert.ErrorIs(t, store.RegisterForLeague(casual.ID, playerID), league.ErrNotUpcoming)

	assert.ErrorIs(t, store.RegisterForLeague("missing", playerID), league.ErrNotUpcoming)
}

func TestActiveLeaguesFor(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	captainID := insertUser(t, db, "Captain")
	memberID := insertUser(t, db, "Member")
	outsiderID := insertUser(t, db, "Outsider")
	clubID := insertClub(t, db, captainID)
	enroll(t, db, clubID, memberID, "approved")

	_, err := store.CreateEvent(league.CreateEventParams{
		Name:      "Club League",
		Type:      league.TypeLeague,
		StartDate: dateOffset(-1),
		ClubID:    clubID,
		CreatedBy: captainID,
	})
	require.NoError(t, err)

	// Tournaments are not leagues.
	_, err = store.CreateEvent(league.CreateEventParams{
		Name:      "Club Open",
		Type:      league.TypeTournament,
		StartDate: dateOffset(3),
		ClubID:    clubID,
		CreatedBy: captainID,
	})
	require.NoError(t, err)

	leagues, err := store.ActiveLeaguesFor(memberID)
	require.NoError(t, err)
	require.Len(t, leagues, 1)
	assert.Equal(t, "Club League", leagues[0].Name)
	assert.Equal(t, league.StatusActive, leagues[0].Status)
	assert.Equal(t, "https://img.test/logo.png", leagues[0].LogoURL)

	leagues, err = store.ActiveLeaguesFor(outsiderID)
	require.NoError(t, err)
	assert.Empty(t, leagues)
}

func TestIsClubMember(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	captainID := insertUser(t, db, "Captain")
	memberID := insertUser(t, db, "Member")
	outsiderID := insertUser(t, db, "Outsider")
	clubID := insertClub(t, db, captainID)
	enroll(t, db, clubID, memberID, "approved")

	e, err := store.CreateEvent(league.CreateEventParams{
		Name:      "Club League",
		Type:      league.TypeLeague,
		StartDate: dateOffset(1),
		ClubID:    clubID,
		CreatedBy: captainID,
	})
	require.NoError(t, err)

	ok, err := store.IsClubMember(e.ID, memberID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.IsClubMember(e.ID, outsiderID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.IsClubMember("missing", memberID)
	assert.ErrorIs(t, err, league.ErrLeagueNotFound)
}
