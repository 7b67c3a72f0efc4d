package club_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sasgl/league-api/internal/club"
	"github.com/sasgl/league-api/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	return club.New(db), db, teardown
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

func TestRegisterClub(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	captainID := insertUser(t, db, "Captain")

	c, err := store.Register(club.RegisterClubParams{
		Name:      "Royal Durban",
		Email:     "club@example.com",
		CreatedBy: captainID,
	})
	require.NoError(t, err)
	assert.Equal(t, club.StatusPending, c.Status)
	assert.Equal(t, "Captain", c.CaptainName)

	// Creator was promoted to captain.
	var role string
	require.NoError(t, db.QueryRow("SELECT role FROM users WHERE id = ?", captainID).Scan(&role))
	assert.Equal(t, "captain", role)

	// Creator is enrolled as an approved captain member.
	var memberRole, memberStatus string
	require.NoError(t, db.QueryRow(
		"SELECT role, status FROM club_members WHERE club_id = ? AND user_id = ?",
		c.ID, captainID).Scan(&memberRole, &memberStatus))
	assert.Equal(t, club.MemberRoleCaptain, memberRole)
	assert.Equal(t, club.StatusApproved, memberStatus)

	// One club per creator.
	_, err = store.Register(club.RegisterClubParams{Name: "Second Club", CreatedBy: captainID})
	assert.ErrorIs(t, err, club.ErrAlreadyOwner)
}

func TestApproveClubAndListing(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	captainID := insertUser(t, db, "Captain")
	c, err := store.Register(club.RegisterClubParams{Name: "Pending Club", CreatedBy: captainID})
	require.NoError(t, err)

	approved, err := store.ListApproved()
	require.NoError(t, err)
	assert.Empty(t, approved, "pending club should not be publicly listed")

	require.NoError(t, store.Approve(c.ID))

	approved, err = store.ListApproved()
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "Pending Club", approved[0].Name)

	assert.ErrorIs(t, store.Approve("missing"), club.ErrClubNotFound)
}

func TestJoinRequestWorkflow(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	captainID := insertUser(t, db, "Captain")
	playerID := insertUser(t, db, "Player")

	c, err := store.Register(club.RegisterClubParams{Name: "The Club", CreatedBy: captainID})
	require.NoError(t, err)

	require.NoError(t, store.RequestJoin(c.ID, playerID))
	assert.ErrorIs(t, store.RequestJoin(c.ID, playerID), club.ErrDuplicateRequest)
	assert.ErrorIs(t, store.RequestJoin("missing", playerID), club.ErrClubNotFound)

	requests, err := store.UserRequests(playerID)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, club.StatusPending, requests[0].Status)

	member, err := store.ApproveMember(c.ID, playerID)
	require.NoError(t, err)
	assert.Equal(t, club.StatusApproved, member.Status)
	assert.Equal(t, "Player", member.Name)

	_, err = store.ApproveMember(c.ID, "missing")
	assert.ErrorIs(t, err, club.ErrMemberNotFound)
}

func TestRejectRequest(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	captainID := insertUser(t, db, "Captain")
	playerID := insertUser(t, db, "Player")
	strangerID := insertUser(t, db, "Stranger")

	c, err := store.Register(club.RegisterClubParams{Name: "The Club", CreatedBy: captainID})
	require.NoError(t, err)
	require.NoError(t, store.RequestJoin(c.ID, playerID))

	// Only the captain can reject.
	assert.ErrorIs(t, store.RejectRequest(c.ID, playerID, strangerID), club.ErrNotCaptain)

	require.NoError(t, store.RejectRequest(c.ID, playerID, captainID))
	assert.ErrorIs(t, store.RejectRequest(c.ID, playerID, captainID), club.ErrRequestNotFound)

	requests, err := store.UserRequests(playerID)
	require.NoError(t, err)
	assert.Empty(t, requests)
}

func TestMembers_RequiresApprovedMembership(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	captainID := insertUser(t, db, "Captain")
	pendingID := insertUser(t, db, "Pending")

	c, err := store.Register(club.RegisterClubParams{Name: "The Club", CreatedBy: captainID})
	require.NoError(t, err)
	require.NoError(t, store.RequestJoin(c.ID, pendingID))

	// A pending member cannot view the roster.
	_, err = store.Members(c.ID, pendingID)
	assert.ErrorIs(t, err, club.ErrNotMember)

	// The captain can, and sees both rows.
	members, err := store.Members(c.ID, captainID)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestMyClub(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	captainID := insertUser(t, db, "Captain")
	playerID := insertUser(t, db, "Player")
	loneID := insertUser(t, db, "Lone Wolf")

	c, err := store.Register(club.RegisterClubParams{Name: "The Club", CreatedBy: captainID})
	require.NoError(t, err)
	require.NoError(t, store.RequestJoin(c.ID, playerID))

	// Captain resolves via ownership.
	mine, err := store.MyClub(captainID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, mine.ID)

	// Pending member has no club yet.
	_, err = store.MyClub(playerID)
	assert.ErrorIs(t, err, club.ErrNoClub)

	_, err = store.ApproveMember(c.ID, playerID)
	require.NoError(t, err)

	mine, err = store.MyClub(playerID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, mine.ID)

	_, err = store.MyClub(loneID)
	assert.ErrorIs(t, err, club.ErrNoClub)
}

func TestIsCaptain(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	captainID := insertUser(t, db, "Captain")
	memberID := insertUser(t, db, "Member")

	c, err := store.Register(club.RegisterClubParams{Name: "The Club", CreatedBy: captainID})
	require.NoError(t, err)
	require.NoError(t, store.RequestJoin(c.ID, memberID))
	_, err = store.ApproveMember(c.ID, memberID)
	require.NoError(t, err)

	ok, err := store.IsCaptain(c.ID, captainID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.IsCaptain(c.ID, memberID)
	require.NoError(t, err)
	assert.False(t, ok, "plain member is not a captain")
}

func TestUpdateClub(t *testing.T) {
	store, db, teardown := setupTestDB(t)
	defer teardown()

	captainID := insertUser(t, db, "Captain")
	strangerID := insertUser(t, db, "Stranger")

	c, err := store.Register(club.RegisterClubParams{Name: "Old Name", CreatedBy: captainID})
	require.NoError(t, err)

	name := "New Name"
	assert.ErrorIs(t, store.Update(c.ID, strangerID, club.ClubPatch{Name: &name}), club.ErrNotCaptain)

	require.NoError(t, store.Update(c.ID, captainID, club.ClubPatch{Name: &name}))

	got, err := store.Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	assert.Equal(t, club.StatusPending, got.Status, "status untouched by profile update")
}
