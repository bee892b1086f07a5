package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnold/kanban-api/internal/models"
)

func TestCreateInvitation(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	invitee := createUser(t, db, "Bob")
	board := createBoard(t, db, owner)

	inv, err := CreateInvitation(db, owner.ID, invitee.ID, board.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationPending, inv.Status)
	assert.Equal(t, owner.ID, inv.FromID)
	assert.Equal(t, invitee.ID, inv.ToID)
	assert.Equal(t, board.ID, inv.BoardID)
}

func TestCreateInvitationSelf(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	board := createBoard(t, db, owner)

	_, err := CreateInvitation(db, owner.ID, owner.ID, board.ID)
	assert.ErrorIs(t, err, ErrSelfInvitation)
}

func TestCreateInvitationSenderNotMember(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	stranger := createUser(t, db, "Bob")
	invitee := createUser(t, db, "Carol")
	board := createBoard(t, db, owner)

	_, err := CreateInvitation(db, stranger.ID, invitee.ID, board.ID)
	assert.ErrorIs(t, err, ErrNotBoardMember)
}

func TestCreateInvitationTargetMissing(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	board := createBoard(t, db, owner)

	_, err := CreateInvitation(db, owner.ID, newUUID(t), board.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateInvitationAlreadyCollaborator(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	member := createUser(t, db, "Bob")
	board := createBoard(t, db, owner)
	addCollaborator(t, db, board, member)

	_, err := CreateInvitation(db, owner.ID, member.ID, board.ID)
	assert.ErrorIs(t, err, ErrAlreadyCollaborator)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateInvitationDuplicatePending(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	invitee := createUser(t, db, "Bob")
	board := createBoard(t, db, owner)

	_, err := CreateInvitation(db, owner.ID, invitee.ID, board.ID)
	require.NoError(t, err)

	_, err = CreateInvitation(db, owner.ID, invitee.ID, board.ID)
	assert.ErrorIs(t, err, ErrInvitationPending)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestCreateInvitationAfterRejection(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	invitee := createUser(t, db, "Bob")
	board := createBoard(t, db, owner)

	first, err := CreateInvitation(db, owner.ID, invitee.ID, board.ID)
	require.NoError(t, err)
	_, err = RejectInvitation(db, first.ID, invitee.ID)
	require.NoError(t, err)

	// A resolved invitation does not block a new one.
	_, err = CreateInvitation(db, owner.ID, invitee.ID, board.ID)
	assert.NoError(t, err)
}

func TestAcceptInvitation(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	invitee := createUser(t, db, "Bob")
	board := createBoard(t, db, owner)

	inv, err := CreateInvitation(db, owner.ID, invitee.ID, board.ID)
	require.NoError(t, err)

	accepted, err := AcceptInvitation(db, inv.ID, invitee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationAccepted, accepted.Status)

	// Exactly one collaborator row, role member.
	var collabs []models.BoardCollaborator
	require.NoError(t, db.Where("board_id = ? AND user_id = ?", board.ID, invitee.ID).Find(&collabs).Error)
	require.Len(t, collabs, 1)
	assert.Equal(t, models.RoleMember, collabs[0].Role)

	role, err := RoleOnBoard(db, board.ID, invitee.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleCollaborator, role)
}

func TestAcceptInvitationTwice(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	invitee := createUser(t, db, "Bob")
	board := createBoard(t, db, owner)

	inv, err := CreateInvitation(db, owner.ID, invitee.ID, board.ID)
	require.NoError(t, err)
	_, err = AcceptInvitation(db, inv.ID, invitee.ID)
	require.NoError(t, err)

	_, err = AcceptInvitation(db, inv.ID, invitee.ID)
	assert.ErrorIs(t, err, ErrInvitationResolved)
	assert.ErrorIs(t, err, ErrInvalidState)

	assert.EqualValues(t, 1, count(t, db, &models.BoardCollaborator{},
		"board_id = ? AND user_id = ?", board.ID, invitee.ID))
}

func TestAcceptInvitationWrongUser(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	invitee := createUser(t, db, "Bob")
	impostor := createUser(t, db, "Carol")
	board := createBoard(t, db, owner)

	inv, err := CreateInvitation(db, owner.ID, invitee.ID, board.ID)
	require.NoError(t, err)

	_, err = AcceptInvitation(db, inv.ID, impostor.ID)
	assert.ErrorIs(t, err, ErrNotInvitee)
	assert.ErrorIs(t, err, ErrUnauthorized)

	var stored models.Invitation
	require.NoError(t, db.First(&stored, "id = ?", inv.ID).Error)
	assert.Equal(t, models.InvitationPending, stored.Status)
}

func TestRejectInvitation(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	invitee := createUser(t, db, "Bob")
	board := createBoard(t, db, owner)

	inv, err := CreateInvitation(db, owner.ID, invitee.ID, board.ID)
	require.NoError(t, err)

	rejected, err := RejectInvitation(db, inv.ID, invitee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.InvitationRejected, rejected.Status)

	// Rejection adds no collaborator row.
	assert.EqualValues(t, 0, count(t, db, &models.BoardCollaborator{},
		"board_id = ? AND user_id = ?", board.ID, invitee.ID))
}

func TestRejectInvitationAfterAccept(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	invitee := createUser(t, db, "Bob")
	board := createBoard(t, db, owner)

	inv, err := CreateInvitation(db, owner.ID, invitee.ID, board.ID)
	require.NoError(t, err)
	_, err = AcceptInvitation(db, inv.ID, invitee.ID)
	require.NoError(t, err)

	_, err = RejectInvitation(db, inv.ID, invitee.ID)
	assert.ErrorIs(t, err, ErrInvitationResolved)
}

func TestInvitationNotFound(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Alice")

	_, err := AcceptInvitation(db, newUUID(t), user.ID)
	assert.ErrorIs(t, err, ErrInvitationNotFound)

	_, err = RejectInvitation(db, newUUID(t), user.ID)
	assert.ErrorIs(t, err, ErrInvitationNotFound)
}
