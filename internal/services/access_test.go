package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnold/kanban-api/internal/models"
)

func TestRoleOnBoard(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	member := createUser(t, db, "Bob")
	outsider := createUser(t, db, "Carol")
	board := createBoard(t, db, owner)
	addCollaborator(t, db, board, member)

	role, err := RoleOnBoard(db, board.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleOwner, role)

	role, err = RoleOnBoard(db, board.ID, member.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleCollaborator, role)

	role, err = RoleOnBoard(db, board.ID, outsider.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleNone, role)
}

func TestRoleOnBoardOwnerWithoutCollaboratorRow(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	board := models.Board{OwnerID: owner.ID, Title: "bare", Description: "no rows", Category: models.CategoryOther}
	require.NoError(t, db.Create(&board).Error)

	role, err := RoleOnBoard(db, board.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, RoleOwner, role)
}

func TestRoleOnBoardMissingBoard(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "Alice")

	_, err := RoleOnBoard(db, newUUID(t), user.ID)
	assert.ErrorIs(t, err, ErrBoardNotFound)
}

func TestRequireBoardOwner(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	member := createUser(t, db, "Bob")
	board := createBoard(t, db, owner)
	addCollaborator(t, db, board, member)

	assert.NoError(t, RequireBoardOwner(db, board.ID, owner.ID))

	err := RequireBoardOwner(db, board.ID, member.ID)
	assert.ErrorIs(t, err, ErrNotBoardOwner)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestRequireBoardMember(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	member := createUser(t, db, "Bob")
	outsider := createUser(t, db, "Carol")
	board := createBoard(t, db, owner)
	addCollaborator(t, db, board, member)

	assert.NoError(t, RequireBoardMember(db, board.ID, owner.ID))
	assert.NoError(t, RequireBoardMember(db, board.ID, member.ID))

	err := RequireBoardMember(db, board.ID, outsider.ID)
	assert.ErrorIs(t, err, ErrNotBoardMember)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestIsCollaborator(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	member := createUser(t, db, "Bob")
	outsider := createUser(t, db, "Carol")
	board := createBoard(t, db, owner)
	addCollaborator(t, db, board, member)

	ok, err := IsCollaborator(db, board.ID, owner.ID)
	require.NoError(t, err)
	assert.True(t, ok, "owner holds a collaborator row created with the board")

	ok, err = IsCollaborator(db, board.ID, member.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsCollaborator(db, board.ID, outsider.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}
