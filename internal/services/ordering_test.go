package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnold/kanban-api/internal/models"
)

func TestNextColumnPosition(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	board := createBoard(t, db, owner)

	next, err := NextColumnPosition(db, board.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, next, "first column on an empty board appends at 0")

	createColumn(t, db, board, "To Do", 0)
	createColumn(t, db, board, "Doing", 1)

	next, err = NextColumnPosition(db, board.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, next)
}

func TestNextCardPosition(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	board := createBoard(t, db, owner)
	column := createColumn(t, db, board, "To Do", 0)

	next, err := NextCardPosition(db, column.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, next)

	createCard(t, db, column, "first", 0)

	next, err = NextCardPosition(db, column.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestReorderColumnToFront(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	board := createBoard(t, db, owner)
	c1 := createColumn(t, db, board, "c1", 0)
	c2 := createColumn(t, db, board, "c2", 1)
	c3 := createColumn(t, db, board, "c3", 2)

	moved, err := ReorderColumn(db, c3.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, moved.Position)

	columns := boardColumns(t, db, board.ID)
	require.Len(t, columns, 3)
	assert.Equal(t, c3.ID, columns[0].ID)
	assert.Equal(t, c1.ID, columns[1].ID)
	assert.Equal(t, c2.ID, columns[2].ID)
	requireDenseColumns(t, columns)
}

func TestReorderColumnSamePositionIsNoop(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	board := createBoard(t, db, owner)
	c1 := createColumn(t, db, board, "c1", 0)
	c2 := createColumn(t, db, board, "c2", 1)

	moved, err := ReorderColumn(db, c2.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, moved.Position)

	columns := boardColumns(t, db, board.ID)
	assert.Equal(t, c1.ID, columns[0].ID)
	assert.Equal(t, c2.ID, columns[1].ID)
	requireDenseColumns(t, columns)
}

func TestReorderColumnBeyondEndAppends(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	board := createBoard(t, db, owner)
	c1 := createColumn(t, db, board, "c1", 0)
	c2 := createColumn(t, db, board, "c2", 1)
	c3 := createColumn(t, db, board, "c3", 2)

	moved, err := ReorderColumn(db, c1.ID, 99)
	require.NoError(t, err)
	assert.Equal(t, 2, moved.Position, "out-of-range target clamps to the end")

	columns := boardColumns(t, db, board.ID)
	assert.Equal(t, c2.ID, columns[0].ID)
	assert.Equal(t, c3.ID, columns[1].ID)
	assert.Equal(t, c1.ID, columns[2].ID)
	requireDenseColumns(t, columns)
}

func TestReorderColumnNegativeTarget(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	board := createBoard(t, db, owner)
	c1 := createColumn(t, db, board, "c1", 0)

	_, err := ReorderColumn(db, c1.ID, -1)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestReorderColumnNotFound(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	createBoard(t, db, owner)

	_, err := ReorderColumn(db, newUUID(t), 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMoveCardWithinColumn(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	board := createBoard(t, db, owner)
	column := createColumn(t, db, board, "To Do", 0)
	k1 := createCard(t, db, column, "k1", 0)
	k2 := createCard(t, db, column, "k2", 1)
	k3 := createCard(t, db, column, "k3", 2)

	moved, err := MoveCard(db, k3.ID, column.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, moved.Position)
	assert.Equal(t, column.ID, moved.ColumnID)

	cards := columnCards(t, db, column.ID)
	require.Len(t, cards, 3)
	assert.Equal(t, k3.ID, cards[0].ID)
	assert.Equal(t, k1.ID, cards[1].ID)
	assert.Equal(t, k2.ID, cards[2].ID)
	requireDenseCards(t, cards)
}

func TestMoveCardAcrossColumns(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	board := createBoard(t, db, owner)
	colA := createColumn(t, db, board, "A", 0)
	colB := createColumn(t, db, board, "B", 1)
	k1 := createCard(t, db, colA, "k1", 0)
	k2 := createCard(t, db, colA, "k2", 1)
	k3 := createCard(t, db, colB, "k3", 0)

	moved, err := MoveCard(db, k1.ID, colB.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, colB.ID, moved.ColumnID)
	assert.Equal(t, 0, moved.Position)

	source := columnCards(t, db, colA.ID)
	require.Len(t, source, 1)
	assert.Equal(t, k2.ID, source[0].ID)
	requireDenseCards(t, source)

	dest := columnCards(t, db, colB.ID)
	require.Len(t, dest, 2)
	assert.Equal(t, k1.ID, dest[0].ID)
	assert.Equal(t, k3.ID, dest[1].ID)
	requireDenseCards(t, dest)
}

func TestMoveCardToEndOfOtherColumn(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	board := createBoard(t, db, owner)
	colA := createColumn(t, db, board, "A", 0)
	colB := createColumn(t, db, board, "B", 1)
	k1 := createCard(t, db, colA, "k1", 0)
	createCard(t, db, colB, "k2", 0)
	createCard(t, db, colB, "k3", 1)

	moved, err := MoveCard(db, k1.ID, colB.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, moved.Position)

	dest := columnCards(t, db, colB.ID)
	require.Len(t, dest, 3)
	assert.Equal(t, k1.ID, dest[2].ID)
	requireDenseCards(t, dest)
}

func TestMoveCardRejectsOtherBoard(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	board1 := createBoard(t, db, owner)
	board2 := createBoard(t, db, owner)
	colA := createColumn(t, db, board1, "A", 0)
	colX := createColumn(t, db, board2, "X", 0)
	k1 := createCard(t, db, colA, "k1", 0)

	_, err := MoveCard(db, k1.ID, colX.ID, 0)
	assert.ErrorIs(t, err, ErrColumnOnOtherBoard)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	// Nothing moved.
	cards := columnCards(t, db, colA.ID)
	require.Len(t, cards, 1)
	assert.Equal(t, 0, cards[0].Position)
	assert.Empty(t, columnCards(t, db, colX.ID))
}

func TestMoveCardNegativeTarget(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	board := createBoard(t, db, owner)
	column := createColumn(t, db, board, "A", 0)
	k1 := createCard(t, db, column, "k1", 0)

	_, err := MoveCard(db, k1.ID, column.ID, -3)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestMoveCardTargetColumnNotFound(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	board := createBoard(t, db, owner)
	column := createColumn(t, db, board, "A", 0)
	k1 := createCard(t, db, column, "k1", 0)

	_, err := MoveCard(db, k1.ID, newUUID(t), 0)
	assert.ErrorIs(t, err, ErrColumnNotFound)
}

func TestMoveCardSingleCardIdempotent(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, "Alice")
	board := createBoard(t, db, owner)
	column := createColumn(t, db, board, "A", 0)
	k1 := createCard(t, db, column, "k1", 0)

	for i := 0; i < 3; i++ {
		moved, err := MoveCard(db, k1.ID, column.ID, 0)
		require.NoError(t, err)
		assert.Equal(t, 0, moved.Position)
	}

	var stored models.Card
	require.NoError(t, db.First(&stored, "id = ?", k1.ID).Error)
	assert.Equal(t, 0, stored.Position)
}
