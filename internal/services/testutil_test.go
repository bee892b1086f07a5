package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/arnold/kanban-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Avatar{},
		&models.Board{},
		&models.BoardCollaborator{},
		&models.Column{},
		&models.Card{},
		&models.CardAssignee{},
		&models.Comment{},
		&models.Activity{},
		&models.Invitation{},
		&models.Notification{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := models.User{
		Name:     name,
		Email:    strings.ToLower(name) + "@example.com",
		Password: "hashed",
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// createBoard creates a board plus the owner's collaborator row, the way the
// board creation handler does.
func createBoard(t *testing.T, db *gorm.DB, owner *models.User) *models.Board {
	t.Helper()
	board := models.Board{
		OwnerID:     owner.ID,
		Title:       "Project",
		Description: "A test board",
		Category:    models.CategoryWork,
	}
	require.NoError(t, db.Create(&board).Error)
	require.NoError(t, db.Create(&models.BoardCollaborator{
		BoardID: board.ID,
		UserID:  owner.ID,
		Role:    models.RoleOwner,
	}).Error)
	return &board
}

func addCollaborator(t *testing.T, db *gorm.DB, board *models.Board, user *models.User) {
	t.Helper()
	require.NoError(t, db.Create(&models.BoardCollaborator{
		BoardID: board.ID,
		UserID:  user.ID,
		Role:    models.RoleMember,
	}).Error)
}

func createColumn(t *testing.T, db *gorm.DB, board *models.Board, title string, position int) *models.Column {
	t.Helper()
	column := models.Column{
		BoardID:  board.ID,
		Title:    title,
		Position: position,
	}
	require.NoError(t, db.Create(&column).Error)
	return &column
}

func createCard(t *testing.T, db *gorm.DB, column *models.Column, title string, position int) *models.Card {
	t.Helper()
	card := models.Card{
		ColumnID: column.ID,
		BoardID:  column.BoardID,
		Title:    title,
		Position: position,
	}
	require.NoError(t, db.Create(&card).Error)
	return &card
}

func createComment(t *testing.T, db *gorm.DB, card *models.Card, author *models.User, text string) *models.Comment {
	t.Helper()
	comment := models.Comment{
		CardID:   card.ID,
		AuthorID: author.ID,
		Text:     text,
	}
	require.NoError(t, db.Create(&comment).Error)
	return &comment
}

// boardColumns returns the board's columns ordered by position.
func boardColumns(t *testing.T, db *gorm.DB, boardID uuid.UUID) []models.Column {
	t.Helper()
	var columns []models.Column
	require.NoError(t, db.Where("board_id = ?", boardID).Order("position ASC").Find(&columns).Error)
	return columns
}

// columnCards returns the column's cards ordered by position.
func columnCards(t *testing.T, db *gorm.DB, columnID uuid.UUID) []models.Card {
	t.Helper()
	var cards []models.Card
	require.NoError(t, db.Where("column_id = ?", columnID).Order("position ASC").Find(&cards).Error)
	return cards
}

// requireDenseColumns asserts positions are exactly 0..N-1 in order.
func requireDenseColumns(t *testing.T, columns []models.Column) {
	t.Helper()
	for i, c := range columns {
		require.Equal(t, i, c.Position, "column %q at index %d has position %d", c.Title, i, c.Position)
	}
}

func requireDenseCards(t *testing.T, cards []models.Card) {
	t.Helper()
	for i, c := range cards {
		require.Equal(t, i, c.Position, "card %q at index %d has position %d", c.Title, i, c.Position)
	}
}

// newUUID is an id that matches no row.
func newUUID(t *testing.T) uuid.UUID {
	t.Helper()
	return uuid.New()
}

func count(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}
