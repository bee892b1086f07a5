package services

import (
	"errors"

	"github.com/arnold/kanban-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The ordering engine keeps every sibling set (columns of a board, cards of
// a column) densely numbered 0..N-1. Each operation loads the sequence once,
// splices it in memory, and writes back only the rows whose position changed,
// all inside one transaction and under the parent's lock.

// NextColumnPosition returns the append position for a new column.
func NextColumnPosition(tx *gorm.DB, boardID uuid.UUID) (int, error) {
	var next int
	err := tx.Model(&models.Column{}).
		Where("board_id = ?", boardID).
		Select("COALESCE(MAX(position), -1) + 1").
		Scan(&next).Error
	return next, err
}

// NextCardPosition returns the append position for a new card.
func NextCardPosition(tx *gorm.DB, columnID uuid.UUID) (int, error) {
	var next int
	err := tx.Model(&models.Card{}).
		Where("column_id = ?", columnID).
		Select("COALESCE(MAX(position), -1) + 1").
		Scan(&next).Error
	return next, err
}

func renumberColumns(tx *gorm.DB, columns []models.Column) error {
	for i := range columns {
		if columns[i].Position == i {
			continue
		}
		if err := tx.Model(&models.Column{}).
			Where("id = ?", columns[i].ID).
			Update("position", i).Error; err != nil {
			return err
		}
	}
	return nil
}

func renumberCards(tx *gorm.DB, cards []models.Card) error {
	for i := range cards {
		if cards[i].Position == i {
			continue
		}
		if err := tx.Model(&models.Card{}).
			Where("id = ?", cards[i].ID).
			Update("position", i).Error; err != nil {
			return err
		}
	}
	return nil
}

func clamp(target, max int) int {
	// Beyond the end degrades to append.
	if target > max {
		return max
	}
	return target
}

// ReorderColumn moves a column to targetOrder within its board and renumbers
// the board's columns. Moving to the current position is a no-op in effect.
func ReorderColumn(db *gorm.DB, columnID uuid.UUID, targetOrder int) (*models.Column, error) {
	if targetOrder < 0 {
		return nil, ErrInvalidTargetOrder
	}

	var column models.Column
	if err := db.First(&column, "id = ?", columnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, err
	}

	unlock := lockParent(column.BoardID)
	defer unlock()

	err := db.Transaction(func(tx *gorm.DB) error {
		var siblings []models.Column
		if err := tx.Where("board_id = ? AND id <> ?", column.BoardID, column.ID).
			Order("position ASC").
			Find(&siblings).Error; err != nil {
			return err
		}

		idx := clamp(targetOrder, len(siblings))
		ordered := spliceColumns(siblings, column, idx)

		if err := tx.Model(&models.Column{}).
			Where("id = ?", column.ID).
			Update("position", idx).Error; err != nil {
			return err
		}
		column.Position = idx
		return renumberColumns(tx, ordered)
	})
	if err != nil {
		return nil, err
	}
	return &column, nil
}

// MoveCard moves a card to targetOrder in targetColumnID, which may be its
// current column (reorder) or a sibling column on the same board. Both the
// source and destination sequences come out densely numbered.
func MoveCard(db *gorm.DB, cardID, targetColumnID uuid.UUID, targetOrder int) (*models.Card, error) {
	if targetOrder < 0 {
		return nil, ErrInvalidTargetOrder
	}

	var card models.Card
	if err := db.First(&card, "id = ?", cardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	var target models.Column
	if err := db.First(&target, "id = ?", targetColumnID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrColumnNotFound
		}
		return nil, err
	}

	// Cards never change boards.
	if target.BoardID != card.BoardID {
		return nil, ErrColumnOnOtherBoard
	}

	unlock := lockParents(card.ColumnID, target.ID)
	defer unlock()

	err := db.Transaction(func(tx *gorm.DB) error {
		if card.ColumnID != target.ID {
			var source []models.Card
			if err := tx.Where("column_id = ? AND id <> ?", card.ColumnID, card.ID).
				Order("position ASC").
				Find(&source).Error; err != nil {
				return err
			}
			if err := renumberCards(tx, source); err != nil {
				return err
			}
			if err := tx.Model(&models.Card{}).
				Where("id = ?", card.ID).
				Update("column_id", target.ID).Error; err != nil {
				return err
			}
			card.ColumnID = target.ID
		}

		var dest []models.Card
		if err := tx.Where("column_id = ? AND id <> ?", target.ID, card.ID).
			Order("position ASC").
			Find(&dest).Error; err != nil {
			return err
		}

		idx := clamp(targetOrder, len(dest))
		ordered := spliceCards(dest, card, idx)

		if err := tx.Model(&models.Card{}).
			Where("id = ?", card.ID).
			Update("position", idx).Error; err != nil {
			return err
		}
		card.Position = idx
		return renumberCards(tx, ordered)
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}

func spliceColumns(siblings []models.Column, column models.Column, idx int) []models.Column {
	out := make([]models.Column, 0, len(siblings)+1)
	out = append(out, siblings[:idx]...)
	out = append(out, column)
	out = append(out, siblings[idx:]...)
	return out
}

func spliceCards(siblings []models.Card, card models.Card, idx int) []models.Card {
	out := make([]models.Card, 0, len(siblings)+1)
	out = append(out, siblings[:idx]...)
	out = append(out, card)
	out = append(out, siblings[idx:]...)
	return out
}
