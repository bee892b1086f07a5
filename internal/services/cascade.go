package services

import (
	"errors"

	"github.com/arnold/kanban-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// The cascade engine deletes an entity together with everything that exists
// only because of it, and prunes every surviving reference to the deleted id.
// Each cascade runs in one transaction: either the whole subtree goes, or
// nothing changes. Activities are deliberately exempt — they are the audit
// trail and survive every cascade.

// DeleteBoard removes the board, its columns, their cards, the cards'
// comments and assignee rows, the board's collaborator rows, and any
// invitations that reference the board.
func DeleteBoard(db *gorm.DB, boardID uuid.UUID) error {
	var board models.Board
	if err := db.First(&board, "id = ?", boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrBoardNotFound
		}
		return err
	}

	unlock := lockParent(boardID)
	defer unlock()

	return db.Transaction(func(tx *gorm.DB) error {
		var cardIDs []uuid.UUID
		if err := tx.Model(&models.Card{}).
			Where("board_id = ?", boardID).
			Pluck("id", &cardIDs).Error; err != nil {
			return err
		}
		if err := deleteCardChildren(tx, cardIDs); err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", boardID).Delete(&models.Card{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", boardID).Delete(&models.Column{}).Error; err != nil {
			return err
		}
		// Removes the board from every user's board set.
		if err := tx.Where("board_id = ?", boardID).Delete(&models.BoardCollaborator{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", boardID).Delete(&models.Invitation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&board).Error
	})
}

// DeleteColumn removes the column and its cards (with their comments and
// assignee rows), then renumbers the board's remaining columns.
func DeleteColumn(db *gorm.DB, columnID uuid.UUID) (*models.Column, error) {
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
		var cardIDs []uuid.UUID
		if err := tx.Model(&models.Card{}).
			Where("column_id = ?", columnID).
			Pluck("id", &cardIDs).Error; err != nil {
			return err
		}
		if err := deleteCardChildren(tx, cardIDs); err != nil {
			return err
		}
		if err := tx.Where("column_id = ?", columnID).Delete(&models.Card{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&column).Error; err != nil {
			return err
		}

		var remaining []models.Column
		if err := tx.Where("board_id = ?", column.BoardID).
			Order("position ASC").
			Find(&remaining).Error; err != nil {
			return err
		}
		return renumberColumns(tx, remaining)
	})
	if err != nil {
		return nil, err
	}
	return &column, nil
}

// DeleteCard removes the card with its comments and assignee rows, then
// renumbers the column's remaining cards.
func DeleteCard(db *gorm.DB, cardID uuid.UUID) (*models.Card, error) {
	var card models.Card
	if err := db.First(&card, "id = ?", cardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, err
	}

	unlock := lockParent(card.ColumnID)
	defer unlock()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := deleteCardChildren(tx, []uuid.UUID{card.ID}); err != nil {
			return err
		}
		if err := tx.Delete(&card).Error; err != nil {
			return err
		}

		var remaining []models.Card
		if err := tx.Where("column_id = ?", card.ColumnID).
			Order("position ASC").
			Find(&remaining).Error; err != nil {
			return err
		}
		return renumberCards(tx, remaining)
	})
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// DeleteComment removes a single comment. The card's comment list is derived
// from the comment rows, so nothing else needs pruning.
func DeleteComment(db *gorm.DB, commentID uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := db.First(&comment, "id = ?", commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	if err := db.Delete(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

func deleteCardChildren(tx *gorm.DB, cardIDs []uuid.UUID) error {
	if len(cardIDs) == 0 {
		return nil
	}
	if err := tx.Where("card_id IN ?", cardIDs).Delete(&models.Comment{}).Error; err != nil {
		return err
	}
	return tx.Where("card_id IN ?", cardIDs).Delete(&models.CardAssignee{}).Error
}
