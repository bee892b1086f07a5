package services

import (
	"errors"

	"github.com/arnold/kanban-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BoardRole is the requester's relationship to a board.
type BoardRole int

const (
	RoleNone BoardRole = iota
	RoleCollaborator
	RoleOwner
)

// RoleOnBoard resolves the requester's role. The owner always resolves to
// RoleOwner, whether or not their collaborator row exists.
func RoleOnBoard(db *gorm.DB, boardID, userID uuid.UUID) (BoardRole, error) {
	var board models.Board
	if err := db.First(&board, "id = ?", boardID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleNone, ErrBoardNotFound
		}
		return RoleNone, err
	}

	if board.OwnerID == userID {
		return RoleOwner, nil
	}

	var collab models.BoardCollaborator
	err := db.Where("board_id = ? AND user_id = ?", boardID, userID).First(&collab).Error
	if err == nil {
		return RoleCollaborator, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return RoleNone, nil
	}
	return RoleNone, err
}

// RequireBoardOwner fails closed unless the requester owns the board.
// Used for the destructive operations: board update/delete, column delete,
// card delete, board activity listing.
func RequireBoardOwner(db *gorm.DB, boardID, userID uuid.UUID) error {
	role, err := RoleOnBoard(db, boardID, userID)
	if err != nil {
		return err
	}
	if role != RoleOwner {
		return ErrNotBoardOwner
	}
	return nil
}

// RequireBoardMember admits the owner or any collaborator. Used for reads
// and for the looser create/rename/move rules.
func RequireBoardMember(db *gorm.DB, boardID, userID uuid.UUID) error {
	role, err := RoleOnBoard(db, boardID, userID)
	if err != nil {
		return err
	}
	if role == RoleNone {
		return ErrNotBoardMember
	}
	return nil
}

// IsCollaborator reports whether the user holds a collaborator row on the
// board. The owner's row is created with the board, so this covers the owner.
func IsCollaborator(db *gorm.DB, boardID, userID uuid.UUID) (bool, error) {
	var count int64
	err := db.Model(&models.BoardCollaborator{}).
		Where("board_id = ? AND user_id = ?", boardID, userID).
		Count(&count).Error
	return count > 0, err
}
