package services

import (
	"errors"

	"github.com/arnold/kanban-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invitation workflow: pending -> accepted | rejected, terminal once
// resolved. At most one pending invitation per (to, board) pair.

// CreateInvitation invites toID to collaborate on boardID. The sender must
// be a member of the board; the target must exist, must not be the sender,
// must not already be a collaborator, and must not have a pending invite.
func CreateInvitation(db *gorm.DB, fromID, toID, boardID uuid.UUID) (*models.Invitation, error) {
	if fromID == toID {
		return nil, ErrSelfInvitation
	}

	if err := RequireBoardMember(db, boardID, fromID); err != nil {
		return nil, err
	}

	var target models.User
	if err := db.First(&target, "id = ?", toID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	role, err := RoleOnBoard(db, boardID, toID)
	if err != nil {
		return nil, err
	}
	if role != RoleNone {
		return nil, ErrAlreadyCollaborator
	}

	var pending int64
	if err := db.Model(&models.Invitation{}).
		Where("to_id = ? AND board_id = ? AND status = ?", toID, boardID, models.InvitationPending).
		Count(&pending).Error; err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, ErrInvitationPending
	}

	invitation := models.Invitation{
		FromID:  fromID,
		ToID:    toID,
		BoardID: boardID,
		Status:  models.InvitationPending,
	}
	if err := db.Create(&invitation).Error; err != nil {
		return nil, err
	}
	return &invitation, nil
}

// AcceptInvitation marks a pending invitation accepted and, in the same
// transaction, adds the recipient to the board's collaborators exactly once.
func AcceptInvitation(db *gorm.DB, invitationID, userID uuid.UUID) (*models.Invitation, error) {
	invitation, err := pendingInvitationFor(db, invitationID, userID)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(invitation).Update("status", models.InvitationAccepted).Error; err != nil {
			return err
		}
		collab := models.BoardCollaborator{
			BoardID: invitation.BoardID,
			UserID:  userID,
			Role:    models.RoleMember,
		}
		return tx.Where("board_id = ? AND user_id = ?", invitation.BoardID, userID).
			FirstOrCreate(&collab).Error
	})
	if err != nil {
		return nil, err
	}
	invitation.Status = models.InvitationAccepted
	return invitation, nil
}

// RejectInvitation marks a pending invitation rejected. No other effects.
func RejectInvitation(db *gorm.DB, invitationID, userID uuid.UUID) (*models.Invitation, error) {
	invitation, err := pendingInvitationFor(db, invitationID, userID)
	if err != nil {
		return nil, err
	}
	if err := db.Model(invitation).Update("status", models.InvitationRejected).Error; err != nil {
		return nil, err
	}
	invitation.Status = models.InvitationRejected
	return invitation, nil
}

func pendingInvitationFor(db *gorm.DB, invitationID, userID uuid.UUID) (*models.Invitation, error) {
	var invitation models.Invitation
	if err := db.First(&invitation, "id = ?", invitationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	if invitation.ToID != userID {
		return nil, ErrNotInvitee
	}
	if invitation.Status != models.InvitationPending {
		return nil, ErrInvitationResolved
	}
	return &invitation, nil
}
