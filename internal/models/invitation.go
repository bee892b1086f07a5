package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Invitation statuses. Pending is the only state that accepts transitions.
const (
	InvitationPending  = "pending"
	InvitationAccepted = "accepted"
	InvitationRejected = "rejected"
)

type Invitation struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	FromID    uuid.UUID      `json:"fromId" gorm:"type:uuid;not null"`
	ToID      uuid.UUID      `json:"toId" gorm:"type:uuid;index;not null"`
	BoardID   uuid.UUID      `json:"boardId" gorm:"type:uuid;index;not null"`
	Status    string         `json:"status" gorm:"not null;default:'pending'"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	From  User  `json:"from,omitempty" gorm:"foreignKey:FromID"`
	Board Board `json:"board,omitempty" gorm:"foreignKey:BoardID"`
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = InvitationPending
	}
	return nil
}

type SendInvitationRequest struct {
	ToUserID uuid.UUID `json:"toUserId" validate:"required"`
	BoardID  uuid.UUID `json:"boardId" validate:"required"`
}
