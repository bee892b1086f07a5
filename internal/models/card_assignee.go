package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CardAssignee links a card to a user working on it. The user must hold a
// collaborator row on the card's board.
type CardAssignee struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	CardID    uuid.UUID      `json:"cardId" gorm:"type:uuid;index;not null"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (ca *CardAssignee) BeforeCreate(tx *gorm.DB) error {
	if ca.ID == uuid.Nil {
		ca.ID = uuid.New()
	}
	return nil
}
