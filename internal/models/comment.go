package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Comment struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	CardID    uuid.UUID      `json:"cardId" gorm:"type:uuid;index;not null"`
	AuthorID  uuid.UUID      `json:"authorId" gorm:"type:uuid;not null"`
	Text      string         `json:"text" gorm:"type:text;not null"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type CreateCommentRequest struct {
	CardID uuid.UUID `json:"cardId" validate:"required"`
	Text   string    `json:"text" validate:"required"`
}
