package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Column is an ordered list of cards inside a board. Position is dense and
// zero-based within the board: 0..N-1 with no gaps or duplicates.
type Column struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	BoardID   uuid.UUID      `json:"boardId" gorm:"type:uuid;index;not null"`
	Title     string         `json:"title" gorm:"not null"`
	Position  int            `json:"order" gorm:"not null"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	Cards []Card `json:"cards,omitempty" gorm:"foreignKey:ColumnID"`
}

func (c *Column) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Column DTOs
type CreateColumnRequest struct {
	Title   string    `json:"title" validate:"required"`
	BoardID uuid.UUID `json:"boardId" validate:"required"`
}

type UpdateColumnRequest struct {
	Title *string `json:"title"`
}

type MoveColumnRequest struct {
	TargetOrder *int `json:"targetOrder"`
}
