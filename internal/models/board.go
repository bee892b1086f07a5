package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Board categories
const (
	CategoryPersonal    = "personal"
	CategoryWork        = "work"
	CategoryEducation   = "education"
	CategoryMarketing   = "marketing"
	CategoryDevelopment = "development"
	CategoryOther       = "other"
)

// ValidCategory reports whether c is one of the allowed board categories.
func ValidCategory(c string) bool {
	switch c {
	case CategoryPersonal, CategoryWork, CategoryEducation,
		CategoryMarketing, CategoryDevelopment, CategoryOther:
		return true
	}
	return false
}

type Board struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	OwnerID     uuid.UUID      `json:"ownerId" gorm:"type:uuid;index;not null"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"not null"`
	Category    string         `json:"category" gorm:"not null;default:'other'"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	Owner         *User               `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Columns       []Column            `json:"columns,omitempty" gorm:"foreignKey:BoardID"`
	Collaborators []BoardCollaborator `json:"collaborators,omitempty" gorm:"foreignKey:BoardID"`
}

func (b *Board) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Board DTOs
type CreateBoardRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Category    string `json:"category"`
}

type UpdateBoardRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}
