package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Avatar is a catalog entry users can pick their profile image from.
type Avatar struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name string    `json:"name" gorm:"not null"`
	URL  string    `json:"url" gorm:"not null"`
}

func (a *Avatar) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
