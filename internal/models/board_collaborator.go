package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Collaborator roles
const (
	RoleOwner  = "owner"
	RoleMember = "member"
)

// BoardCollaborator links a user to a board. The owner gets a row with role
// "owner" when the board is created, so collaborator checks cover the owner.
type BoardCollaborator struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	BoardID   uuid.UUID      `json:"boardId" gorm:"type:uuid;index;not null"`
	UserID    uuid.UUID      `json:"userId" gorm:"type:uuid;index;not null"`
	Role      string         `json:"role" gorm:"not null;default:'member'"`
	JoinedAt  time.Time      `json:"joinedAt"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (bc *BoardCollaborator) BeforeCreate(tx *gorm.DB) error {
	if bc.ID == uuid.Nil {
		bc.ID = uuid.New()
	}
	if bc.JoinedAt.IsZero() {
		bc.JoinedAt = time.Now()
	}
	return nil
}

// CollaboratorInfo is the member shape returned by the collaborators listing.
type CollaboratorInfo struct {
	ID       uuid.UUID  `json:"id"`
	Name     string     `json:"name"`
	Email    string     `json:"email"`
	AvatarID *uuid.UUID `json:"avatarId"`
	Role     string     `json:"role"`
}
