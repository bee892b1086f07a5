package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity event types (closed set).
const (
	ActivityCardCreated    = "CARD_CREATED"
	ActivityCardMoved      = "CARD_MOVED"
	ActivityCardUpdated    = "CARD_UPDATED"
	ActivityCardDeleted    = "CARD_DELETED"
	ActivityColumnCreated  = "COLUMN_CREATED"
	ActivityColumnUpdated  = "COLUMN_UPDATED"
	ActivityColumnDeleted  = "COLUMN_DELETED"
	ActivityCommentAdded   = "COMMENT_ADDED"
	ActivityCommentDeleted = "COMMENT_DELETED"
	ActivityBoardCreated   = "BOARD_CREATED"
	ActivityBoardUpdated   = "BOARD_UPDATED"
	ActivityBoardDeleted   = "BOARD_DELETED"
)

// Activity is an append-only audit record. Rows are never updated and never
// individually deleted; they survive board deletion as the audit trail.
type Activity struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey"`
	Type        string     `json:"type" gorm:"not null"`
	UserID      uuid.UUID  `json:"userId" gorm:"type:uuid;not null"`
	BoardID     uuid.UUID  `json:"boardId" gorm:"type:uuid;index;not null"`
	ColumnID    *uuid.UUID `json:"columnId" gorm:"type:uuid"`
	CardID      *uuid.UUID `json:"cardId" gorm:"type:uuid"`
	CommentID   *uuid.UUID `json:"commentId" gorm:"type:uuid"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
