package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StringList stores a []string as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return errors.New("unsupported type for StringList")
}

// Card belongs to a column. BoardID is denormalized and always equals the
// owning column's board; cards never move across boards. Position is dense
// and zero-based within the column.
type Card struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primaryKey"`
	ColumnID    uuid.UUID      `json:"columnId" gorm:"type:uuid;index;not null"`
	BoardID     uuid.UUID      `json:"boardId" gorm:"type:uuid;index;not null"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	Position    int            `json:"order" gorm:"not null"`
	DueDate     *time.Time     `json:"dueDate"`
	Labels      StringList     `json:"labels" gorm:"type:text"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	Assignees []CardAssignee `json:"assignees,omitempty" gorm:"foreignKey:CardID"`
	Comments  []Comment      `json:"comments,omitempty" gorm:"foreignKey:CardID"`
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Card DTOs
type CreateCardRequest struct {
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	ColumnID    uuid.UUID  `json:"columnId" validate:"required"`
	BoardID     uuid.UUID  `json:"boardId" validate:"required"`
	DueDate     *time.Time `json:"dueDate"`
	Labels      []string   `json:"labels"`
}

type UpdateCardRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Labels      *[]string  `json:"labels"`
}

type MoveCardRequest struct {
	TargetColumnID uuid.UUID `json:"targetColumnId"`
	TargetOrder    *int      `json:"targetOrder"`
}

type AssignCardRequest struct {
	AssigneeID uuid.UUID `json:"assigneeId"`
}
