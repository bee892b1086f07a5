package services

import (
	"log"

	"github.com/arnold/kanban-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActivityEntry describes one observable mutation for the activity feed.
type ActivityEntry struct {
	Type        string
	UserID      uuid.UUID
	BoardID     uuid.UUID
	ColumnID    *uuid.UUID
	CardID      *uuid.UUID
	CommentID   *uuid.UUID
	Description string
}

// RecordActivity appends an activity entry. The feed is best-effort: a
// failed append is logged and never rolls back the mutation it describes.
func RecordActivity(db *gorm.DB, entry ActivityEntry) {
	activity := models.Activity{
		Type:        entry.Type,
		UserID:      entry.UserID,
		BoardID:     entry.BoardID,
		ColumnID:    entry.ColumnID,
		CardID:      entry.CardID,
		CommentID:   entry.CommentID,
		Description: entry.Description,
	}
	if err := db.Create(&activity).Error; err != nil {
		log.Printf("activity: failed to record %s on board %s: %v", entry.Type, entry.BoardID, err)
	}
}

// RecentActivities returns the newest entries across every board the user
// owns or collaborates on, newest first.
func RecentActivities(db *gorm.DB, userID uuid.UUID, limit int) ([]models.Activity, error) {
	boardIDs, err := userBoardIDs(db, userID)
	if err != nil {
		return nil, err
	}
	if len(boardIDs) == 0 {
		return []models.Activity{}, nil
	}

	var activities []models.Activity
	err = db.Where("board_id IN ?", boardIDs).
		Preload("User").
		Order("created_at DESC").
		Limit(limit).
		Find(&activities).Error
	return activities, err
}

// BoardActivities returns every entry for one board, newest first. The
// owner-only rule is enforced by the caller's guard.
func BoardActivities(db *gorm.DB, boardID uuid.UUID) ([]models.Activity, error) {
	var activities []models.Activity
	err := db.Where("board_id = ?", boardID).
		Preload("User").
		Order("created_at DESC").
		Find(&activities).Error
	return activities, err
}

// userBoardIDs is the user's derived board set: owned plus collaborating.
func userBoardIDs(db *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	var owned []uuid.UUID
	if err := db.Model(&models.Board{}).
		Where("owner_id = ?", userID).
		Pluck("id", &owned).Error; err != nil {
		return nil, err
	}

	var member []uuid.UUID
	if err := db.Model(&models.BoardCollaborator{}).
		Where("user_id = ?", userID).
		Pluck("board_id", &member).Error; err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(owned)+len(member))
	ids := make([]uuid.UUID, 0, len(owned)+len(member))
	for _, id := range append(owned, member...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids, nil
}
