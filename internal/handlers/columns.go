package handlers

import (
	"github.com/arnold/kanban-api/internal/database"
	"github.com/arnold/kanban-api/internal/middleware"
	"github.com/arnold/kanban-api/internal/models"
	"github.com/arnold/kanban-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetBoardColumns lists a board's columns in order, cards populated.
func GetBoardColumns(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	boardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid board ID",
		})
	}

	if err := services.RequireBoardMember(database.DB, boardID, userID); err != nil {
		return serviceError(c, err)
	}

	var columns []models.Column
	if err := database.DB.Where("board_id = ?", boardID).
		Preload("Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("position ASC").
		Find(&columns).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch columns",
		})
	}

	return c.JSON(columns)
}

func GetColumn(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	columnID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid column ID",
		})
	}

	var column models.Column
	if err := database.DB.
		Preload("Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&column, "id = ?", columnID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Column not found",
		})
	}

	if err := services.RequireBoardMember(database.DB, column.BoardID, userID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(column)
}

// CreateColumn appends a column at the end of the board's sequence.
// Allowed for the owner or any collaborator.
func CreateColumn(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateColumnRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Column title is required",
		})
	}
	if req.BoardID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Board ID is required",
		})
	}

	if err := services.RequireBoardMember(database.DB, req.BoardID, userID); err != nil {
		return serviceError(c, err)
	}

	var column models.Column
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		position, err := services.NextColumnPosition(tx, req.BoardID)
		if err != nil {
			return err
		}
		column = models.Column{
			BoardID:  req.BoardID,
			Title:    req.Title,
			Position: position,
		}
		return tx.Create(&column).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create column",
		})
	}

	services.RecordActivity(database.DB, services.ActivityEntry{
		Type:        models.ActivityColumnCreated,
		UserID:      userID,
		BoardID:     req.BoardID,
		ColumnID:    &column.ID,
		Description: actorName(userID) + " created the column \"" + column.Title + "\".",
	})

	WS.Broadcast(req.BoardID, userID, Event{
		Type:    EventColumnCreated,
		BoardID: req.BoardID.String(),
		UserID:  userID.String(),
		Data:    fiber.Map{"columnId": column.ID.String()},
	})

	return c.Status(fiber.StatusCreated).JSON(column)
}

func UpdateColumn(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	columnID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid column ID",
		})
	}

	var column models.Column
	if err := database.DB.First(&column, "id = ?", columnID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Column not found",
		})
	}

	if err := services.RequireBoardMember(database.DB, column.BoardID, userID); err != nil {
		return serviceError(c, err)
	}

	var req models.UpdateColumnRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title != nil {
		if *req.Title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Column title is required",
			})
		}
		column.Title = *req.Title
	}

	if err := database.DB.Save(&column).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update column",
		})
	}

	services.RecordActivity(database.DB, services.ActivityEntry{
		Type:        models.ActivityColumnUpdated,
		UserID:      userID,
		BoardID:     column.BoardID,
		ColumnID:    &column.ID,
		Description: actorName(userID) + " renamed the column to \"" + column.Title + "\".",
	})

	WS.Broadcast(column.BoardID, userID, Event{
		Type:    EventColumnUpdated,
		BoardID: column.BoardID.String(),
		UserID:  userID.String(),
		Data:    fiber.Map{"columnId": column.ID.String()},
	})

	return c.JSON(column)
}

// MoveColumn reorders a column within its board.
func MoveColumn(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	columnID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid column ID",
		})
	}

	var req models.MoveColumnRequest
	if err := c.BodyParser(&req); err != nil || req.TargetOrder == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid target order",
		})
	}

	var column models.Column
	if err := database.DB.First(&column, "id = ?", columnID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Column not found",
		})
	}

	if err := services.RequireBoardMember(database.DB, column.BoardID, userID); err != nil {
		return serviceError(c, err)
	}

	moved, err := services.ReorderColumn(database.DB, columnID, *req.TargetOrder)
	if err != nil {
		return serviceError(c, err)
	}

	services.RecordActivity(database.DB, services.ActivityEntry{
		Type:        models.ActivityColumnUpdated,
		UserID:      userID,
		BoardID:     moved.BoardID,
		ColumnID:    &moved.ID,
		Description: actorName(userID) + " moved the column \"" + moved.Title + "\".",
	})

	WS.Broadcast(moved.BoardID, userID, Event{
		Type:    EventColumnMoved,
		BoardID: moved.BoardID.String(),
		UserID:  userID.String(),
		Data:    fiber.Map{"columnId": moved.ID.String(), "order": moved.Position},
	})

	return c.JSON(fiber.Map{"message": "column moved!", "column": moved})
}

// DeleteColumn cascades: the column's cards and their comments go with it,
// and the board's remaining columns are renumbered. Owner only.
func DeleteColumn(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	columnID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid column ID",
		})
	}

	var column models.Column
	if err := database.DB.First(&column, "id = ?", columnID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Column not found",
		})
	}

	if err := services.RequireBoardOwner(database.DB, column.BoardID, userID); err != nil {
		return serviceError(c, err)
	}

	deleted, err := services.DeleteColumn(database.DB, columnID)
	if err != nil {
		return serviceError(c, err)
	}

	services.RecordActivity(database.DB, services.ActivityEntry{
		Type:        models.ActivityColumnDeleted,
		UserID:      userID,
		BoardID:     deleted.BoardID,
		Description: actorName(userID) + " deleted the column \"" + deleted.Title + "\".",
	})

	WS.Broadcast(deleted.BoardID, userID, Event{
		Type:    EventColumnDeleted,
		BoardID: deleted.BoardID.String(),
		UserID:  userID.String(),
		Data:    fiber.Map{"columnId": deleted.ID.String()},
	})

	return c.JSON(fiber.Map{
		"message": deleted.Title + " column deleted successfully.",
	})
}
