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

// GetBoards lists every board the requester owns or collaborates on.
func GetBoards(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var boards []models.Board
	if err := database.DB.
		Where("owner_id = ? OR id IN (?)", userID,
			database.DB.Model(&models.BoardCollaborator{}).
				Select("board_id").
				Where("user_id = ?", userID)).
		Order("created_at DESC").
		Find(&boards).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch boards",
		})
	}

	return c.JSON(boards)
}

// GetBoard returns one board with its columns and cards fully populated,
// both ordered by position.
func GetBoard(c *fiber.Ctx) error {
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

	var board models.Board
	if err := database.DB.
		Preload("Columns", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Columns.Cards", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Columns.Cards.Assignees.User").
		First(&board, "id = ?", boardID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Board not found",
		})
	}

	return c.JSON(board)
}

// GetCategoryBoards lists the requester's boards filtered by category.
func GetCategoryBoards(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	category := c.Params("category")

	if !models.ValidCategory(category) {
		return serviceError(c, services.ErrInvalidCategory)
	}

	var boards []models.Board
	if err := database.DB.
		Where("category = ?", category).
		Where("owner_id = ? OR id IN (?)", userID,
			database.DB.Model(&models.BoardCollaborator{}).
				Select("board_id").
				Where("user_id = ?", userID)).
		Order("created_at DESC").
		Find(&boards).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch boards",
		})
	}

	return c.JSON(boards)
}

// GetCollaborators lists the members of a board.
func GetCollaborators(c *fiber.Ctx) error {
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

	var collaborators []models.BoardCollaborator
	database.DB.Where("board_id = ?", boardID).
		Preload("User").
		Find(&collaborators)

	result := make([]models.CollaboratorInfo, 0, len(collaborators))
	for _, collab := range collaborators {
		result = append(result, models.CollaboratorInfo{
			ID:       collab.UserID,
			Name:     collab.User.Name,
			Email:    collab.User.Email,
			AvatarID: collab.User.AvatarID,
			Role:     collab.Role,
		})
	}

	return c.JSON(result)
}

func CreateBoard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateBoardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Board title is required",
		})
	}
	if req.Description == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Board description is required",
		})
	}

	category := req.Category
	if category == "" {
		category = models.CategoryOther
	}
	if !models.ValidCategory(category) {
		return serviceError(c, services.ErrInvalidCategory)
	}

	board := models.Board{
		OwnerID:     userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    category,
	}

	// The owner joins their own board as a collaborator.
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&board).Error; err != nil {
			return err
		}
		return tx.Create(&models.BoardCollaborator{
			BoardID: board.ID,
			UserID:  userID,
			Role:    models.RoleOwner,
		}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create board",
		})
	}

	services.RecordActivity(database.DB, services.ActivityEntry{
		Type:        models.ActivityBoardCreated,
		UserID:      userID,
		BoardID:     board.ID,
		Description: actorName(userID) + " created the board \"" + board.Title + "\".",
	})

	return c.Status(fiber.StatusCreated).JSON(board)
}

func UpdateBoard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	boardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid board ID",
		})
	}

	if err := services.RequireBoardOwner(database.DB, boardID, userID); err != nil {
		return serviceError(c, err)
	}

	var board models.Board
	if err := database.DB.First(&board, "id = ?", boardID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Board not found",
		})
	}

	var req models.UpdateBoardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title != nil {
		if *req.Title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Board title is required",
			})
		}
		board.Title = *req.Title
	}
	if req.Description != nil {
		board.Description = *req.Description
	}
	if req.Category != nil {
		if !models.ValidCategory(*req.Category) {
			return serviceError(c, services.ErrInvalidCategory)
		}
		board.Category = *req.Category
	}

	if err := database.DB.Save(&board).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update board",
		})
	}

	services.RecordActivity(database.DB, services.ActivityEntry{
		Type:        models.ActivityBoardUpdated,
		UserID:      userID,
		BoardID:     board.ID,
		Description: actorName(userID) + " updated the board \"" + board.Title + "\".",
	})

	WS.Broadcast(board.ID, userID, Event{
		Type:    EventBoardUpdated,
		BoardID: board.ID.String(),
		UserID:  userID.String(),
	})

	return c.JSON(board)
}

func DeleteBoard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	boardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid board ID",
		})
	}

	if err := services.RequireBoardOwner(database.DB, boardID, userID); err != nil {
		return serviceError(c, err)
	}

	var board models.Board
	if err := database.DB.First(&board, "id = ?", boardID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Board not found",
		})
	}

	if err := services.DeleteBoard(database.DB, boardID); err != nil {
		return serviceError(c, err)
	}

	// Recorded after the cascade; activities outlive the board as audit trail.
	services.RecordActivity(database.DB, services.ActivityEntry{
		Type:        models.ActivityBoardDeleted,
		UserID:      userID,
		BoardID:     boardID,
		Description: actorName(userID) + " deleted the board \"" + board.Title + "\".",
	})

	return c.JSON(fiber.Map{
		"message": board.Title + " board deleted successfully.",
	})
}

// actorName resolves a display name for activity descriptions.
func actorName(userID uuid.UUID) string {
	var user models.User
	if err := database.DB.Select("name").First(&user, "id = ?", userID).Error; err != nil {
		return "Someone"
	}
	return user.Name
}
