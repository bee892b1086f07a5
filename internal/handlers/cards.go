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

func GetCard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	cardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid card ID",
		})
	}

	var card models.Card
	if err := database.DB.
		Preload("Assignees.User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		Preload("Comments.Author").
		First(&card, "id = ?", cardID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Card not found",
		})
	}

	if err := services.RequireBoardMember(database.DB, card.BoardID, userID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(card)
}

// CreateCard appends a card at the end of its column. The creator is
// auto-assigned.
func CreateCard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateCardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Card title is required",
		})
	}
	if req.BoardID == uuid.Nil || req.ColumnID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Board ID and column ID are required",
		})
	}

	if err := services.RequireBoardMember(database.DB, req.BoardID, userID); err != nil {
		return serviceError(c, err)
	}

	var column models.Column
	if err := database.DB.First(&column, "id = ?", req.ColumnID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Column not found",
		})
	}
	if column.BoardID != req.BoardID {
		return serviceError(c, services.ErrColumnOnOtherBoard)
	}

	var card models.Card
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		position, err := services.NextCardPosition(tx, column.ID)
		if err != nil {
			return err
		}
		card = models.Card{
			ColumnID:    column.ID,
			BoardID:     column.BoardID,
			Title:       req.Title,
			Description: req.Description,
			Position:    position,
			DueDate:     req.DueDate,
			Labels:      req.Labels,
		}
		if err := tx.Create(&card).Error; err != nil {
			return err
		}
		return tx.Create(&models.CardAssignee{
			CardID: card.ID,
			UserID: userID,
		}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create card",
		})
	}

	services.RecordActivity(database.DB, services.ActivityEntry{
		Type:        models.ActivityCardCreated,
		UserID:      userID,
		BoardID:     card.BoardID,
		ColumnID:    &card.ColumnID,
		CardID:      &card.ID,
		Description: actorName(userID) + " created the card \"" + card.Title + "\".",
	})

	WS.Broadcast(card.BoardID, userID, Event{
		Type:    EventCardCreated,
		BoardID: card.BoardID.String(),
		UserID:  userID.String(),
		Data:    fiber.Map{"cardId": card.ID.String(), "columnId": card.ColumnID.String()},
	})

	return c.Status(fiber.StatusCreated).JSON(card)
}

func UpdateCard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	cardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid card ID",
		})
	}

	var card models.Card
	if err := database.DB.First(&card, "id = ?", cardID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Card not found",
		})
	}

	if err := services.RequireBoardMember(database.DB, card.BoardID, userID); err != nil {
		return serviceError(c, err)
	}

	var req models.UpdateCardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.Title != nil {
		if *req.Title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Card title is required",
			})
		}
		card.Title = *req.Title
	}
	if req.Description != nil {
		card.Description = *req.Description
	}
	if req.DueDate != nil {
		card.DueDate = req.DueDate
	}
	if req.Labels != nil {
		card.Labels = *req.Labels
	}

	if err := database.DB.Save(&card).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update card",
		})
	}

	services.RecordActivity(database.DB, services.ActivityEntry{
		Type:        models.ActivityCardUpdated,
		UserID:      userID,
		BoardID:     card.BoardID,
		ColumnID:    &card.ColumnID,
		CardID:      &card.ID,
		Description: actorName(userID) + " updated the card \"" + card.Title + "\".",
	})

	WS.Broadcast(card.BoardID, userID, Event{
		Type:    EventCardUpdated,
		BoardID: card.BoardID.String(),
		UserID:  userID.String(),
		Data:    fiber.Map{"cardId": card.ID.String()},
	})

	return c.JSON(card)
}

// MoveCard reorders a card within its column or moves it to another column
// on the same board.
func MoveCard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	cardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid card ID",
		})
	}

	var req models.MoveCardRequest
	if err := c.BodyParser(&req); err != nil || req.TargetOrder == nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid target order",
		})
	}
	if req.TargetColumnID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid target column ID",
		})
	}

	var card models.Card
	if err := database.DB.First(&card, "id = ?", cardID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Card not found",
		})
	}

	if err := services.RequireBoardMember(database.DB, card.BoardID, userID); err != nil {
		return serviceError(c, err)
	}

	crossColumn := card.ColumnID != req.TargetColumnID

	moved, err := services.MoveCard(database.DB, cardID, req.TargetColumnID, *req.TargetOrder)
	if err != nil {
		return serviceError(c, err)
	}

	description := actorName(userID) + " reordered the card \"" + moved.Title + "\"."
	if crossColumn {
		var target models.Column
		database.DB.Select("title").First(&target, "id = ?", moved.ColumnID)
		description = actorName(userID) + " moved the card \"" + moved.Title + "\" to \"" + target.Title + "\"."
	}

	services.RecordActivity(database.DB, services.ActivityEntry{
		Type:        models.ActivityCardMoved,
		UserID:      userID,
		BoardID:     moved.BoardID,
		ColumnID:    &moved.ColumnID,
		CardID:      &moved.ID,
		Description: description,
	})

	WS.Broadcast(moved.BoardID, userID, Event{
		Type:    EventCardMoved,
		BoardID: moved.BoardID.String(),
		UserID:  userID.String(),
		Data: fiber.Map{
			"cardId":   moved.ID.String(),
			"columnId": moved.ColumnID.String(),
			"order":    moved.Position,
		},
	})

	return c.JSON(fiber.Map{"message": "card moved!", "card": moved})
}

// AssignCard adds an assignee to a card. The assignee must already be a
// collaborator of the card's board.
func AssignCard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	cardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid card ID",
		})
	}

	var req models.AssignCardRequest
	if err := c.BodyParser(&req); err != nil || req.AssigneeID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid assignee ID",
		})
	}

	var card models.Card
	if err := database.DB.First(&card, "id = ?", cardID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Card not found",
		})
	}

	if err := services.RequireBoardMember(database.DB, card.BoardID, userID); err != nil {
		return serviceError(c, err)
	}

	collaborator, err := services.IsCollaborator(database.DB, card.BoardID, req.AssigneeID)
	if err != nil {
		return serviceError(c, err)
	}
	if !collaborator {
		return serviceError(c, services.ErrNotACollaborator)
	}

	var existing models.CardAssignee
	if err := database.DB.Where("card_id = ? AND user_id = ?", cardID, req.AssigneeID).
		First(&existing).Error; err == nil {
		return serviceError(c, services.ErrAlreadyAssigned)
	}

	assignee := models.CardAssignee{
		CardID: cardID,
		UserID: req.AssigneeID,
	}
	if err := database.DB.Create(&assignee).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add assignee",
		})
	}

	return c.JSON(fiber.Map{"message": "assignee added to card!"})
}

// DeleteCard cascades: its comments go with it and the column's remaining
// cards are renumbered. Owner only.
func DeleteCard(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	cardID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid card ID",
		})
	}

	var card models.Card
	if err := database.DB.First(&card, "id = ?", cardID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Card not found",
		})
	}

	if err := services.RequireBoardOwner(database.DB, card.BoardID, userID); err != nil {
		return serviceError(c, err)
	}

	deleted, err := services.DeleteCard(database.DB, cardID)
	if err != nil {
		return serviceError(c, err)
	}

	services.RecordActivity(database.DB, services.ActivityEntry{
		Type:        models.ActivityCardDeleted,
		UserID:      userID,
		BoardID:     deleted.BoardID,
		Description: actorName(userID) + " deleted the card \"" + deleted.Title + "\".",
	})

	WS.Broadcast(deleted.BoardID, userID, Event{
		Type:    EventCardDeleted,
		BoardID: deleted.BoardID.String(),
		UserID:  userID.String(),
		Data:    fiber.Map{"cardId": deleted.ID.String()},
	})

	return c.JSON(fiber.Map{
		"message": deleted.Title + " card deleted successfully.",
	})
}
