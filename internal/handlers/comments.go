package handlers

import (
	"strings"

	"github.com/arnold/kanban-api/internal/database"
	"github.com/arnold/kanban-api/internal/middleware"
	"github.com/arnold/kanban-api/internal/models"
	"github.com/arnold/kanban-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetCardComments returns a card's comments in insertion order.
func GetCardComments(c *fiber.Ctx) error {
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

	var comments []models.Comment
	database.DB.Where("card_id = ?", cardID).
		Preload("Author").
		Order("created_at ASC").
		Find(&comments)

	return c.JSON(comments)
}

func CreateComment(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if strings.TrimSpace(req.Text) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Comment text is required",
		})
	}

	var card models.Card
	if err := database.DB.First(&card, "id = ?", req.CardID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Card not found",
		})
	}

	if err := services.RequireBoardMember(database.DB, card.BoardID, userID); err != nil {
		return serviceError(c, err)
	}

	comment := models.Comment{
		CardID:   card.ID,
		AuthorID: userID,
		Text:     req.Text,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add comment",
		})
	}

	// Preload author for response
	database.DB.Preload("Author").First(&comment, "id = ?", comment.ID)

	services.RecordActivity(database.DB, services.ActivityEntry{
		Type:        models.ActivityCommentAdded,
		UserID:      userID,
		BoardID:     card.BoardID,
		CardID:      &card.ID,
		CommentID:   &comment.ID,
		Description: actorName(userID) + " commented on the card \"" + card.Title + "\".",
	})

	WS.Broadcast(card.BoardID, userID, Event{
		Type:    EventCommentAdded,
		BoardID: card.BoardID.String(),
		UserID:  userID.String(),
		Data: fiber.Map{
			"cardId":    card.ID.String(),
			"commentId": comment.ID.String(),
		},
	})

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// DeleteComment deletes a comment. Author only.
func DeleteComment(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid comment ID",
		})
	}

	var comment models.Comment
	if err := database.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Comment not found",
		})
	}

	if comment.AuthorID != userID {
		return serviceError(c, services.ErrNotCommentAuthor)
	}

	var card models.Card
	database.DB.First(&card, "id = ?", comment.CardID)

	if _, err := services.DeleteComment(database.DB, commentID); err != nil {
		return serviceError(c, err)
	}

	services.RecordActivity(database.DB, services.ActivityEntry{
		Type:        models.ActivityCommentDeleted,
		UserID:      userID,
		BoardID:     card.BoardID,
		CardID:      &card.ID,
		Description: actorName(userID) + " deleted a comment on the card \"" + card.Title + "\".",
	})

	WS.Broadcast(card.BoardID, userID, Event{
		Type:    EventCommentDeleted,
		BoardID: card.BoardID.String(),
		UserID:  userID.String(),
		Data: fiber.Map{
			"cardId":    comment.CardID.String(),
			"commentId": commentID.String(),
		},
	})

	return c.JSON(fiber.Map{"message": "comment deleted!"})
}
