package handlers

import (
	"github.com/arnold/kanban-api/internal/database"
	"github.com/arnold/kanban-api/internal/middleware"
	"github.com/arnold/kanban-api/internal/models"
	"github.com/arnold/kanban-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetInvitations lists invitations addressed to the requester.
func GetInvitations(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var invitations []models.Invitation
	if err := database.DB.Where("to_id = ?", userID).
		Preload("From").
		Preload("Board").
		Order("created_at DESC").
		Find(&invitations).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch invitations",
		})
	}

	return c.JSON(invitations)
}

// SendInvitation invites another user to collaborate on a board. The target
// gets an in-app notification and a push, both fire-and-forget.
func SendInvitation(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	var req models.SendInvitationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if req.ToUserID == uuid.Nil || req.BoardID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Target user ID and board ID are required",
		})
	}

	invitation, err := services.CreateInvitation(database.DB, userID, req.ToUserID, req.BoardID)
	if err != nil {
		return serviceError(c, err)
	}

	var board models.Board
	database.DB.Select("title").First(&board, "id = ?", invitation.BoardID)

	CreateNotification(req.ToUserID, "invite_received",
		"Board invitation",
		actorName(userID)+" invited you to collaborate on \""+board.Title+"\"",
		map[string]interface{}{
			"boardId":      invitation.BoardID.String(),
			"invitationId": invitation.ID.String(),
		},
	)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Invitation sent",
		"invitation": invitation,
	})
}

// AcceptInvitation accepts a pending invitation, joining the board.
func AcceptInvitation(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	invitationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid invitation ID",
		})
	}

	invitation, err := services.AcceptInvitation(database.DB, invitationID, userID)
	if err != nil {
		return serviceError(c, err)
	}

	var board models.Board
	database.DB.Select("title").First(&board, "id = ?", invitation.BoardID)

	CreateNotification(invitation.FromID, "invite_accepted",
		"Invitation accepted",
		actorName(userID)+" joined \""+board.Title+"\"",
		map[string]interface{}{"boardId": invitation.BoardID.String()},
	)

	WS.Broadcast(invitation.BoardID, userID, Event{
		Type:    EventMemberJoined,
		BoardID: invitation.BoardID.String(),
		UserID:  userID.String(),
	})

	return c.JSON(fiber.Map{
		"message": "Invitation accepted successfully",
		"boardId": invitation.BoardID,
	})
}

// RejectInvitation rejects a pending invitation. No other side effects.
func RejectInvitation(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	invitationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid invitation ID",
		})
	}

	if _, err := services.RejectInvitation(database.DB, invitationID, userID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Invitation rejected"})
}
