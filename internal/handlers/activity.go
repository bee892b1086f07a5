package handlers

import (
	"github.com/arnold/kanban-api/internal/database"
	"github.com/arnold/kanban-api/internal/middleware"
	"github.com/arnold/kanban-api/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// recentActivityLimit caps the cross-board feed.
const recentActivityLimit = 5

// GetRecentActivities returns the newest activities across every board the
// requester belongs to.
func GetRecentActivities(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)

	activities, err := services.RecentActivities(database.DB, userID, recentActivityLimit)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(activities)
}

// GetBoardActivities returns the full activity log for one board. Owner only.
func GetBoardActivities(c *fiber.Ctx) error {
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

	activities, err := services.BoardActivities(database.DB, boardID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(activities)
}
