package handlers

import (
	"github.com/arnold/kanban-api/internal/database"
	"github.com/arnold/kanban-api/internal/models"
	"github.com/gofiber/fiber/v2"
)

// GetAvatars lists the avatar catalog.
func GetAvatars(c *fiber.Ctx) error {
	var avatars []models.Avatar
	if err := database.DB.Order("name ASC").Find(&avatars).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch avatars",
		})
	}
	return c.JSON(avatars)
}
