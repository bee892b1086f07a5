package routes

import (
	"github.com/arnold/kanban-api/internal/handlers"
	"github.com/arnold/kanban-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

func Setup(app *fiber.App) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)

	protected := api.Group("/", middleware.Protected())

	protected.Get("/me", handlers.GetMe)
	protected.Put("/me", handlers.UpdateProfile)
	protected.Get("/users/lookup", handlers.LookupUser)
	protected.Get("/users/:id", handlers.GetUserProfile)

	protected.Get("/avatars", handlers.GetAvatars)

	boards := protected.Group("/boards")
	boards.Get("/", handlers.GetBoards)
	boards.Post("/", handlers.CreateBoard)
	boards.Get("/category/:category", handlers.GetCategoryBoards)
	boards.Get("/:id", handlers.GetBoard)
	boards.Put("/:id", handlers.UpdateBoard)
	boards.Delete("/:id", handlers.DeleteBoard)
	boards.Get("/:id/collaborators", handlers.GetCollaborators)
	boards.Get("/:id/columns", handlers.GetBoardColumns)
	boards.Get("/:id/activity", handlers.GetBoardActivities)

	protected.Get("/activity/recent", handlers.GetRecentActivities)

	columns := protected.Group("/columns")
	columns.Post("/", handlers.CreateColumn)
	columns.Get("/:id", handlers.GetColumn)
	columns.Put("/:id", handlers.UpdateColumn)
	columns.Patch("/:id/move", handlers.MoveColumn)
	columns.Delete("/:id", handlers.DeleteColumn)

	cards := protected.Group("/cards")
	cards.Post("/", handlers.CreateCard)
	cards.Get("/:id", handlers.GetCard)
	cards.Put("/:id", handlers.UpdateCard)
	cards.Patch("/:id/move", handlers.MoveCard)
	cards.Patch("/:id/assignees", handlers.AssignCard)
	cards.Delete("/:id", handlers.DeleteCard)
	cards.Get("/:id/comments", handlers.GetCardComments)

	comments := protected.Group("/comments")
	comments.Post("/", handlers.CreateComment)
	comments.Delete("/:id", handlers.DeleteComment)

	invitations := protected.Group("/invitations")
	invitations.Get("/", handlers.GetInvitations)
	invitations.Post("/", handlers.SendInvitation)
	invitations.Post("/:id/accept", handlers.AcceptInvitation)
	invitations.Post("/:id/reject", handlers.RejectInvitation)

	notifications := protected.Group("/notifications")
	notifications.Get("/", handlers.GetNotifications)
	notifications.Put("/:id/read", handlers.MarkNotificationRead)
	notifications.Post("/read-all", handlers.MarkAllRead)

	// Device token for push notifications
	protected.Post("/device-token", handlers.RegisterDeviceToken)

	// WebSocket for real-time board updates
	app.Use("/ws", handlers.WebSocketUpgrade())
	app.Get("/ws/boards/:id", websocket.New(handlers.HandleWebSocket))
}
