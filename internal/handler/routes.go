package handler

import (
	"github.com/gofiber/fiber/v2"

	"alumni-network/internal/middleware"
	"alumni-network/internal/service/auth"
)

// SetupRoutes mounts the API. idempotency guards the non-idempotent POSTs.
func SetupRoutes(app *fiber.App, h *Handlers, authService auth.Service, idempotency fiber.Handler) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1")
	v1.Get("/posts/:postId/comments", h.Comment.List)

	protected := v1.Group("", middleware.AuthRequired(authService))

	messages := protected.Group("/messages")
	messages.Post("/", idempotency, h.Message.Send)
	messages.Get("/conversations", h.Message.Conversations)
	messages.Get("/contacts", h.Message.Contacts)
	messages.Get("/unread-count", h.Message.UnreadCount)
	messages.Get("/with/:userId", h.Message.Thread)
	messages.Patch("/:id/read", h.Message.MarkRead)

	posts := protected.Group("/posts/:postId")
	posts.Post("/like", h.Post.ToggleLike)
	posts.Post("/comments", idempotency, h.Comment.Create)
	posts.Post("/share", h.Post.Share)

	protected.Delete("/comments/:commentId", h.Comment.Delete)

	notifications := protected.Group("/notifications")
	notifications.Get("/", h.Notification.List)
	notifications.Get("/unread-count", h.Notification.GetUnreadCount)
	notifications.Patch("/:id/read", h.Notification.MarkAsRead)
	notifications.Post("/mark-all-read", h.Notification.MarkAllAsRead)

	protected.Get("/badges", h.Badge.Summary)
}
