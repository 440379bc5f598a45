package handler

import (
	"github.com/gofiber/fiber/v2"

	"alumni-network/internal/domain"
	"alumni-network/internal/middleware"
	"alumni-network/internal/service/notification"
)

type NotificationHandler struct {
	notifService notification.Service
}

func NewNotificationHandler(notifService notification.Service) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	params := domain.ListNotificationsParams{
		Limit:      c.QueryInt("limit", 0),
		UnreadOnly: c.QueryBool("unread_only", false),
	}

	notifications, err := h.notifService.List(c.Context(), userID, params)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"notifications": notifications})
}

func (h *NotificationHandler) GetUnreadCount(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	count, err := h.notifService.UnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"count": count})
}

func (h *NotificationHandler) MarkAsRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := parseInt64Param(c, "id", "notification")
	if err != nil {
		return err
	}

	if err := h.notifService.MarkRead(c.Context(), id, userID); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, nil)
}

func (h *NotificationHandler) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	if err := h.notifService.MarkAllRead(c.Context(), userID); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, nil)
}
