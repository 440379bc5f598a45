package handler

import (
	"github.com/gofiber/fiber/v2"

	"alumni-network/internal/middleware"
	"alumni-network/internal/service/badge"
)

type BadgeHandler struct {
	badgeService badge.Service
}

func NewBadgeHandler(badgeService badge.Service) *BadgeHandler {
	return &BadgeHandler{badgeService: badgeService}
}

func (h *BadgeHandler) Summary(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	summary, err := h.badgeService.Summary(c.Context(), userID)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"notifications": summary.Notifications,
		"messages":      summary.Messages,
	})
}
