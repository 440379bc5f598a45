package handler

import (
	"github.com/gofiber/fiber/v2"

	"alumni-network/internal/domain"
	"alumni-network/internal/middleware"
	"alumni-network/internal/service/message"
)

type MessageHandler struct {
	messageService message.Service
}

func NewMessageHandler(messageService message.Service) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) Send(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.SendMessageInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	msg, err := h.messageService.Send(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, fiber.Map{"message": msg})
}

func (h *MessageHandler) Thread(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	otherID, err := parseUUIDParam(c, "userId", "user")
	if err != nil {
		return err
	}

	messages, err := h.messageService.FetchThread(c.Context(), userID, otherID)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"messages": messages})
}

func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := parseInt64Param(c, "id", "message")
	if err != nil {
		return err
	}

	if err := h.messageService.MarkRead(c.Context(), id, userID); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, nil)
}

func (h *MessageHandler) UnreadCount(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	count, err := h.messageService.UnreadCount(c.Context(), userID)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"count": count})
}

func (h *MessageHandler) Conversations(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	conversations, err := h.messageService.ListConversations(c.Context(), userID)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"conversations": conversations})
}

func (h *MessageHandler) Contacts(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	contacts, err := h.messageService.ListContacts(c.Context(), userID)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"users": contacts})
}
