package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alumni-network/internal/domain"
	"alumni-network/internal/middleware"
	"alumni-network/internal/service"
)

type Handlers struct {
	Message      *MessageHandler
	Notification *NotificationHandler
	Post         *PostHandler
	Comment      *CommentHandler
	Badge        *BadgeHandler
}

func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Message:      NewMessageHandler(services.Message),
		Notification: NewNotificationHandler(services.Notification),
		Post:         NewPostHandler(services.Social),
		Comment:      NewCommentHandler(services.Social),
		Badge:        NewBadgeHandler(services.Badge),
	}
}

// respond writes the success envelope. payload keys sit next to "success".
func respond(c *fiber.Ctx, status int, payload fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return c.Status(status).JSON(body)
}

func paginated[T any](c *fiber.Ctx, page domain.PaginatedResponse[T]) error {
	return respond(c, fiber.StatusOK, fiber.Map{
		"data":        page.Data,
		"page":        page.Page,
		"page_size":   page.PageSize,
		"total_items": page.TotalItems,
		"total_pages": page.TotalPages,
		"has_next":    page.HasNext,
		"has_prev":    page.HasPrev,
	})
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()

	if page := c.QueryInt("page", 1); page > 0 {
		params.Page = page
	}
	if pageSize := c.QueryInt("page_size", 20); pageSize > 0 {
		params.PageSize = pageSize
	}

	params.Validate()
	return params
}

func parseUUIDParam(c *fiber.Ctx, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, middleware.BadRequest("Invalid " + label + " ID")
	}
	return id, nil
}

func parseInt64Param(c *fiber.Ctx, name, label string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id < 1 {
		return 0, middleware.BadRequest("Invalid " + label + " ID")
	}
	return int64(id), nil
}
