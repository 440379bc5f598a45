package handler

import (
	"github.com/gofiber/fiber/v2"

	"alumni-network/internal/domain"
	"alumni-network/internal/middleware"
	"alumni-network/internal/service/social"
)

type CommentHandler struct {
	socialService social.Service
}

func NewCommentHandler(socialService social.Service) *CommentHandler {
	return &CommentHandler{socialService: socialService}
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}
	postID, err := parseUUIDParam(c, "postId", "post")
	if err != nil {
		return err
	}

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	comment, err := h.socialService.AddComment(c.Context(), identity, postID, input)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusCreated, fiber.Map{"comment": comment})
}

func (h *CommentHandler) List(c *fiber.Ctx) error {
	postID, err := parseUUIDParam(c, "postId", "post")
	if err != nil {
		return err
	}

	result, err := h.socialService.ListComments(c.Context(), postID, getPaginationParams(c))
	if err != nil {
		return err
	}

	return paginated(c, result)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}
	commentID, err := parseUUIDParam(c, "commentId", "comment")
	if err != nil {
		return err
	}

	if err := h.socialService.DeleteComment(c.Context(), identity, commentID); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, nil)
}
