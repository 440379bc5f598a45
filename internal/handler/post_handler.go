package handler

import (
	"github.com/gofiber/fiber/v2"

	"alumni-network/internal/middleware"
	"alumni-network/internal/service/social"
)

type PostHandler struct {
	socialService social.Service
}

func NewPostHandler(socialService social.Service) *PostHandler {
	return &PostHandler{socialService: socialService}
}

func (h *PostHandler) ToggleLike(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}
	postID, err := parseUUIDParam(c, "postId", "post")
	if err != nil {
		return err
	}

	result, err := h.socialService.ToggleLike(c.Context(), identity, postID)
	if err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{
		"liked":       result.Liked,
		"likes_count": result.LikesCount,
	})
}

func (h *PostHandler) Share(c *fiber.Ctx) error {
	identity, err := middleware.GetIdentity(c)
	if err != nil {
		return err
	}
	postID, err := parseUUIDParam(c, "postId", "post")
	if err != nil {
		return err
	}

	if err := h.socialService.SharePost(c.Context(), identity, postID); err != nil {
		return err
	}

	return respond(c, fiber.StatusOK, fiber.Map{"message": "Post shared"})
}
