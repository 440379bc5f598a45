package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"alumni-network/internal/domain"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorHandler maps domain error kinds to fixed client-facing text. Storage
// and unexpected errors are logged with request context; their detail never
// reaches the response.
func NewErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, errorCode, message := classify(err)
		traceID := uuid.New().String()[:8]

		if status >= fiber.StatusInternalServerError {
			entry := log.WithError(err).WithFields(logrus.Fields{
				"trace_id": traceID,
				"op":       domain.OpOf(err),
				"method":   c.Method(),
				"path":     c.Path(),
			})
			if identity, ok := c.Locals(IdentityContextKey).(domain.Identity); ok {
				entry = entry.WithField("user_id", identity.UserID)
			}
			entry.Error("request failed")
		}

		return c.Status(status).JSON(ErrorResponse{
			Success: false,
			Code:    errorCode,
			Message: message,
			TraceID: traceID,
		})
	}
}

func classify(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.StatusBadRequest, "VALIDATION_ERROR", "Invalid request"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN", "Not authorized to perform this action"
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND", "Resource not found"
	case errors.Is(err, domain.ErrStorage):
		return fiber.StatusInternalServerError, "STORAGE_ERROR", "Database error"
	}

	var e *fiber.Error
	if errors.As(err, &e) {
		switch e.Code {
		case fiber.StatusBadRequest:
			return e.Code, "BAD_REQUEST", e.Message
		case fiber.StatusUnauthorized:
			return e.Code, "UNAUTHORIZED", e.Message
		case fiber.StatusForbidden:
			return e.Code, "FORBIDDEN", e.Message
		case fiber.StatusNotFound:
			return e.Code, "NOT_FOUND", e.Message
		case fiber.StatusConflict:
			return e.Code, "CONFLICT", e.Message
		case fiber.StatusUnprocessableEntity:
			return e.Code, "VALIDATION_ERROR", e.Message
		}
		if e.Code < fiber.StatusInternalServerError {
			return e.Code, "ERROR", e.Message
		}
	}

	return fiber.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error"
}

func BadRequest(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusBadRequest, message)
}

func Unauthorized(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusUnauthorized, message)
}

func Forbidden(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusForbidden, message)
}

func NotFound(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusNotFound, message)
}

func Conflict(message string) *fiber.Error {
	return fiber.NewError(fiber.StatusConflict, message)
}
