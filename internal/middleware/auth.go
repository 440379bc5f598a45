package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alumni-network/internal/domain"
	"alumni-network/internal/service/auth"
)

const IdentityContextKey = "identity"

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return Unauthorized("Missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return Unauthorized("Invalid authorization header format")
		}

		claims, err := authService.ValidateAccessToken(parts[1])
		if err != nil {
			return Unauthorized("Invalid or expired token")
		}

		c.Locals(IdentityContextKey, claims.Identity())
		return c.Next()
	}
}

// GetIdentity returns the authenticated caller, or an unauthorized error when
// the route is not behind AuthRequired.
func GetIdentity(c *fiber.Ctx) (domain.Identity, error) {
	identity, ok := c.Locals(IdentityContextKey).(domain.Identity)
	if !ok || identity.UserID == uuid.Nil {
		return domain.Identity{}, Unauthorized("Authentication required")
	}
	return identity, nil
}

func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	identity, err := GetIdentity(c)
	if err != nil {
		return uuid.Nil, err
	}
	return identity.UserID, nil
}
