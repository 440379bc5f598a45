package middleware

import (
	"github.com/gofiber/fiber/v2"

	"alumni-network/internal/domain"
)

func RequireRole(requiredRole domain.Role) fiber.Handler {
	return RequireAnyRole(requiredRole)
}

func RequireAnyRole(roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := GetIdentity(c)
		if err != nil {
			return err
		}

		for _, role := range roles {
			if identity.HasRole(role) {
				return c.Next()
			}
		}
		return Forbidden("Insufficient permissions for this operation")
	}
}
