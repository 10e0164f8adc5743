package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/rosenook/internal/config"
	"github.com/example/rosenook/internal/models"
	"github.com/example/rosenook/internal/utils"
)

const (
	userContextKey = "currentUserID"
	roleContextKey = "currentUserRole"
)

// AuthMiddleware validates JWT tokens and loads the authenticated user ID and
// role into context.
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid authorization header")
		}

		userID, role, err := utils.ParseToken(cfg.JWTSecret, parts[1])
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals(userContextKey, userID)
		c.Locals(roleContextKey, role)
		return c.Next()
	}
}

// RequireAdmin rejects callers without the ADMIN role.
func RequireAdmin() fiber.Handler {
	return requireRole(models.RoleAdmin, "Admin access required")
}

// RequireDelivery rejects callers without the DELIVERY role.
func RequireDelivery() fiber.Handler {
	return requireRole(models.RoleDelivery, "Delivery access required")
}

func requireRole(role, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if current, ok := GetCurrentRole(c); !ok || current != role {
			return fiber.NewError(fiber.StatusForbidden, message)
		}
		return c.Next()
	}
}

// GetCurrentUserID extracts the authenticated user ID from context.
func GetCurrentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	value := c.Locals(userContextKey)
	if value == nil {
		return uuid.Nil, false
	}

	if id, ok := value.(uuid.UUID); ok {
		return id, true
	}

	return uuid.Nil, false
}

// GetCurrentRole extracts the authenticated user's role from context.
func GetCurrentRole(c *fiber.Ctx) (string, bool) {
	value := c.Locals(roleContextKey)
	if value == nil {
		return "", false
	}

	if role, ok := value.(string); ok {
		return role, true
	}

	return "", false
}
