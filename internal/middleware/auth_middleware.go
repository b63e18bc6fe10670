package middleware

import (
	"strings"

	"bereschoon_backend/internal/repository"
	"bereschoon_backend/pkg/utils/jwt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const ClaimsKey = "claims"

// AdminOnly lets a request through only when its bearer token is valid and
// its subject is listed in admin_users.
func AdminOnly(secret []byte, admins repository.AdminRepository, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Niet geautoriseerd",
			})
		}

		claims, err := jwt.ValidateToken(secret, token)
		if err != nil {
			log.Debug("rejected bearer token", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Niet geautoriseerd",
			})
		}

		isAdmin, err := admins.IsAdmin(c.UserContext(), claims.UserID())
		if err != nil {
			log.Error("admin lookup failed", zap.String("user_id", claims.UserID()), zap.Error(err))
		}
		if !isAdmin {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Alleen admins kunnen tracking informatie updaten",
			})
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}
