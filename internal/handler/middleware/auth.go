package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/CarolGonzaga/projeto-audiomante/pkg/token"
)

// UserIDKey is the fiber.Locals key under which the authenticated account
// id is stored for downstream handlers.
const UserIDKey = "user_id"

// Auth gates protected routes: it expects a bearer token, verifies it and
// attaches the resolved account id to the request. Failure is terminal
// for the request; there is nothing to retry.
func Auth(tokens *token.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token não fornecido ou mal formatado.",
			})
		}

		raw := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := tokens.Verify(raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Token inválido ou expirado.",
			})
		}

		c.Locals(UserIDKey, userID)
		return c.Next()
	}
}
