package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/CarolGonzaga/projeto-audiomante/internal/handler/middleware"
)

// authenticatedUserID reads the account id the auth middleware attached
// to the request.
func authenticatedUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(middleware.UserIDKey).(uuid.UUID)
	return id, ok
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}
