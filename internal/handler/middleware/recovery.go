package middleware

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Recovery turns panics into 500 responses without leaking internals.
func Recovery(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				log.Error("panic recovered",
					zap.Any("panic", r),
					zap.ByteString("stack", debug.Stack()),
				)

				if err := c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error": "Ocorreu um erro interno.",
				}); err != nil {
					log.Error("failed to send panic response", zap.Error(err))
				}
			}
		}()

		return c.Next()
	}
}
