package handler

import (
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(
	app *fiber.App,
	userHandler *UserHandler,
	authHandler *AuthHandler,
	bookshelfHandler *BookshelfHandler,
	catalogHandler *CatalogHandler,
	healthHandler *HealthHandler,
	authMiddleware fiber.Handler,
) {
	// Health checks (public)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	// Account routes
	users := app.Group("/users")
	users.Post("/signup", userHandler.Signup)
	users.Post("/login", userHandler.Login)
	users.Get("/me", authMiddleware, userHandler.GetMe)

	// Google login flow (public)
	auth := app.Group("/auth")
	auth.Get("/google", authHandler.GoogleLogin)
	auth.Get("/google/callback", authHandler.GoogleCallback)

	// Bookshelf (protected)
	shelves := app.Group("/bookshelves", authMiddleware)
	shelves.Post("/", bookshelfHandler.Add)
	shelves.Get("/", bookshelfHandler.List)
	shelves.Get("/:id", bookshelfHandler.Get)
	shelves.Patch("/:id", bookshelfHandler.Update)
	shelves.Delete("/:id", bookshelfHandler.Remove)

	// Catalog (public)
	app.Get("/search", catalogHandler.Search)
	app.Get("/suggestions", catalogHandler.Suggestions)
}
