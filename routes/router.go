package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes wires the global middlewares and all route groups.
func SetupRoutes(app *fiber.App) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())

	app.Get("/health", healthHandler)

	registerAPIRoutes(app)

	// Catches everything unmatched; must come last.
	app.Use(notFoundHandler)
}

func healthHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy", "message": "API is running!"})
}

func notFoundHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "resource not found"})
}
