package routes

import (
	api_handlers "bounce.link/handlers/api"

	"github.com/gofiber/fiber/v2"
)

// registerAPIRoutes defines the /api surface.
func registerAPIRoutes(app *fiber.App) {
	bounceHandler := api_handlers.NewBounceHandler()
	userHandler := api_handlers.NewUserHandler()

	apiGroup := app.Group("/api")

	// --- Bounces ---
	apiGroup.Post("/bounces", bounceHandler.CreateBounce)                // POST /api/bounces
	apiGroup.Get("/bounces", bounceHandler.ListBounces)                  // GET  /api/bounces
	apiGroup.Get("/bounces/:id", bounceHandler.GetBounce)                // GET  /api/bounces/{id}
	apiGroup.Post("/bounces/:id/respond", bounceHandler.RespondToInvite) // POST /api/bounces/{id}/respond

	// --- Users ---
	apiGroup.Get("/users", userHandler.ListUsers)                   // GET /api/users
	apiGroup.Get("/users/:id/invites", userHandler.ListUserInvites) // GET /api/users/{id}/invites
}
