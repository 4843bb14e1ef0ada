package api

import (
	"bounce.link/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler serves the seeded users and their invite listings.
type UserHandler struct {
	userService   services.IUserService
	bounceService services.IBounceService
}

func NewUserHandler() *UserHandler {
	return &UserHandler{
		userService:   services.NewUserService(),
		bounceService: services.NewBounceService(),
	}
}

// ListUsers (GET /api/users)
func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "users could not be listed"})
	}
	return c.JSON(fiber.Map{"users": users})
}

// ListUserInvites (GET /api/users/:id/invites)
func (h *UserHandler) ListUserInvites(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid user ID"})
	}

	result, err := h.bounceService.GetInvitesForUser(c.UserContext(), uint(id))
	if err != nil {
		return bounceErrorResponse(c, err)
	}
	return c.JSON(result)
}
