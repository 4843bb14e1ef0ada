package api

import (
	"errors"
	"time"

	"bounce.link/configs/configslog"
	"bounce.link/models"
	"bounce.link/pkg/queryparams"
	"bounce.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// BounceHandler maps the HTTP surface onto the bounce service.
type BounceHandler struct {
	bounceService services.IBounceService
}

func NewBounceHandler() *BounceHandler {
	return &BounceHandler{bounceService: services.NewBounceService()}
}

type createBounceRequest struct {
	Title     string                  `json:"title"`
	Date      time.Time               `json:"date"`
	CreatorID uint                    `json:"creator_id"`
	Invitees  []services.InviteeInput `json:"invitees"`
}

type respondRequest struct {
	Status string `json:"status"`
}

// CreateBounce (POST /api/bounces)
func (h *BounceHandler) CreateBounce(c *fiber.Ctx) error {
	var req createBounceRequest
	if err := c.BodyParser(&req); err != nil {
		configslog.Log.Warn("CreateBounce: body could not be parsed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	bounce, err := h.bounceService.CreateBounce(c.UserContext(), req.CreatorID, services.CreateBounceInput{
		Title:    req.Title,
		Date:     req.Date,
		Invitees: req.Invitees,
	})
	if err != nil {
		return bounceErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(bounce)
}

// ListBounces (GET /api/bounces)
func (h *BounceHandler) ListBounces(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid query parameters"})
	}

	result, err := h.bounceService.GetBouncesPaginated(c.UserContext(), params)
	if err != nil {
		return bounceErrorResponse(c, err)
	}
	return c.JSON(result)
}

// GetBounce (GET /api/bounces/:id)
func (h *BounceHandler) GetBounce(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounce ID"})
	}

	bounce, err := h.bounceService.GetBounceByID(c.UserContext(), uint(id))
	if err != nil {
		return bounceErrorResponse(c, err)
	}
	return c.JSON(bounce)
}

// RespondToInvite (POST /api/bounces/:id/respond)
func (h *BounceHandler) RespondToInvite(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid bounce ID"})
	}
	var req respondRequest
	if err := c.BodyParser(&req); err != nil {
		configslog.Log.Warn("RespondToInvite: body could not be parsed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	bounce, err := h.bounceService.RespondToInvite(c.UserContext(), uint(id), models.InviteStatus(req.Status))
	if err != nil {
		return bounceErrorResponse(c, err)
	}
	return c.JSON(fiber.Map{"message": "response recorded", "bounce": bounce})
}

// bounceErrorResponse maps service errors onto HTTP statuses.
func bounceErrorResponse(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrBounceInvalidInput) ||
		errors.Is(err, services.ErrBounceTitleRequired) ||
		errors.Is(err, services.ErrBounceDateRequired) ||
		errors.Is(err, services.ErrInviteeListRequired) ||
		errors.Is(err, services.ErrInvalidResponseStatus):
		status = fiber.StatusBadRequest
	case errors.Is(err, services.ErrBounceNotFound) ||
		errors.Is(err, services.ErrCreatorNotFound) ||
		errors.Is(err, services.ErrInviteeNotFound) ||
		errors.Is(err, services.ErrUserNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrNoActiveInvitee):
		status = fiber.StatusConflict
	default:
		configslog.Log.Error("Bounce handler: unexpected service error", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
