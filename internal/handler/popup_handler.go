package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/universocelular/unicel-server-web/internal/model"
	"github.com/universocelular/unicel-server-web/internal/pricing"
	"github.com/universocelular/unicel-server-web/internal/service"
)

// PopupServiceInterface defines the interface for pop-up business logic.
type PopupServiceInterface interface {
	Create(ctx context.Context, req *model.CreatePopupRequest) (*model.Popup, error)
	List(ctx context.Context) ([]model.Popup, error)
	Update(ctx context.Context, id string, req *model.CreatePopupRequest) (*model.Popup, error)
	Delete(ctx context.Context, id string) error
	Resolve(ctx context.Context, target pricing.TargetContext, landing bool) (*model.Popup, error)
}

// PopupHandler handles HTTP requests for marketing pop-ups.
type PopupHandler struct {
	service   PopupServiceInterface
	validator *validator.Validate
}

// NewPopupHandler creates a new PopupHandler.
func NewPopupHandler(svc PopupServiceInterface, v *validator.Validate) *PopupHandler {
	return &PopupHandler{service: svc, validator: v}
}

// ResolvePopup handles GET /api/popups/resolve. The page context arrives as
// query parameters; landing=true marks the home page. A 204 means no pop-up
// applies.
func (h *PopupHandler) ResolvePopup(c *fiber.Ctx) error {
	target := pricing.TargetContext{
		BrandID:      c.Query("brand_id"),
		ServiceID:    c.Query("service_id"),
		SubServiceID: c.Query("sub_service_id"),
	}

	popup, err := h.service.Resolve(c.Context(), target, c.QueryBool("landing"))
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve popup")
		return internalError(c)
	}
	if popup == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(popup)
}

// CreatePopup handles POST /api/admin/popups.
func (h *PopupHandler) CreatePopup(c *fiber.Ctx) error {
	var req model.CreatePopupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	popup, err := h.service.Create(c.Context(), &req)
	if err != nil {
		log.Error().Err(err).Str("title", req.Title).Msg("failed to create popup")
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(popup)
}

// ListPopups handles GET /api/admin/popups.
func (h *PopupHandler) ListPopups(c *fiber.Ctx) error {
	popups, err := h.service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list popups")
		return internalError(c)
	}
	return c.JSON(popups)
}

// UpdatePopup handles PUT /api/admin/popups/:id.
func (h *PopupHandler) UpdatePopup(c *fiber.Ctx) error {
	id := c.Params("id")
	var req model.CreatePopupRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	popup, err := h.service.Update(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrPopupNotFound) {
			return notFound(c, "popup not found")
		}
		log.Error().Err(err).Str("popup_id", id).Msg("failed to update popup")
		return internalError(c)
	}
	return c.JSON(popup)
}

// DeletePopup handles DELETE /api/admin/popups/:id.
func (h *PopupHandler) DeletePopup(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrPopupNotFound) {
			return notFound(c, "popup not found")
		}
		log.Error().Err(err).Str("popup_id", id).Msg("failed to delete popup")
		return internalError(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
