package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/universocelular/unicel-server-web/internal/model"
	"github.com/universocelular/unicel-server-web/internal/service"
)

// SettingsServiceInterface defines the interface for settings business logic.
type SettingsServiceInterface interface {
	Get(ctx context.Context) (*model.Settings, error)
	UpdateDiscountMode(ctx context.Context, req *model.UpdateDiscountModeRequest) (*model.Settings, error)
	UpdateFreeMode(ctx context.Context, req *model.UpdateFreeModeRequest) (*model.Settings, error)
	UpdateRate(ctx context.Context, req *model.UpdateRateRequest) (*model.Settings, error)
}

// SettingsHandler handles HTTP requests for the promotional settings
// document.
type SettingsHandler struct {
	service   SettingsServiceInterface
	validator *validator.Validate
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(svc SettingsServiceInterface, v *validator.Validate) *SettingsHandler {
	return &SettingsHandler{service: svc, validator: v}
}

// GetSettings handles GET /api/admin/settings.
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	settings, err := h.service.Get(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to get settings")
		return internalError(c)
	}
	return c.JSON(settings)
}

// UpdateDiscountMode handles PUT /api/admin/settings/discount-mode.
func (h *SettingsHandler) UpdateDiscountMode(c *fiber.Ctx) error {
	var req model.UpdateDiscountModeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	settings, err := h.service.UpdateDiscountMode(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return badRequest(c, "invalid request")
		}
		log.Error().Err(err).Msg("failed to update discount mode")
		return internalError(c)
	}
	return c.JSON(settings)
}

// UpdateFreeMode handles PUT /api/admin/settings/free-mode.
func (h *SettingsHandler) UpdateFreeMode(c *fiber.Ctx) error {
	var req model.UpdateFreeModeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	settings, err := h.service.UpdateFreeMode(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return badRequest(c, "invalid request")
		}
		log.Error().Err(err).Msg("failed to update free mode")
		return internalError(c)
	}
	return c.JSON(settings)
}

// UpdateRate handles PUT /api/admin/settings/rate.
func (h *SettingsHandler) UpdateRate(c *fiber.Ctx) error {
	var req model.UpdateRateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	settings, err := h.service.UpdateRate(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return badRequest(c, "invalid request")
		}
		log.Error().Err(err).Msg("failed to update conversion rate")
		return internalError(c)
	}
	return c.JSON(settings)
}
