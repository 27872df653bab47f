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

// CouponServiceInterface defines the interface for coupon business logic.
type CouponServiceInterface interface {
	Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error)
	List(ctx context.Context) ([]model.Coupon, error)
	Update(ctx context.Context, id string, req *model.CreateCouponRequest) (*model.Coupon, error)
	Delete(ctx context.Context, id string) error
	Validate(ctx context.Context, code string, target pricing.TargetContext) (*model.Coupon, error)
}

// ModelGetter resolves a device model so coupon validation can derive the
// brand dimension.
type ModelGetter interface {
	GetModel(ctx context.Context, id string) (*model.DeviceModel, error)
}

// CouponHandler handles HTTP requests for coupon operations.
type CouponHandler struct {
	service   CouponServiceInterface
	models    ModelGetter
	validator *validator.Validate
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(svc CouponServiceInterface, models ModelGetter, v *validator.Validate) *CouponHandler {
	return &CouponHandler{service: svc, models: models, validator: v}
}

// ValidateCoupon handles POST /api/coupons/validate. The two rejection
// reasons stay distinct so the storefront can word them differently.
func (h *CouponHandler) ValidateCoupon(c *fiber.Ctx) error {
	var req model.ValidateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	m, err := h.models.GetModel(c.Context(), req.ModelID)
	if err != nil {
		if errors.Is(err, service.ErrModelNotFound) {
			return notFound(c, "model not found")
		}
		log.Error().Err(err).Str("model_id", req.ModelID).Msg("failed to load model for coupon validation")
		return internalError(c)
	}

	target := pricing.TargetContext{
		BrandID:      m.BrandID,
		ModelID:      m.ID,
		ServiceID:    req.ServiceID,
		SubServiceID: req.SubServiceID,
	}
	coupon, err := h.service.Validate(c.Context(), req.Code, target)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponInvalid):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid or expired coupon"})
		case errors.Is(err, service.ErrCouponNotApplicable):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "coupon not applicable to this service"})
		}
		log.Error().Err(err).Str("code", req.Code).Msg("failed to validate coupon")
		return internalError(c)
	}

	return c.JSON(coupon)
}

// CreateCoupon handles POST /api/admin/coupons.
func (h *CouponHandler) CreateCoupon(c *fiber.Ctx) error {
	var req model.CreateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	coupon, err := h.service.Create(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrCouponExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "coupon already exists"})
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return badRequest(c, "invalid request")
		}
		log.Error().Err(err).Str("code", req.Code).Msg("failed to create coupon")
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(coupon)
}

// ListCoupons handles GET /api/admin/coupons.
func (h *CouponHandler) ListCoupons(c *fiber.Ctx) error {
	coupons, err := h.service.List(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list coupons")
		return internalError(c)
	}
	return c.JSON(coupons)
}

// UpdateCoupon handles PUT /api/admin/coupons/:id.
func (h *CouponHandler) UpdateCoupon(c *fiber.Ctx) error {
	id := c.Params("id")
	var req model.CreateCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	coupon, err := h.service.Update(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			return notFound(c, "coupon not found")
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return badRequest(c, "invalid request")
		}
		log.Error().Err(err).Str("coupon_id", id).Msg("failed to update coupon")
		return internalError(c)
	}
	return c.JSON(coupon)
}

// DeleteCoupon handles DELETE /api/admin/coupons/:id.
func (h *CouponHandler) DeleteCoupon(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, service.ErrCouponNotFound) {
			return notFound(c, "coupon not found")
		}
		log.Error().Err(err).Str("coupon_id", id).Msg("failed to delete coupon")
		return internalError(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
