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

// QuoteServiceInterface defines the interface for quote computation.
type QuoteServiceInterface interface {
	GetQuote(ctx context.Context, req *model.QuoteRequest) (*model.QuoteResponse, error)
}

// QuoteHandler handles HTTP requests for price quotes.
type QuoteHandler struct {
	service   QuoteServiceInterface
	validator *validator.Validate
}

// NewQuoteHandler creates a new QuoteHandler with the given service and validator.
func NewQuoteHandler(svc QuoteServiceInterface, v *validator.Validate) *QuoteHandler {
	return &QuoteHandler{service: svc, validator: v}
}

// GetQuote handles POST /api/quotes. A coupon failure rejects the request
// rather than silently quoting without the coupon.
func (h *QuoteHandler) GetQuote(c *fiber.Ctx) error {
	var req model.QuoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	resp, err := h.service.GetQuote(c.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrModelNotFound):
			return notFound(c, "model not found")
		case errors.Is(err, service.ErrServiceNotFound):
			return notFound(c, "service not found")
		case errors.Is(err, service.ErrCarrierNotFound):
			return notFound(c, "carrier not found")
		case errors.Is(err, service.ErrCouponInvalid):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "invalid or expired coupon"})
		case errors.Is(err, service.ErrCouponNotApplicable):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "coupon not applicable to this service"})
		case errors.Is(err, service.ErrInvalidRequest):
			return badRequest(c, "invalid request")
		}
		log.Error().Err(err).
			Str("model_id", req.ModelID).
			Str("service_id", req.ServiceID).
			Msg("failed to compute quote")
		return internalError(c)
	}

	return c.JSON(resp)
}
