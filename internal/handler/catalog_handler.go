package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/universocelular/unicel-server-web/internal/cache"
	"github.com/universocelular/unicel-server-web/internal/model"
	"github.com/universocelular/unicel-server-web/internal/service"
)

// CatalogServiceInterface defines the interface for catalog business logic.
type CatalogServiceInterface interface {
	Snapshot(ctx context.Context) (*cache.Snapshot, error)
	Countries() []model.Country
	Carriers() []model.Carrier

	CreateBrand(ctx context.Context, req *model.CreateBrandRequest) (*model.Brand, error)
	ListBrands(ctx context.Context) ([]model.Brand, error)
	UpdateBrand(ctx context.Context, id string, req *model.CreateBrandRequest) (*model.Brand, error)
	DeleteBrand(ctx context.Context, id string) error

	CreateModel(ctx context.Context, req *model.CreateModelRequest) (*model.DeviceModel, error)
	ListModels(ctx context.Context, brandID string) ([]model.DeviceModel, error)
	GetModel(ctx context.Context, id string) (*model.DeviceModel, error)
	UpdateModel(ctx context.Context, id string, req *model.UpdateModelRequest) (*model.DeviceModel, error)
	UpdateModelOverrides(ctx context.Context, id string, overrides model.OverrideSet) (*model.DeviceModel, error)
	DeleteModel(ctx context.Context, id string) error

	CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error)
	ListServices(ctx context.Context) ([]model.Service, error)
	GetService(ctx context.Context, id string) (*model.Service, error)
	UpdateService(ctx context.Context, id string, req *model.CreateServiceRequest) (*model.Service, error)
	DeleteService(ctx context.Context, id string) error

	CreatePaymentMethod(ctx context.Context, req *model.CreatePaymentMethodRequest) (*model.PaymentMethod, error)
	ListPaymentMethods(ctx context.Context, activeOnly bool) ([]model.PaymentMethod, error)
	UpdatePaymentMethod(ctx context.Context, id string, req *model.CreatePaymentMethodRequest) (*model.PaymentMethod, error)
	DeletePaymentMethod(ctx context.Context, id string) error
}

// CatalogHandler handles HTTP requests for the storefront catalog and its
// admin CRUD surface.
type CatalogHandler struct {
	service   CatalogServiceInterface
	validator *validator.Validate
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc CatalogServiceInterface, v *validator.Validate) *CatalogHandler {
	return &CatalogHandler{service: svc, validator: v}
}

// GetCatalog handles GET /api/catalog, returning the full storefront
// snapshot in one response.
func (h *CatalogHandler) GetCatalog(c *fiber.Ctx) error {
	snap, err := h.service.Snapshot(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load catalog")
		return internalError(c)
	}
	return c.JSON(fiber.Map{
		"brands":   snap.Brands,
		"models":   snap.Models,
		"services": snap.Services,
	})
}

// ListBrands handles GET /api/brands.
func (h *CatalogHandler) ListBrands(c *fiber.Ctx) error {
	brands, err := h.service.ListBrands(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list brands")
		return internalError(c)
	}
	return c.JSON(brands)
}

// ListModels handles GET /api/models with an optional brand_id filter.
func (h *CatalogHandler) ListModels(c *fiber.Ctx) error {
	models, err := h.service.ListModels(c.Context(), c.Query("brand_id"))
	if err != nil {
		log.Error().Err(err).Msg("failed to list models")
		return internalError(c)
	}
	return c.JSON(models)
}

// GetModel handles GET /api/models/:id.
func (h *CatalogHandler) GetModel(c *fiber.Ctx) error {
	m, err := h.service.GetModel(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrModelNotFound) {
			return notFound(c, "model not found")
		}
		log.Error().Err(err).Str("model_id", c.Params("id")).Msg("failed to get model")
		return internalError(c)
	}
	return c.JSON(m)
}

// ListServices handles GET /api/services.
func (h *CatalogHandler) ListServices(c *fiber.Ctx) error {
	services, err := h.service.ListServices(c.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list services")
		return internalError(c)
	}
	return c.JSON(services)
}

// ListCountries handles GET /api/countries.
func (h *CatalogHandler) ListCountries(c *fiber.Ctx) error {
	return c.JSON(h.service.Countries())
}

// ListCarriers handles GET /api/carriers.
func (h *CatalogHandler) ListCarriers(c *fiber.Ctx) error {
	return c.JSON(h.service.Carriers())
}

// ListPaymentMethods handles GET /api/payment-methods. The public route
// serves active methods only; the admin route passes all=true.
func (h *CatalogHandler) ListPaymentMethods(c *fiber.Ctx) error {
	activeOnly := !c.QueryBool("all")
	methods, err := h.service.ListPaymentMethods(c.Context(), activeOnly)
	if err != nil {
		log.Error().Err(err).Msg("failed to list payment methods")
		return internalError(c)
	}
	return c.JSON(methods)
}

// CreateBrand handles POST /api/admin/brands.
func (h *CatalogHandler) CreateBrand(c *fiber.Ctx) error {
	var req model.CreateBrandRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	brand, err := h.service.CreateBrand(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrBrandExists) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "brand already exists"})
		}
		log.Error().Err(err).Str("name", req.Name).Msg("failed to create brand")
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(brand)
}

// UpdateBrand handles PUT /api/admin/brands/:id.
func (h *CatalogHandler) UpdateBrand(c *fiber.Ctx) error {
	var req model.CreateBrandRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	brand, err := h.service.UpdateBrand(c.Context(), c.Params("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			return notFound(c, "brand not found")
		}
		log.Error().Err(err).Str("brand_id", c.Params("id")).Msg("failed to update brand")
		return internalError(c)
	}
	return c.JSON(brand)
}

// DeleteBrand handles DELETE /api/admin/brands/:id.
func (h *CatalogHandler) DeleteBrand(c *fiber.Ctx) error {
	if err := h.service.DeleteBrand(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			return notFound(c, "brand not found")
		}
		log.Error().Err(err).Str("brand_id", c.Params("id")).Msg("failed to delete brand")
		return internalError(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateModel handles POST /api/admin/models.
func (h *CatalogHandler) CreateModel(c *fiber.Ctx) error {
	var req model.CreateModelRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	m, err := h.service.CreateModel(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrBrandNotFound) {
			return notFound(c, "brand not found")
		}
		log.Error().Err(err).Str("name", req.Name).Msg("failed to create model")
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(m)
}

// UpdateModel handles PUT /api/admin/models/:id.
func (h *CatalogHandler) UpdateModel(c *fiber.Ctx) error {
	var req model.UpdateModelRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	m, err := h.service.UpdateModel(c.Context(), c.Params("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrModelNotFound) {
			return notFound(c, "model not found")
		}
		log.Error().Err(err).Str("model_id", c.Params("id")).Msg("failed to update model")
		return internalError(c)
	}
	return c.JSON(m)
}

// UpdateModelOverrides handles PUT /api/admin/models/:id/overrides. The body
// is the override document itself in its wire shape.
func (h *CatalogHandler) UpdateModelOverrides(c *fiber.Ctx) error {
	var overrides model.OverrideSet
	if err := overrides.UnmarshalJSON(c.Body()); err != nil {
		return badRequest(c, "invalid override document")
	}

	m, err := h.service.UpdateModelOverrides(c.Context(), c.Params("id"), overrides)
	if err != nil {
		if errors.Is(err, service.ErrModelNotFound) {
			return notFound(c, "model not found")
		}
		log.Error().Err(err).Str("model_id", c.Params("id")).Msg("failed to update overrides")
		return internalError(c)
	}
	return c.JSON(m)
}

// DeleteModel handles DELETE /api/admin/models/:id.
func (h *CatalogHandler) DeleteModel(c *fiber.Ctx) error {
	if err := h.service.DeleteModel(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrModelNotFound) {
			return notFound(c, "model not found")
		}
		log.Error().Err(err).Str("model_id", c.Params("id")).Msg("failed to delete model")
		return internalError(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateService handles POST /api/admin/services.
func (h *CatalogHandler) CreateService(c *fiber.Ctx) error {
	var req model.CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	svc, err := h.service.CreateService(c.Context(), &req)
	if err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("failed to create service")
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(svc)
}

// UpdateService handles PUT /api/admin/services/:id.
func (h *CatalogHandler) UpdateService(c *fiber.Ctx) error {
	var req model.CreateServiceRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	svc, err := h.service.UpdateService(c.Context(), c.Params("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			return notFound(c, "service not found")
		}
		log.Error().Err(err).Str("service_id", c.Params("id")).Msg("failed to update service")
		return internalError(c)
	}
	return c.JSON(svc)
}

// DeleteService handles DELETE /api/admin/services/:id.
func (h *CatalogHandler) DeleteService(c *fiber.Ctx) error {
	if err := h.service.DeleteService(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrServiceNotFound) {
			return notFound(c, "service not found")
		}
		log.Error().Err(err).Str("service_id", c.Params("id")).Msg("failed to delete service")
		return internalError(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreatePaymentMethod handles POST /api/admin/payment-methods.
func (h *CatalogHandler) CreatePaymentMethod(c *fiber.Ctx) error {
	var req model.CreatePaymentMethodRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	pm, err := h.service.CreatePaymentMethod(c.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return badRequest(c, "invalid request: unknown country")
		}
		log.Error().Err(err).Str("name", req.Name).Msg("failed to create payment method")
		return internalError(c)
	}
	return c.Status(fiber.StatusCreated).JSON(pm)
}

// UpdatePaymentMethod handles PUT /api/admin/payment-methods/:id.
func (h *CatalogHandler) UpdatePaymentMethod(c *fiber.Ctx) error {
	var req model.CreatePaymentMethodRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := h.validator.Struct(req); err != nil {
		return badRequest(c, formatValidationError(err))
	}

	pm, err := h.service.UpdatePaymentMethod(c.Context(), c.Params("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrPaymentMethodNotFound) {
			return notFound(c, "payment method not found")
		}
		if errors.Is(err, service.ErrInvalidRequest) {
			return badRequest(c, "invalid request: unknown country")
		}
		log.Error().Err(err).Str("payment_method_id", c.Params("id")).Msg("failed to update payment method")
		return internalError(c)
	}
	return c.JSON(pm)
}

// DeletePaymentMethod handles DELETE /api/admin/payment-methods/:id.
func (h *CatalogHandler) DeletePaymentMethod(c *fiber.Ctx) error {
	if err := h.service.DeletePaymentMethod(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, service.ErrPaymentMethodNotFound) {
			return notFound(c, "payment method not found")
		}
		log.Error().Err(err).Str("payment_method_id", c.Params("id")).Msg("failed to delete payment method")
		return internalError(c)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
