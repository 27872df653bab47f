package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/universocelular/unicel-server-web/internal/cache"
	"github.com/universocelular/unicel-server-web/internal/model"
)

// BrandRepositoryInterface defines the interface for brand data access.
type BrandRepositoryInterface interface {
	Insert(ctx context.Context, brand *model.Brand) error
	GetByID(ctx context.Context, id string) (*model.Brand, error)
	List(ctx context.Context) ([]model.Brand, error)
	Update(ctx context.Context, brand *model.Brand) error
	Delete(ctx context.Context, id string) error
}

// ModelRepositoryInterface defines the interface for device model data access.
type ModelRepositoryInterface interface {
	Insert(ctx context.Context, m *model.DeviceModel) error
	GetByID(ctx context.Context, id string) (*model.DeviceModel, error)
	List(ctx context.Context) ([]model.DeviceModel, error)
	Update(ctx context.Context, m *model.DeviceModel) error
	UpdateOverrides(ctx context.Context, id string, overrides model.OverrideSet) error
	Delete(ctx context.Context, id string) error
}

// ServiceRepositoryInterface defines the interface for service data access.
type ServiceRepositoryInterface interface {
	Insert(ctx context.Context, svc *model.Service) error
	GetByID(ctx context.Context, id string) (*model.Service, error)
	List(ctx context.Context) ([]model.Service, error)
	Update(ctx context.Context, svc *model.Service) error
	Delete(ctx context.Context, id string) error
}

// PaymentMethodRepositoryInterface defines the interface for payment method
// data access.
type PaymentMethodRepositoryInterface interface {
	Insert(ctx context.Context, pm *model.PaymentMethod) error
	List(ctx context.Context) ([]model.PaymentMethod, error)
	ListActive(ctx context.Context) ([]model.PaymentMethod, error)
	Update(ctx context.Context, pm *model.PaymentMethod) error
	Delete(ctx context.Context, id string) error
}

// CatalogService provides business logic for the device and service
// catalog. Reads go through the catalog cache; every write invalidates it.
type CatalogService struct {
	brandRepo   BrandRepositoryInterface
	modelRepo   ModelRepositoryInterface
	serviceRepo ServiceRepositoryInterface
	paymentRepo PaymentMethodRepositoryInterface
	catalog     *cache.CatalogCache
}

// NewCatalogService creates a CatalogService backed by the given
// repositories. The returned service owns a read-through cache over the
// brand, model and service tables.
func NewCatalogService(
	brandRepo BrandRepositoryInterface,
	modelRepo ModelRepositoryInterface,
	serviceRepo ServiceRepositoryInterface,
	paymentRepo PaymentMethodRepositoryInterface,
) *CatalogService {
	s := &CatalogService{
		brandRepo:   brandRepo,
		modelRepo:   modelRepo,
		serviceRepo: serviceRepo,
		paymentRepo: paymentRepo,
	}
	s.catalog = cache.NewCatalogCache(s.loadSnapshot)
	return s
}

func (s *CatalogService) loadSnapshot(ctx context.Context) (*cache.Snapshot, error) {
	brands, err := s.brandRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	models, err := s.modelRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return &cache.Snapshot{Brands: brands, Models: models, Services: services}, nil
}

// Snapshot returns the cached catalog snapshot, loading it on first use.
func (s *CatalogService) Snapshot(ctx context.Context) (*cache.Snapshot, error) {
	return s.catalog.Snapshot(ctx)
}

// Countries returns the fixed country catalog.
func (s *CatalogService) Countries() []model.Country {
	return model.Countries()
}

// Carriers returns the fixed carrier catalog.
func (s *CatalogService) Carriers() []model.Carrier {
	return model.Carriers()
}

// CreateBrand creates a brand from the request.
// Returns ErrBrandExists if a brand with the same name already exists.
func (s *CatalogService) CreateBrand(ctx context.Context, req *model.CreateBrandRequest) (*model.Brand, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	brand := &model.Brand{
		ID:   uuid.NewString(),
		Name: req.Name,
	}
	if err := s.brandRepo.Insert(ctx, brand); err != nil {
		return nil, err
	}
	s.catalog.Invalidate()
	return brand, nil
}

// ListBrands returns all brands.
func (s *CatalogService) ListBrands(ctx context.Context) ([]model.Brand, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Brands, nil
}

// UpdateBrand renames a brand.
// Returns ErrBrandNotFound if the brand doesn't exist.
func (s *CatalogService) UpdateBrand(ctx context.Context, id string, req *model.CreateBrandRequest) (*model.Brand, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	brand := &model.Brand{ID: id, Name: req.Name}
	if err := s.brandRepo.Update(ctx, brand); err != nil {
		return nil, err
	}
	s.catalog.Invalidate()
	return brand, nil
}

// DeleteBrand deletes a brand.
// Returns ErrBrandNotFound if the brand doesn't exist.
func (s *CatalogService) DeleteBrand(ctx context.Context, id string) error {
	if err := s.brandRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.catalog.Invalidate()
	return nil
}

// CreateModel creates a device model under an existing brand.
// Returns ErrBrandNotFound if the referenced brand doesn't exist.
func (s *CatalogService) CreateModel(ctx context.Context, req *model.CreateModelRequest) (*model.DeviceModel, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	brand, err := s.brandRepo.GetByID(ctx, req.BrandID)
	if err != nil {
		return nil, fmt.Errorf("get brand: %w", err)
	}
	if brand == nil {
		return nil, ErrBrandNotFound
	}
	m := &model.DeviceModel{
		ID:       uuid.NewString(),
		Name:     req.Name,
		BrandID:  req.BrandID,
		Category: model.Category(req.Category),
	}
	if err := s.modelRepo.Insert(ctx, m); err != nil {
		return nil, err
	}
	s.catalog.Invalidate()
	return m, nil
}

// ListModels returns all device models, optionally filtered by brand. Both
// forms read the cached snapshot so filtered listings never disagree with
// the models the quote path sees.
func (s *CatalogService) ListModels(ctx context.Context, brandID string) ([]model.DeviceModel, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if brandID == "" {
		return snap.Models, nil
	}
	filtered := []model.DeviceModel{}
	for _, m := range snap.Models {
		if m.BrandID == brandID {
			filtered = append(filtered, m)
		}
	}
	return filtered, nil
}

// GetModel returns a single device model.
// Returns ErrModelNotFound if the model doesn't exist.
func (s *CatalogService) GetModel(ctx context.Context, id string) (*model.DeviceModel, error) {
	m, err := s.modelRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get model: %w", err)
	}
	if m == nil {
		return nil, ErrModelNotFound
	}
	return m, nil
}

// UpdateModel renames or recategorizes a model, preserving its overrides.
// Returns ErrModelNotFound if the model doesn't exist.
func (s *CatalogService) UpdateModel(ctx context.Context, id string, req *model.UpdateModelRequest) (*model.DeviceModel, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	m, err := s.GetModel(ctx, id)
	if err != nil {
		return nil, err
	}
	m.Name = req.Name
	m.Category = model.Category(req.Category)
	if err := s.modelRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	s.catalog.Invalidate()
	return m, nil
}

// UpdateModelOverrides replaces a model's price override document.
// Returns ErrModelNotFound if the model doesn't exist.
func (s *CatalogService) UpdateModelOverrides(ctx context.Context, id string, overrides model.OverrideSet) (*model.DeviceModel, error) {
	if err := s.modelRepo.UpdateOverrides(ctx, id, overrides); err != nil {
		return nil, err
	}
	s.catalog.Invalidate()
	return s.GetModel(ctx, id)
}

// DeleteModel deletes a device model.
// Returns ErrModelNotFound if the model doesn't exist.
func (s *CatalogService) DeleteModel(ctx context.Context, id string) error {
	if err := s.modelRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.catalog.Invalidate()
	return nil
}

// CreateService creates a service with optional sub-services.
func (s *CatalogService) CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	svc := &model.Service{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Emoji:       req.Emoji,
		SubServices: subServicesFromInputs(req.SubServices),
	}
	if err := s.serviceRepo.Insert(ctx, svc); err != nil {
		return nil, err
	}
	s.catalog.Invalidate()
	return svc, nil
}

// ListServices returns all services.
func (s *CatalogService) ListServices(ctx context.Context) ([]model.Service, error) {
	snap, err := s.catalog.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Services, nil
}

// GetService returns a single service.
// Returns ErrServiceNotFound if the service doesn't exist.
func (s *CatalogService) GetService(ctx context.Context, id string) (*model.Service, error) {
	svc, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if svc == nil {
		return nil, ErrServiceNotFound
	}
	return svc, nil
}

// UpdateService replaces a service's fields and sub-service list.
// Returns ErrServiceNotFound if the service doesn't exist.
func (s *CatalogService) UpdateService(ctx context.Context, id string, req *model.CreateServiceRequest) (*model.Service, error) {
	if req == nil {
		return nil, ErrInvalidRequest
	}
	svc := &model.Service{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Emoji:       req.Emoji,
		SubServices: subServicesFromInputs(req.SubServices),
	}
	if err := s.serviceRepo.Update(ctx, svc); err != nil {
		return nil, err
	}
	s.catalog.Invalidate()
	return svc, nil
}

// DeleteService deletes a service.
// Returns ErrServiceNotFound if the service doesn't exist.
func (s *CatalogService) DeleteService(ctx context.Context, id string) error {
	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.catalog.Invalidate()
	return nil
}

func subServicesFromInputs(inputs []model.SubServiceInput) []model.SubService {
	if len(inputs) == 0 {
		return nil
	}
	out := make([]model.SubService, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, model.SubService{
			ID:          uuid.NewString(),
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			Emoji:       in.Emoji,
		})
	}
	return out
}

// CreatePaymentMethod creates a payment method.
// Returns ErrInvalidRequest when the country id is unknown.
func (s *CatalogService) CreatePaymentMethod(ctx context.Context, req *model.CreatePaymentMethodRequest) (*model.PaymentMethod, error) {
	if req == nil || req.IsActive == nil {
		return nil, ErrInvalidRequest
	}
	if model.CountryByID(req.CountryID) == nil {
		return nil, ErrInvalidRequest
	}
	pm := &model.PaymentMethod{
		ID:        uuid.NewString(),
		Name:      req.Name,
		CountryID: req.CountryID,
		Emoji:     req.Emoji,
		IsActive:  *req.IsActive,
	}
	if err := s.paymentRepo.Insert(ctx, pm); err != nil {
		return nil, err
	}
	return pm, nil
}

// ListPaymentMethods returns payment methods, active-only when requested.
func (s *CatalogService) ListPaymentMethods(ctx context.Context, activeOnly bool) ([]model.PaymentMethod, error) {
	if activeOnly {
		return s.paymentRepo.ListActive(ctx)
	}
	return s.paymentRepo.List(ctx)
}

// UpdatePaymentMethod replaces a payment method's fields.
// Returns ErrPaymentMethodNotFound if it doesn't exist.
func (s *CatalogService) UpdatePaymentMethod(ctx context.Context, id string, req *model.CreatePaymentMethodRequest) (*model.PaymentMethod, error) {
	if req == nil || req.IsActive == nil {
		return nil, ErrInvalidRequest
	}
	if model.CountryByID(req.CountryID) == nil {
		return nil, ErrInvalidRequest
	}
	pm := &model.PaymentMethod{
		ID:        id,
		Name:      req.Name,
		CountryID: req.CountryID,
		Emoji:     req.Emoji,
		IsActive:  *req.IsActive,
	}
	if err := s.paymentRepo.Update(ctx, pm); err != nil {
		return nil, err
	}
	return pm, nil
}

// DeletePaymentMethod deletes a payment method.
// Returns ErrPaymentMethodNotFound if it doesn't exist.
func (s *CatalogService) DeletePaymentMethod(ctx context.Context, id string) error {
	return s.paymentRepo.Delete(ctx, id)
}
