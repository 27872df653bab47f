package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/universocelular/unicel-server-web/internal/model"
)

// SettingsRepositoryInterface defines the interface for the settings
// singleton.
type SettingsRepositoryInterface interface {
	Get(ctx context.Context) (*model.Settings, error)
	Save(ctx context.Context, settings *model.Settings) error
}

// SettingsService provides business logic for the promotional settings
// document.
type SettingsService struct {
	settingsRepo SettingsRepositoryInterface
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(settingsRepo SettingsRepositoryInterface) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// Get returns the settings document, falling back to defaults when none has
// been saved yet.
func (s *SettingsService) Get(ctx context.Context) (*model.Settings, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	if settings == nil {
		return model.DefaultSettings(), nil
	}
	return settings, nil
}

// UpdateDiscountMode replaces the discount toggle and rule list.
func (s *SettingsService) UpdateDiscountMode(ctx context.Context, req *model.UpdateDiscountModeRequest) (*model.Settings, error) {
	if req == nil || req.IsActive == nil {
		return nil, ErrInvalidRequest
	}
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	rules := make([]model.DiscountRule, 0, len(req.Discounts))
	for _, in := range req.Discounts {
		if in.IsActive == nil || in.DiscountPercentage == nil {
			return nil, ErrInvalidRequest
		}
		rules = append(rules, model.DiscountRule{
			ID:                 uuid.NewString(),
			IsActive:           *in.IsActive,
			DiscountPercentage: *in.DiscountPercentage,
			BrandID:            in.BrandID,
			ModelID:            in.ModelID,
			ServiceID:          in.ServiceID,
			SubServiceID:       in.SubServiceID,
		})
	}
	settings.IsDiscountModeActive = *req.IsActive
	settings.Discounts = rules
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}

// UpdateFreeMode replaces the free mode toggle and entry list.
func (s *SettingsService) UpdateFreeMode(ctx context.Context, req *model.UpdateFreeModeRequest) (*model.Settings, error) {
	if req == nil || req.IsActive == nil {
		return nil, ErrInvalidRequest
	}
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]model.FreeServiceEntry, 0, len(req.FreeServices))
	for _, in := range req.FreeServices {
		entries = append(entries, model.FreeServiceEntry{
			ID:           uuid.NewString(),
			ModelID:      in.ModelID,
			ServiceID:    in.ServiceID,
			SubServiceID: in.SubServiceID,
		})
	}
	settings.IsFreeModeActive = *req.IsActive
	settings.FreeServices = entries
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}

// UpdateRate sets the USD to ARS conversion rate.
func (s *SettingsService) UpdateRate(ctx context.Context, req *model.UpdateRateRequest) (*model.Settings, error) {
	if req == nil || req.USDToARSRate == nil || *req.USDToARSRate <= 0 {
		return nil, ErrInvalidRequest
	}
	settings, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	settings.USDToARSRate = *req.USDToARSRate
	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return settings, nil
}
