package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/universocelular/unicel-server-web/internal/model"
	"github.com/universocelular/unicel-server-web/internal/pricing"
)

// PopupRepositoryInterface defines the interface for pop-up data access.
type PopupRepositoryInterface interface {
	Insert(ctx context.Context, popup *model.Popup) error
	GetByID(ctx context.Context, id string) (*model.Popup, error)
	List(ctx context.Context) ([]model.Popup, error)
	ListActive(ctx context.Context) ([]model.Popup, error)
	Update(ctx context.Context, popup *model.Popup) error
	Delete(ctx context.Context, id string) error
}

// PopupService provides business logic for marketing pop-ups.
type PopupService struct {
	popupRepo PopupRepositoryInterface
}

// NewPopupService creates a new PopupService.
func NewPopupService(popupRepo PopupRepositoryInterface) *PopupService {
	return &PopupService{popupRepo: popupRepo}
}

// Create creates a pop-up from the request.
func (s *PopupService) Create(ctx context.Context, req *model.CreatePopupRequest) (*model.Popup, error) {
	if req == nil || req.IsActive == nil {
		return nil, ErrInvalidRequest
	}
	popup := popupFromRequest(uuid.NewString(), req)
	if err := s.popupRepo.Insert(ctx, popup); err != nil {
		return nil, err
	}
	return popup, nil
}

// List returns all pop-ups.
func (s *PopupService) List(ctx context.Context) ([]model.Popup, error) {
	return s.popupRepo.List(ctx)
}

// Update replaces a pop-up's fields.
// Returns ErrPopupNotFound if the pop-up doesn't exist.
func (s *PopupService) Update(ctx context.Context, id string, req *model.CreatePopupRequest) (*model.Popup, error) {
	if req == nil || req.IsActive == nil {
		return nil, ErrInvalidRequest
	}
	popup := popupFromRequest(id, req)
	if err := s.popupRepo.Update(ctx, popup); err != nil {
		return nil, err
	}
	return popup, nil
}

// Delete deletes a pop-up.
// Returns ErrPopupNotFound if the pop-up doesn't exist.
func (s *PopupService) Delete(ctx context.Context, id string) error {
	return s.popupRepo.Delete(ctx, id)
}

// Resolve picks the single pop-up to show for a page context, or nil when
// none applies. The landing page additionally falls back to the first
// globally targeted active pop-up when nothing matches.
func (s *PopupService) Resolve(ctx context.Context, target pricing.TargetContext, landing bool) (*model.Popup, error) {
	popups, err := s.popupRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list popups: %w", err)
	}
	opts := []pricing.ResolveOption{}
	if landing {
		opts = append(opts, pricing.WithLandingFallback())
	}
	best, ok := pricing.ResolveBestMatch(target, popups, opts...)
	if !ok {
		return nil, nil
	}
	return &best, nil
}

func popupFromRequest(id string, req *model.CreatePopupRequest) *model.Popup {
	return &model.Popup{
		ID:               id,
		Title:            req.Title,
		Description:      req.Description,
		MediaType:        req.MediaType,
		MediaURL:         req.MediaURL,
		BrandID:          req.BrandID,
		ServiceID:        req.ServiceID,
		SubServiceID:     req.SubServiceID,
		HasCountdown:     req.HasCountdown,
		CountdownSeconds: req.CountdownSeconds,
		DelaySeconds:     req.DelaySeconds,
		AnimationEffect:  req.AnimationEffect,
		ShowLastUpdated:  req.ShowLastUpdated,
		IsActive:         *req.IsActive,
	}
}
