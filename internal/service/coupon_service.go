package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/universocelular/unicel-server-web/internal/model"
	"github.com/universocelular/unicel-server-web/internal/pricing"
)

// CouponRepositoryInterface defines the interface for coupon data access.
type CouponRepositoryInterface interface {
	Insert(ctx context.Context, coupon *model.Coupon) error
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)
	List(ctx context.Context) ([]model.Coupon, error)
	Update(ctx context.Context, coupon *model.Coupon) error
	Delete(ctx context.Context, id string) error
}

// CouponService provides business logic for coupon management and
// validation.
type CouponService struct {
	couponRepo CouponRepositoryInterface
}

// NewCouponService creates a new CouponService.
func NewCouponService(couponRepo CouponRepositoryInterface) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

// Create creates a new coupon from the request. The code is canonicalized
// upper-case before storage.
// Returns ErrCouponExists if a coupon with the same code already exists.
func (s *CouponService) Create(ctx context.Context, req *model.CreateCouponRequest) (*model.Coupon, error) {
	if req == nil || req.DiscountPercentage == nil || req.IsActive == nil {
		return nil, ErrInvalidRequest
	}
	coupon := &model.Coupon{
		ID:                 uuid.NewString(),
		Code:               model.CanonicalCode(req.Code),
		DiscountPercentage: *req.DiscountPercentage,
		IsActive:           *req.IsActive,
		BrandID:            req.BrandID,
		ModelID:            req.ModelID,
		ServiceID:          req.ServiceID,
		SubServiceID:       req.SubServiceID,
	}
	if err := s.couponRepo.Insert(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// List returns all coupons.
func (s *CouponService) List(ctx context.Context) ([]model.Coupon, error) {
	return s.couponRepo.List(ctx)
}

// Update replaces a coupon's fields.
// Returns ErrCouponNotFound if the coupon doesn't exist.
func (s *CouponService) Update(ctx context.Context, id string, req *model.CreateCouponRequest) (*model.Coupon, error) {
	if req == nil || req.DiscountPercentage == nil || req.IsActive == nil {
		return nil, ErrInvalidRequest
	}
	coupon := &model.Coupon{
		ID:                 id,
		Code:               model.CanonicalCode(req.Code),
		DiscountPercentage: *req.DiscountPercentage,
		IsActive:           *req.IsActive,
		BrandID:            req.BrandID,
		ModelID:            req.ModelID,
		ServiceID:          req.ServiceID,
		SubServiceID:       req.SubServiceID,
	}
	if err := s.couponRepo.Update(ctx, coupon); err != nil {
		return nil, err
	}
	return coupon, nil
}

// Delete deletes a coupon.
// Returns ErrCouponNotFound if the coupon doesn't exist.
func (s *CouponService) Delete(ctx context.Context, id string) error {
	return s.couponRepo.Delete(ctx, id)
}

// Validate checks a user-entered code against a pricing target. The two
// failure modes are deliberately distinct so the storefront can word them
// differently:
//   - ErrCouponInvalid: the code doesn't exist or the coupon is inactive
//   - ErrCouponNotApplicable: the coupon exists but doesn't cover the target
func (s *CouponService) Validate(ctx context.Context, code string, target pricing.TargetContext) (*model.Coupon, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, model.CanonicalCode(code))
	if err != nil {
		return nil, fmt.Errorf("get coupon: %w", err)
	}
	if coupon == nil || !coupon.IsActive {
		return nil, ErrCouponInvalid
	}
	if !pricing.CouponApplies(coupon, target) {
		return nil, ErrCouponNotApplicable
	}
	return coupon, nil
}
