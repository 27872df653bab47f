package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/universocelular/unicel-server-web/internal/model"
	"github.com/universocelular/unicel-server-web/internal/pricing"
)

// mockCouponRepository is a mock implementation of CouponRepositoryInterface.
type mockCouponRepository struct {
	insertFn    func(ctx context.Context, coupon *model.Coupon) error
	getByCodeFn func(ctx context.Context, code string) (*model.Coupon, error)
	listFn      func(ctx context.Context) ([]model.Coupon, error)
	updateFn    func(ctx context.Context, coupon *model.Coupon) error
	deleteFn    func(ctx context.Context, id string) error
}

func (m *mockCouponRepository) Insert(ctx context.Context, coupon *model.Coupon) error {
	if m.insertFn != nil {
		return m.insertFn(ctx, coupon)
	}
	return nil
}

func (m *mockCouponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	if m.getByCodeFn != nil {
		return m.getByCodeFn(ctx, code)
	}
	return nil, nil
}

func (m *mockCouponRepository) List(ctx context.Context) ([]model.Coupon, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Coupon{}, nil
}

func (m *mockCouponRepository) Update(ctx context.Context, coupon *model.Coupon) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, coupon)
	}
	return nil
}

func (m *mockCouponRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func floatPtr(f float64) *float64 {
	return &f
}

func boolPtr(b bool) *bool {
	return &b
}

func TestCouponService_Create_Success(t *testing.T) {
	var captured *model.Coupon
	repo := &mockCouponRepository{
		insertFn: func(ctx context.Context, coupon *model.Coupon) error {
			captured = coupon
			return nil
		},
	}

	svc := NewCouponService(repo)
	created, err := svc.Create(context.Background(), &model.CreateCouponRequest{
		Code:               "  save50  ",
		DiscountPercentage: floatPtr(50),
		IsActive:           boolPtr(true),
		BrandID:            "brand-apple",
	})

	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, "SAVE50", captured.Code, "code should be canonicalized")
	assert.Equal(t, 50.0, captured.DiscountPercentage)
	assert.True(t, captured.IsActive)
	assert.Equal(t, "brand-apple", captured.BrandID)
	assert.NotEmpty(t, created.ID)
}

func TestCouponService_Create_NilFields(t *testing.T) {
	svc := NewCouponService(&mockCouponRepository{})

	_, err := svc.Create(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.Create(context.Background(), &model.CreateCouponRequest{
		Code:     "SAVE50",
		IsActive: boolPtr(true),
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCouponService_Create_DuplicateCode(t *testing.T) {
	repo := &mockCouponRepository{
		insertFn: func(ctx context.Context, coupon *model.Coupon) error {
			return ErrCouponExists
		},
	}

	svc := NewCouponService(repo)
	_, err := svc.Create(context.Background(), &model.CreateCouponRequest{
		Code:               "SAVE50",
		DiscountPercentage: floatPtr(50),
		IsActive:           boolPtr(true),
	})
	assert.ErrorIs(t, err, ErrCouponExists)
}

func TestCouponService_Validate_Success(t *testing.T) {
	var lookedUp string
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.Coupon, error) {
			lookedUp = code
			return &model.Coupon{
				ID:                 "c1",
				Code:               "SAVE50",
				DiscountPercentage: 50,
				IsActive:           true,
				BrandID:            "brand-apple",
			}, nil
		},
	}

	svc := NewCouponService(repo)
	coupon, err := svc.Validate(context.Background(), "save50", pricing.TargetContext{
		BrandID:   "brand-apple",
		ModelID:   "model-1",
		ServiceID: "svc-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "SAVE50", lookedUp, "lookup should use the canonical code")
	assert.Equal(t, "SAVE50", coupon.Code)
}

func TestCouponService_Validate_UnknownCode(t *testing.T) {
	svc := NewCouponService(&mockCouponRepository{})

	_, err := svc.Validate(context.Background(), "NOPE", pricing.TargetContext{ModelID: "m1", ServiceID: "s1"})
	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestCouponService_Validate_Inactive(t *testing.T) {
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.Coupon, error) {
			return &model.Coupon{ID: "c1", Code: "SAVE50", DiscountPercentage: 50, IsActive: false}, nil
		},
	}

	svc := NewCouponService(repo)
	_, err := svc.Validate(context.Background(), "SAVE50", pricing.TargetContext{ModelID: "m1", ServiceID: "s1"})
	assert.ErrorIs(t, err, ErrCouponInvalid)
}

func TestCouponService_Validate_NotApplicable(t *testing.T) {
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.Coupon, error) {
			return &model.Coupon{
				ID:                 "c1",
				Code:               "SAVE50",
				DiscountPercentage: 50,
				IsActive:           true,
				ModelID:            "model-other",
			}, nil
		},
	}

	svc := NewCouponService(repo)
	_, err := svc.Validate(context.Background(), "SAVE50", pricing.TargetContext{
		ModelID:   "model-1",
		ServiceID: "svc-1",
	})
	assert.ErrorIs(t, err, ErrCouponNotApplicable)
}

func TestCouponService_Validate_RepositoryError(t *testing.T) {
	repoErr := errors.New("connection refused")
	repo := &mockCouponRepository{
		getByCodeFn: func(ctx context.Context, code string) (*model.Coupon, error) {
			return nil, repoErr
		},
	}

	svc := NewCouponService(repo)
	_, err := svc.Validate(context.Background(), "SAVE50", pricing.TargetContext{ModelID: "m1", ServiceID: "s1"})
	assert.ErrorIs(t, err, repoErr)
}

func TestCouponService_Update_CanonicalizesCode(t *testing.T) {
	var captured *model.Coupon
	repo := &mockCouponRepository{
		updateFn: func(ctx context.Context, coupon *model.Coupon) error {
			captured = coupon
			return nil
		},
	}

	svc := NewCouponService(repo)
	_, err := svc.Update(context.Background(), "c1", &model.CreateCouponRequest{
		Code:               "promo10",
		DiscountPercentage: floatPtr(10),
		IsActive:           boolPtr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, "c1", captured.ID)
	assert.Equal(t, "PROMO10", captured.Code)
	assert.False(t, captured.IsActive)
}
