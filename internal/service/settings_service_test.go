package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/universocelular/unicel-server-web/internal/model"
)

// mockSettingsRepository is a mock implementation of
// SettingsRepositoryInterface.
type mockSettingsRepository struct {
	getFn  func(ctx context.Context) (*model.Settings, error)
	saveFn func(ctx context.Context, settings *model.Settings) error
}

func (m *mockSettingsRepository) Get(ctx context.Context) (*model.Settings, error) {
	if m.getFn != nil {
		return m.getFn(ctx)
	}
	return nil, nil
}

func (m *mockSettingsRepository) Save(ctx context.Context, settings *model.Settings) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, settings)
	}
	return nil
}

func TestSettingsService_Get_DefaultsWhenMissing(t *testing.T) {
	svc := NewSettingsService(&mockSettingsRepository{})

	settings, err := svc.Get(context.Background())

	require.NoError(t, err)
	assert.False(t, settings.IsDiscountModeActive)
	assert.False(t, settings.IsFreeModeActive)
	assert.Equal(t, float64(model.DefaultUSDToARSRate), settings.USDToARSRate)
	assert.Empty(t, settings.Discounts)
}

func TestSettingsService_UpdateDiscountMode(t *testing.T) {
	var saved *model.Settings
	repo := &mockSettingsRepository{
		saveFn: func(ctx context.Context, settings *model.Settings) error {
			saved = settings
			return nil
		},
	}

	svc := NewSettingsService(repo)
	settings, err := svc.UpdateDiscountMode(context.Background(), &model.UpdateDiscountModeRequest{
		IsActive: boolPtr(true),
		Discounts: []model.DiscountRuleInput{
			{IsActive: boolPtr(true), DiscountPercentage: floatPtr(20), BrandID: "brand-apple"},
		},
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.True(t, settings.IsDiscountModeActive)
	require.Len(t, settings.Discounts, 1)
	assert.NotEmpty(t, settings.Discounts[0].ID)
	assert.Equal(t, 20.0, settings.Discounts[0].DiscountPercentage)
	assert.Equal(t, "brand-apple", settings.Discounts[0].BrandID)
}

func TestSettingsService_UpdateDiscountMode_PreservesRate(t *testing.T) {
	repo := &mockSettingsRepository{
		getFn: func(ctx context.Context) (*model.Settings, error) {
			return &model.Settings{USDToARSRate: 1500}, nil
		},
	}

	svc := NewSettingsService(repo)
	settings, err := svc.UpdateDiscountMode(context.Background(), &model.UpdateDiscountModeRequest{
		IsActive: boolPtr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, 1500.0, settings.USDToARSRate)
}

func TestSettingsService_UpdateFreeMode(t *testing.T) {
	repo := &mockSettingsRepository{}

	svc := NewSettingsService(repo)
	settings, err := svc.UpdateFreeMode(context.Background(), &model.UpdateFreeModeRequest{
		IsActive: boolPtr(true),
		FreeServices: []model.FreeServiceInput{
			{ModelID: "model-1", ServiceID: "svc-1", SubServiceID: "sub-1"},
		},
	})

	require.NoError(t, err)
	assert.True(t, settings.IsFreeModeActive)
	require.Len(t, settings.FreeServices, 1)
	assert.NotEmpty(t, settings.FreeServices[0].ID)
	assert.Equal(t, "sub-1", settings.FreeServices[0].SubServiceID)
}

func TestSettingsService_UpdateRate(t *testing.T) {
	svc := NewSettingsService(&mockSettingsRepository{})

	settings, err := svc.UpdateRate(context.Background(), &model.UpdateRateRequest{
		USDToARSRate: floatPtr(1420),
	})

	require.NoError(t, err)
	assert.Equal(t, 1420.0, settings.USDToARSRate)
}

func TestSettingsService_UpdateRate_Invalid(t *testing.T) {
	svc := NewSettingsService(&mockSettingsRepository{})

	_, err := svc.UpdateRate(context.Background(), &model.UpdateRateRequest{
		USDToARSRate: floatPtr(0),
	})
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, err = svc.UpdateRate(context.Background(), nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
