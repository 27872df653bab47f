package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/universocelular/unicel-server-web/internal/model"
)

func countingLoader(calls *int, snap *Snapshot, err error) Loader {
	return func(ctx context.Context) (*Snapshot, error) {
		*calls++
		if err != nil {
			return nil, err
		}
		return snap, nil
	}
}

func TestCatalogCache_ReadThrough(t *testing.T) {
	calls := 0
	snap := &Snapshot{Brands: []model.Brand{{ID: "b1", Name: "Samsung"}}}
	c := NewCatalogCache(countingLoader(&calls, snap, nil))

	first, err := c.Snapshot(context.Background())
	require.NoError(t, err)
	second, err := c.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, calls, "second read must hit the cache")
}

func TestCatalogCache_InvalidateForcesReload(t *testing.T) {
	calls := 0
	c := NewCatalogCache(countingLoader(&calls, &Snapshot{}, nil))

	_, err := c.Snapshot(context.Background())
	require.NoError(t, err)
	c.Invalidate()
	_, err = c.Snapshot(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestCatalogCache_RefreshAlwaysLoads(t *testing.T) {
	calls := 0
	c := NewCatalogCache(countingLoader(&calls, &Snapshot{}, nil))

	_, err := c.Snapshot(context.Background())
	require.NoError(t, err)
	_, err = c.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestCatalogCache_LoaderErrorSurfaces(t *testing.T) {
	calls := 0
	c := NewCatalogCache(countingLoader(&calls, nil, errors.New("db down")))

	_, err := c.Snapshot(context.Background())
	assert.Error(t, err)
}

func TestSnapshot_Lookups(t *testing.T) {
	snap := &Snapshot{
		Brands:   []model.Brand{{ID: "b1", Name: "Samsung"}},
		Models:   []model.DeviceModel{{ID: "m1", Name: "Galaxy S24", BrandID: "b1"}},
		Services: []model.Service{{ID: "svcA", Name: "Liberación"}},
	}

	require.NotNil(t, snap.BrandByID("b1"))
	assert.Equal(t, "Samsung", snap.BrandByID("b1").Name)
	assert.Nil(t, snap.BrandByID("nope"))
	require.NotNil(t, snap.ModelByID("m1"))
	assert.Nil(t, snap.ModelByID("nope"))
	require.NotNil(t, snap.ServiceByID("svcA"))
	assert.Nil(t, snap.ServiceByID("nope"))
}
