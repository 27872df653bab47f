// Package cache holds the in-process read-through cache for catalog
// snapshots. Public quote and pop-up traffic reads the snapshot; admin
// mutations invalidate it so the next read refetches.
package cache

import (
	"context"
	"fmt"
	"sync"

	"github.com/universocelular/unicel-server-web/internal/model"
)

// Snapshot is an immutable view of the catalog. Callers must not mutate the
// slices.
type Snapshot struct {
	Brands   []model.Brand
	Models   []model.DeviceModel
	Services []model.Service
}

// BrandByID returns the brand with the given id, or nil.
func (s *Snapshot) BrandByID(id string) *model.Brand {
	for i := range s.Brands {
		if s.Brands[i].ID == id {
			return &s.Brands[i]
		}
	}
	return nil
}

// ModelByID returns the device model with the given id, or nil.
func (s *Snapshot) ModelByID(id string) *model.DeviceModel {
	for i := range s.Models {
		if s.Models[i].ID == id {
			return &s.Models[i]
		}
	}
	return nil
}

// ServiceByID returns the service with the given id, or nil.
func (s *Snapshot) ServiceByID(id string) *model.Service {
	for i := range s.Services {
		if s.Services[i].ID == id {
			return &s.Services[i]
		}
	}
	return nil
}

// Loader fetches a fresh snapshot from the backing store.
type Loader func(ctx context.Context) (*Snapshot, error)

// CatalogCache is a read-through snapshot cache. A Snapshot call loads on
// first use and after Invalidate; Refresh forces a reload.
type CatalogCache struct {
	mu     sync.RWMutex
	loader Loader
	snap   *Snapshot
}

// NewCatalogCache creates a CatalogCache with the given loader.
func NewCatalogCache(loader Loader) *CatalogCache {
	return &CatalogCache{loader: loader}
}

// Snapshot returns the cached snapshot, loading it if none is held.
func (c *CatalogCache) Snapshot(ctx context.Context) (*Snapshot, error) {
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}
	return c.Refresh(ctx)
}

// Refresh reloads the snapshot from the backing store and caches it. A
// failed load keeps the previous snapshot, if any, out of the cache paths:
// the error surfaces to the caller instead of stale silence.
func (c *CatalogCache) Refresh(ctx context.Context) (*Snapshot, error) {
	snap, err := c.loader(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog snapshot: %w", err)
	}
	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()
	return snap, nil
}

// Invalidate drops the cached snapshot so the next read reloads.
func (c *CatalogCache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}
