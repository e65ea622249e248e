package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cachedDataset is a loaded dataset with its build time.
type cachedDataset struct {
	dataset *Dataset
	built   time.Time
}

// Cache holds loaded datasets for repeated reconciliations against the same sources.
// A nil *Cache is valid and always loads.
type Cache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]*cachedDataset
	sf      singleflight.Group
}

// NewCache creates a dataset cache. A zero TTL disables caching.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]*cachedDataset),
	}
}

func (c *Cache) expired(e *cachedDataset) bool {
	if c.ttl == 0 {
		return true // No caching
	}
	return time.Since(e.built) > c.ttl
}

// GetOrLoad returns the cached dataset for req, or loads it if absent or expired.
// Concurrent callers for the same request share one load.
func (c *Cache) GetOrLoad(ctx context.Context, loader Loader, req LoadRequest) (*Dataset, error) {
	if c == nil || c.ttl == 0 {
		return loader.Load(ctx, req)
	}

	key := loader.Name() + "|" + req.cacheKey()

	// Fast path: check if entry exists and is fresh
	c.mu.RLock()
	entry, exists := c.entries[key]
	c.mu.RUnlock()
	if exists && !c.expired(entry) {
		return entry.dataset, nil
	}

	// Slow path: load using singleflight to prevent stampedes
	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		entry, exists := c.entries[key]
		c.mu.RUnlock()
		if exists && !c.expired(entry) {
			return entry.dataset, nil
		}

		ds, err := loader.Load(ctx, req)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = &cachedDataset{dataset: ds, built: time.Now()}
		c.mu.Unlock()
		return ds, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Dataset), nil
}

// Invalidate drops every cached dataset.
func (c *Cache) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.entries = make(map[string]*cachedDataset)
	c.mu.Unlock()
}

// Len returns the number of cached datasets, expired ones included.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
