package blogcrm

import (
	"context"
	"sort"
	"sync"
	"time"
)

// CategoryCache keeps the name-ordered category list used by the post
// editor's category picker. Mutations made through this process are merged
// in directly; changes made elsewhere show up once the TTL expires.
type CategoryCache struct {
	mu      sync.RWMutex
	items   []Category
	loaded  bool
	fetched time.Time
	ttl     time.Duration
	source  interface {
		List(ctx context.Context) ([]Category, error)
	}
}

// NewCategoryCache creates a cache that loads from source.
func NewCategoryCache(source *Categories, ttl time.Duration) *CategoryCache {
	return &CategoryCache{source: source, ttl: ttl}
}

func (c *CategoryCache) valid() bool {
	return c.loaded && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next read triggers a fresh load.
func (c *CategoryCache) Invalidate() {
	c.mu.Lock()
	c.items = nil
	c.loaded = false
	c.mu.Unlock()
}

// List returns the cached categories, reloading when stale. The returned
// slice must not be modified.
func (c *CategoryCache) List(ctx context.Context) ([]Category, error) {
	c.mu.RLock()
	if c.valid() {
		items := c.items
		c.mu.RUnlock()
		return items, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.items, nil
	}
	items, err := c.source.List(ctx)
	if err != nil {
		return nil, err
	}
	c.items = items
	c.loaded = true
	c.fetched = time.Now()
	return c.items, nil
}

// Merge inserts or replaces cat, keeping the store's byte-wise name order.
// It is a no-op while the cache is empty.
func (c *CategoryCache) Merge(cat Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return
	}
	items := make([]Category, 0, len(c.items)+1)
	for _, it := range c.items {
		if it.ID != cat.ID {
			items = append(items, it)
		}
	}
	items = append(items, cat)
	sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	c.items = items
}

// Remove drops category id from the cache.
func (c *CategoryCache) Remove(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return
	}
	items := make([]Category, 0, len(c.items))
	for _, it := range c.items {
		if it.ID != id {
			items = append(items, it)
		}
	}
	c.items = items
}
