// Package formcache memoizes forms-plugin field metadata by form id.
package formcache

import (
	"context"
	"sync"
	"time"

	"casa_portal_go/models"
)

// Cache stores form metadata. A TTL of zero keeps entries for the life of the store.
type Cache interface {
	Get(ctx context.Context, formID int) (*models.FormMeta, bool)
	Set(ctx context.Context, formID int, meta *models.FormMeta) error
	Invalidate(ctx context.Context, formID int) error
}

type memoryEntry struct {
	meta     *models.FormMeta
	storedAt time.Time
}

// MemoryCache is a process-local Cache
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[int]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates an in-process cache
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{entries: make(map[int]memoryEntry), ttl: ttl, now: time.Now}
}

func (c *MemoryCache) Get(ctx context.Context, formID int) (*models.FormMeta, bool) {
	c.mu.RLock()
	entry, ok := c.entries[formID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if expired(entry.storedAt, c.ttl, c.now()) {
		c.mu.Lock()
		delete(c.entries, formID)
		c.mu.Unlock()
		return nil, false
	}
	return entry.meta, true
}

func (c *MemoryCache) Set(ctx context.Context, formID int, meta *models.FormMeta) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[formID] = memoryEntry{meta: meta, storedAt: c.now()}
	return nil
}

func (c *MemoryCache) Invalidate(ctx context.Context, formID int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, formID)
	return nil
}

// Len returns the number of stored entries, expired or not
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func expired(storedAt time.Time, ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(storedAt) > ttl
}
