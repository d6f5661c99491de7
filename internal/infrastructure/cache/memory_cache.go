package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ngkart/backend/internal/application/recommendation"
)

var _ recommendation.Cache = (*MemoryRecommendationCache)(nil)

type memoryEntry struct {
	products  []uuid.UUID
	expiresAt time.Time
}

// MemoryRecommendationCache is an in-process cache for development and
// tests, where a Redis instance is not worth running.
type MemoryRecommendationCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryRecommendationCache creates an empty in-process cache
func NewMemoryRecommendationCache() *MemoryRecommendationCache {
	return &MemoryRecommendationCache{entries: make(map[string]memoryEntry)}
}

// Get returns the cached ranking for a query, expiring stale entries lazily
func (c *MemoryRecommendationCache) Get(_ context.Context, query string) ([]uuid.UUID, bool, error) {
	key := cacheKey(query)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}

	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}

	products := make([]uuid.UUID, len(entry.products))
	copy(products, entry.products)
	return products, true, nil
}

// Set stores the ranking for a query. A zero TTL means no expiry.
func (c *MemoryRecommendationCache) Set(_ context.Context, query string, products []uuid.UUID, ttl time.Duration) error {
	entry := memoryEntry{products: make([]uuid.UUID, len(products))}
	copy(entry.products, products)
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[cacheKey(query)] = entry
	c.mu.Unlock()
	return nil
}
