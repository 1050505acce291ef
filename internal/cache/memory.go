package cache

import (
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL applies when neither the cache nor the caller sets one
const DefaultTTL = time.Hour

// MemoryCache keeps recent generations in process. Values are copied on the
// way in and out so a caller cannot change a cached entry in place.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache whose expired entries are swept at
// twice the TTL.
func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &MemoryCache{
		cache: gocache.New(defaultTTL, 2*defaultTTL),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	val, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	data, ok := val.([]byte)
	if !ok {
		return nil, false
	}
	return slices.Clone(data), true
}

// Set stores a value. A zero ttl uses the cache default.
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, slices.Clone(value), ttl)
	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear removes all values from the cache
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}

// Len reports the number of entries, including expired ones not yet swept
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}
