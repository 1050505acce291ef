package cache

import (
	"errors"
	"time"
)

// LayeredCache fronts the disk cache with memory. Reads fall through to disk
// and promote hits; writes go to both layers.
type LayeredCache struct {
	memory Cache
	disk   Cache
}

// NewLayeredCache creates a new layered cache
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL),
		disk:   NewDiskCache(diskDir, diskTTL),
	}
}

// Get checks memory first, then disk
func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if val, found := c.memory.Get(key); found {
		return val, true
	}

	if val, found := c.disk.Get(key); found {
		_ = c.memory.Set(key, val, 0)
		return val, true
	}

	return nil, false
}

// Set stores a value in both layers. Disk is written first so a failed write
// never leaves an entry that only lives until the process exits.
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := c.disk.Set(key, value, ttl); err != nil {
		return err
	}
	return c.memory.Set(key, value, ttl)
}

// Delete removes a value from both layers
func (c *LayeredCache) Delete(key string) error {
	return errors.Join(c.memory.Delete(key), c.disk.Delete(key))
}

// Clear empties both layers
func (c *LayeredCache) Clear() error {
	return errors.Join(c.memory.Clear(), c.disk.Clear())
}
