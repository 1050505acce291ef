package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// Cache defines the interface for caching
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

const keyPrefix = "meetsum:v1:"

// CacheKey derives a stable key from the parts that determine a response,
// e.g. kind, model and prompt.
func CacheKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// New builds the cache described by cfg. A disabled cache never stores anything.
func New(cfg model.CacheConfig) Cache {
	if !cfg.Enabled {
		return NopCache{}
	}
	return NewLayeredCache(cfg.MemoryTTL, cfg.Dir, cfg.DiskTTL)
}

// NopCache stores nothing
type NopCache struct{}

func (NopCache) Get(string) ([]byte, bool)               { return nil, false }
func (NopCache) Set(string, []byte, time.Duration) error { return nil }
func (NopCache) Delete(string) error                     { return nil }
func (NopCache) Clear() error                            { return nil }
