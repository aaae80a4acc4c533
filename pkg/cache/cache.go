// Package cache provides the two-level read cache in front of the catalog
// queries: a bounded in-process LRU with TTL, optionally backed by Redis.
package cache

import (
	"time"

	"github.com/duccv/shop-admin/config"
)

// Cache is an in-process key/value store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was present and unexpired.
	Get(key string) (any, bool)

	// Set stores value under key with the default TTL.
	Set(key string, value any)

	// SetWithTTL stores value under key for ttlSeconds.
	SetWithTTL(key string, value any, ttlSeconds int)

	Delete(key string)

	// Size counts stored entries, including expired ones not yet swept.
	Size() int

	MaxSize() int

	Clear()

	// Stop ends the background sweeper. Safe to call more than once.
	Stop()
}

// CacheData represents the data structure stored in cache.
type CacheData struct {
	Value   any
	Timeout time.Time
}

// NewCache builds the in-process cache described by cfg.
func NewCache(cfg config.CacheConfig) Cache {
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 1000
	}
	return NewLRUCache(capacity, cfg.DefaultTTL)
}
