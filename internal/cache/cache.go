// Package cache provides the two caches of the board service: an in-process
// TTL cache for lecture lookups and an optional Redis cache for the public
// day-view payload.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// TTLCache is an in-process cache with per-entry expiration.
type TTLCache struct {
	cache *gocache.Cache
}

func NewTTL(defaultExpiration, cleanupInterval time.Duration) *TTLCache {
	return &TTLCache{
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}
}

func (c *TTLCache) Get(key string) (interface{}, bool) {
	return c.cache.Get(key)
}

func (c *TTLCache) Set(key string, value interface{}, duration time.Duration) {
	c.cache.Set(key, value, duration)
}

func (c *TTLCache) Delete(key string) {
	c.cache.Delete(key)
}

func (c *TTLCache) Flush() {
	c.cache.Flush()
}
