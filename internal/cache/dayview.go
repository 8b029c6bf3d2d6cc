package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// DayViewCache caches the rendered day-view JSON per date in Redis. All
// methods are no-ops on a nil receiver, so the cache can stay unconfigured.
type DayViewCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewDayView(rdb *redis.Client, ttl time.Duration) *DayViewCache {
	if rdb == nil {
		return nil
	}
	return &DayViewCache{rdb: rdb, ttl: ttl}
}

func dayViewKey(date string) string {
	return "classboard:dayview:" + date
}

// Get returns the cached payload for a date, if present.
func (c *DayViewCache) Get(ctx context.Context, date string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, dayViewKey(date)).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores the payload for a date. Failures are ignored; the cache is
// best-effort.
func (c *DayViewCache) Set(ctx context.Context, date string, payload []byte) {
	if c == nil {
		return
	}
	c.rdb.Set(ctx, dayViewKey(date), payload, c.ttl)
}

// Invalidate drops the cached payload for a date after a write.
func (c *DayViewCache) Invalidate(ctx context.Context, date string) {
	if c == nil {
		return
	}
	c.rdb.Del(ctx, dayViewKey(date))
}
