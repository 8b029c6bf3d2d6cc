package cache

import (
	"context"
	"testing"
	"time"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTL(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("empty cache should miss")
	}

	c.Set("k", 42, time.Minute)
	v, found := c.Get("k")
	if !found || v.(int) != 42 {
		t.Errorf("got %v (found=%v)", v, found)
	}

	c.Delete("k")
	if _, found := c.Get("k"); found {
		t.Error("deleted key should miss")
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTL(time.Minute, time.Minute)
	c.Set("k", "v", 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)
	if _, found := c.Get("k"); found {
		t.Error("expired key should miss")
	}
}

func TestTTLCacheFlush(t *testing.T) {
	c := NewTTL(time.Minute, time.Minute)
	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)
	c.Flush()
	if _, found := c.Get("a"); found {
		t.Error("flushed cache should miss")
	}
}

func TestDayViewCacheNilReceiver(t *testing.T) {
	var c *DayViewCache
	ctx := context.Background()

	// All operations are safe no-ops when the cache is unconfigured.
	if _, found := c.Get(ctx, "2026-04-15"); found {
		t.Error("nil cache must miss")
	}
	c.Set(ctx, "2026-04-15", []byte("{}"))
	c.Invalidate(ctx, "2026-04-15")

	if NewDayView(nil, time.Minute) != nil {
		t.Error("NewDayView(nil) must return nil")
	}
}
