package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestDayView(t *testing.T) (*DayViewCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	c := NewDayView(rdb, time.Minute)
	if c == nil {
		t.Fatal("NewDayView returned nil for a live client")
	}
	return c, mr
}

func TestDayViewCacheRoundTrip(t *testing.T) {
	c, _ := newTestDayView(t)
	ctx := context.Background()

	if _, found := c.Get(ctx, "2026-04-15"); found {
		t.Error("cold cache should miss")
	}

	payload := []byte(`{"date":"2026-04-15","items":[]}`)
	c.Set(ctx, "2026-04-15", payload)

	got, found := c.Get(ctx, "2026-04-15")
	if !found {
		t.Fatal("expected hit after Set")
	}
	if string(got) != string(payload) {
		t.Errorf("payload = %s", got)
	}

	// Dates are independent keys.
	if _, found := c.Get(ctx, "2026-04-16"); found {
		t.Error("other date should miss")
	}
}

func TestDayViewCacheInvalidate(t *testing.T) {
	c, _ := newTestDayView(t)
	ctx := context.Background()

	c.Set(ctx, "2026-04-15", []byte("{}"))
	c.Invalidate(ctx, "2026-04-15")

	if _, found := c.Get(ctx, "2026-04-15"); found {
		t.Error("invalidated date should miss")
	}
}

func TestDayViewCacheTTL(t *testing.T) {
	c, mr := newTestDayView(t)
	c.Set(context.Background(), "2026-04-15", []byte("{}"))

	mr.FastForward(2 * time.Minute)
	if _, found := c.Get(context.Background(), "2026-04-15"); found {
		t.Error("entry should expire after the TTL")
	}
}
