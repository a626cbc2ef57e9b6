package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMemoryCacheRecordsHitsAndMisses(t *testing.T) {
	ensureCacheMetrics()

	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	hits := testutil.ToFloat64(cacheRequests.WithLabelValues("memory", "hit"))
	misses := testutil.ToFloat64(cacheRequests.WithLabelValues("memory", "miss"))

	if err := mc.Set(ctx, "price:BTC", "100000", 0); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	var got string
	if err := mc.Get(ctx, "price:BTC", &got); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != "100000" {
		t.Fatalf("got %q, want 100000", got)
	}
	if err := mc.Get(ctx, "price:ETH", &got); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}

	if d := testutil.ToFloat64(cacheRequests.WithLabelValues("memory", "hit")) - hits; d != 1 {
		t.Fatalf("hit counter delta = %v, want 1", d)
	}
	if d := testutil.ToFloat64(cacheRequests.WithLabelValues("memory", "miss")) - misses; d != 1 {
		t.Fatalf("miss counter delta = %v, want 1", d)
	}
}
