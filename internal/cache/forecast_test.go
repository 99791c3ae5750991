package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/andresuchdata/popar-tracker/internal/config"
	"github.com/andresuchdata/popar-tracker/internal/domain"
)

func TestForecastKey(t *testing.T) {
	at := time.Date(2024, 6, 14, 9, 0, 0, 0, time.UTC)
	a := ForecastKey(domain.ForecastRequest{LookbackMonths: 12}, at)
	b := ForecastKey(domain.ForecastRequest{LookbackMonths: 12, IncludeHistorical: true}, at)
	c := ForecastKey(domain.ForecastRequest{LookbackMonths: 24}, at)

	if !strings.HasPrefix(a, forecastKeyPrefix) {
		t.Errorf("key %q lacks prefix %q", a, forecastKeyPrefix)
	}
	if a == b || a == c || b == c {
		t.Errorf("distinct requests share a key: %s %s %s", a, b, c)
	}
	if a != ForecastKey(domain.ForecastRequest{LookbackMonths: 12}, at.Add(10*24*time.Hour)) {
		t.Error("key changed within the same month")
	}
}

func TestForecastKeyRollsOverAtMonthBoundary(t *testing.T) {
	req := domain.ForecastRequest{LookbackMonths: 12}
	lastMinute := time.Date(2024, 6, 30, 23, 59, 0, 0, time.UTC)
	nextMonth := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	if ForecastKey(req, lastMinute) == ForecastKey(req, nextMonth) {
		t.Error("June and July requests share a cache key")
	}
}

func TestDisabledCacheNeverHits(t *testing.T) {
	c, err := NewForecastCache(config.CacheConfig{Enabled: false})
	if err != nil {
		t.Fatalf("NewForecastCache() error = %v", err)
	}

	ctx := context.Background()
	req := domain.ForecastRequest{LookbackMonths: 12}
	if err := c.Set(ctx, req, &domain.ForecastResponse{Success: true}); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok, err := c.Get(ctx, req); ok || err != nil {
		t.Errorf("Get() = hit %v, err %v; want miss", ok, err)
	}
	if err := c.InvalidateAll(ctx); err != nil {
		t.Errorf("InvalidateAll() error = %v", err)
	}
}

func TestBuildRedisOptions(t *testing.T) {
	opts, err := buildRedisOptions(config.CacheConfig{RedisHost: "cache.internal", RedisDB: 2})
	if err != nil {
		t.Fatalf("buildRedisOptions() error = %v", err)
	}
	if opts.Addr != "cache.internal:6379" || opts.DB != 2 {
		t.Errorf("opts = %s db %d, want cache.internal:6379 db 2", opts.Addr, opts.DB)
	}

	opts, err = buildRedisOptions(config.CacheConfig{RedisURL: "redis://:secret@10.0.0.5:6380/1"})
	if err != nil {
		t.Fatalf("buildRedisOptions(url) error = %v", err)
	}
	if opts.Addr != "10.0.0.5:6380" || opts.Password != "secret" || opts.DB != 1 {
		t.Errorf("opts = %+v, want parsed url", opts)
	}

	if _, err := buildRedisOptions(config.CacheConfig{RedisURL: "://nope"}); err == nil {
		t.Error("buildRedisOptions accepted a malformed url")
	}
}
