package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/andresuchdata/popar-tracker/internal/config"
	"github.com/andresuchdata/popar-tracker/internal/domain"
	"github.com/andresuchdata/popar-tracker/internal/forecast"
	"github.com/redis/go-redis/v9"
)

const forecastKeyPrefix = "forecast:"

// ForecastCache stores assembled forecast responses keyed by request.
type ForecastCache interface {
	Get(ctx context.Context, req domain.ForecastRequest) (*domain.ForecastResponse, bool, error)
	Set(ctx context.Context, req domain.ForecastRequest, resp *domain.ForecastResponse) error
	InvalidateAll(ctx context.Context) error
}

type redisForecastCache struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

type noopForecastCache struct{}

// NewForecastCache connects to Redis when caching is enabled and returns a
// cache that never hits otherwise.
func NewForecastCache(cfg config.CacheConfig) (ForecastCache, error) {
	if !cfg.Enabled {
		return &noopForecastCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisForecastCache{
		client: client,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func NewNoopForecastCache() ForecastCache {
	return &noopForecastCache{}
}

func (c *redisForecastCache) Get(ctx context.Context, req domain.ForecastRequest) (*domain.ForecastResponse, bool, error) {
	payload, err := c.client.Get(ctx, ForecastKey(req, c.now())).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var resp domain.ForecastResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return nil, false, fmt.Errorf("decode forecast cache: %w", err)
	}

	return &resp, true, nil
}

func (c *redisForecastCache) Set(ctx context.Context, req domain.ForecastRequest, resp *domain.ForecastResponse) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("encode forecast cache: %w", err)
	}

	if err := c.client.Set(ctx, ForecastKey(req, c.now()), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisForecastCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, forecastKeyPrefix, scanBatchSize)
}

func (n *noopForecastCache) Get(ctx context.Context, req domain.ForecastRequest) (*domain.ForecastResponse, bool, error) {
	return nil, false, nil
}

func (n *noopForecastCache) Set(ctx context.Context, req domain.ForecastRequest, resp *domain.ForecastResponse) error {
	return nil
}

func (n *noopForecastCache) InvalidateAll(ctx context.Context) error {
	return nil
}

// ForecastKey derives the Redis key of a request served at the given time.
// The key changes with the calendar month since the history window does.
func ForecastKey(req domain.ForecastRequest, at time.Time) string {
	raw := fmt.Sprintf("month=%s|lookback=%d|historical=%t",
		forecast.PeriodOf(forecast.MonthStart(at)), req.LookbackMonths, req.IncludeHistorical)
	hash := sha1.Sum([]byte(raw))
	return forecastKeyPrefix + hex.EncodeToString(hash[:])
}
