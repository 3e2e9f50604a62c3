package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/airsight/airsight/internal/cache"
)

// Cached serves observations from a cache and falls back to the wrapped
// source on a miss. Cache errors are logged and never surface to callers.
type Cached struct {
	next  Source
	store cache.Cache
	ttl   time.Duration
	log   *zap.Logger
}

// NewCached wraps next with store.
func NewCached(next Source, store cache.Cache, ttl time.Duration, log *zap.Logger) *Cached {
	return &Cached{next: next, store: store, ttl: ttl, log: log}
}

// Current implements Source.
func (c *Cached) Current(ctx context.Context, at Coordinates) (Observation, error) {
	var obs Observation
	key := cacheKey("current", at)
	if c.load(ctx, key, &obs) {
		return obs, nil
	}
	obs, err := c.next.Current(ctx, at)
	if err != nil {
		return Observation{}, err
	}
	c.save(ctx, key, obs)
	return obs, nil
}

// Forecast implements Source.
func (c *Cached) Forecast(ctx context.Context, at Coordinates) ([]Observation, error) {
	var series []Observation
	key := cacheKey("forecast", at)
	if c.load(ctx, key, &series) {
		return series, nil
	}
	series, err := c.next.Forecast(ctx, at)
	if err != nil {
		return nil, err
	}
	c.save(ctx, key, series)
	return series, nil
}

func (c *Cached) load(ctx context.Context, key string, dst any) bool {
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			c.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Warn("cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *Cached) save(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		c.log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		c.log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// cacheKey rounds to four decimals (~11 m) so nearby requests share entries.
func cacheKey(kind string, at Coordinates) string {
	return fmt.Sprintf("owm:%s:%.4f:%.4f", kind, at.Lat, at.Lon)
}
