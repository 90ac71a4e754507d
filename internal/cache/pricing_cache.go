package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"pricing-backend/internal/events"
	"pricing-backend/internal/repositories"
)

const keyPrefix = "pricing:rows:"

// PricingCache is a Redis-backed read cache for shaped row sets. It never
// receives direct invalidation calls from editors: it subscribes to
// pricing.changed events and clears the affected table's entries itself.
type PricingCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewPricingCache(rdb *redis.Client, ttl time.Duration, logger *zap.Logger) *PricingCache {
	return &PricingCache{rdb: rdb, ttl: ttl, logger: logger}
}

func cacheKey(tableKey string, includeInactive bool) string {
	if includeInactive {
		return keyPrefix + tableKey + ":all"
	}
	return keyPrefix + tableKey + ":active"
}

// Get returns the cached row set for a table, if present. Cache errors are
// treated as misses.
func (c *PricingCache) Get(ctx context.Context, tableKey string, includeInactive bool) ([]repositories.Row, bool) {
	data, err := c.rdb.Get(ctx, cacheKey(tableKey, includeInactive)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("pricing cache read failed", zap.String("table_key", tableKey), zap.Error(err))
		}
		return nil, false
	}

	var rows []repositories.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		c.logger.Warn("pricing cache entry corrupt", zap.String("table_key", tableKey), zap.Error(err))
		return nil, false
	}
	return rows, true
}

// Set stores a row set with the configured TTL. Failures are logged and
// otherwise ignored; the cache is an optimization, not a source of truth.
func (c *PricingCache) Set(ctx context.Context, tableKey string, includeInactive bool, rows []repositories.Row) {
	data, err := json.Marshal(rows)
	if err != nil {
		c.logger.Warn("pricing cache encode failed", zap.String("table_key", tableKey), zap.Error(err))
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(tableKey, includeInactive), data, c.ttl).Err(); err != nil {
		c.logger.Warn("pricing cache write failed", zap.String("table_key", tableKey), zap.Error(err))
	}
}

// Invalidate drops both variants of a table's cached row set.
func (c *PricingCache) Invalidate(ctx context.Context, tableKey string) {
	keys := []string{
		cacheKey(tableKey, false),
		cacheKey(tableKey, true),
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("pricing cache invalidation failed", zap.String("table_key", tableKey), zap.Error(err))
	}
}

// ClearAll drops every cached pricing row set.
func (c *PricingCache) ClearAll(ctx context.Context) {
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.rdb.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("pricing cache clear failed", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("pricing cache scan failed", zap.Error(err))
	}
}

// ListenInvalidation subscribes to pricing change events and invalidates the
// affected table on each one. The returned stop function unsubscribes and
// waits for the listener goroutine to exit.
func (c *PricingCache) ListenInvalidation(sub events.Subscriber) (func(), error) {
	ch, cancel, err := sub.Subscribe(events.TopicPricingChanged)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for payload := range ch {
			var changed events.Changed
			if err := json.Unmarshal(payload, &changed); err != nil {
				c.logger.Warn("dropping malformed pricing change event", zap.Error(err))
				continue
			}
			ctx, cancelCtx := context.WithTimeout(context.Background(), 5*time.Second)
			c.Invalidate(ctx, changed.TableKey)
			cancelCtx()
		}
	}()

	stop := func() {
		cancel()
		<-done
	}
	return stop, nil
}
