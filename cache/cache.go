package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/MininduBimsara/arcgis-storymaps-contest-api/config"
	"github.com/MininduBimsara/arcgis-storymaps-contest-api/metrics"
)

// Cache is a thin redis wrapper for public listing payloads. Every method
// degrades gracefully: a redis failure is logged and treated as a miss, never
// surfaced to the caller.
type Cache struct {
	client *redis.Client
	logger *zap.Logger
	ttl    time.Duration
}

// New connects to redis. A nil Cache is returned when redis is unreachable so
// callers can keep serving from the database.
func New(logger *zap.Logger) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unavailable, public listing cache disabled", zap.Error(err))
		return nil
	}

	return &Cache{
		client: client,
		logger: logger,
		ttl:    time.Duration(config.Submissions.PublicCacheTTLSec) * time.Second,
	}
}

// Get unmarshals the cached payload for key into dest, reporting whether it was found
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) bool {
	if c == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		metrics.CacheMisses.Inc()
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		c.logger.Warn("cache payload corrupt", zap.String("key", key), zap.Error(err))
		metrics.CacheMisses.Inc()
		return false
	}
	metrics.CacheHits.Inc()
	return true
}

// Set stores value under key for the configured TTL
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidatePrefix drops every key under prefix. Called after any submission
// mutation so public listings never serve stale review states past the TTL.
func (c *Cache) InvalidatePrefix(ctx context.Context, prefix string) {
	if c == nil {
		return
	}
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Warn("cache invalidate failed", zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("cache scan failed", zap.String("prefix", prefix), zap.Error(err))
	}
}
