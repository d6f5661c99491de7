// Package cache provides Redis-backed caches for read-heavy lookups.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/ngkart/backend/internal/application/recommendation"
	"github.com/ngkart/backend/internal/infrastructure/config"
)

var _ recommendation.Cache = (*RedisRecommendationCache)(nil)

// RedisRecommendationCache stores ranked product lists keyed by the
// normalized query string.
type RedisRecommendationCache struct {
	client     *redis.Client
	ownsClient bool
	logger     *zap.Logger
}

// NewRedisRecommendationCache creates a cache with its own Redis client
func NewRedisRecommendationCache(cfg *config.RedisConfig, logger *zap.Logger) (*RedisRecommendationCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRecommendationCache{client: client, ownsClient: true, logger: logger}, nil
}

// NewRedisRecommendationCacheWithClient creates a cache over a shared client.
// The caller retains ownership of the client.
func NewRedisRecommendationCacheWithClient(client *redis.Client, logger *zap.Logger) *RedisRecommendationCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisRecommendationCache{client: client, ownsClient: false, logger: logger}
}

func cacheKey(query string) string {
	return "recommendation:" + strings.ToLower(strings.TrimSpace(query))
}

// Get returns the cached ranking for a query, reporting a miss when absent
func (c *RedisRecommendationCache) Get(ctx context.Context, query string) ([]uuid.UUID, bool, error) {
	key := cacheKey(query)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get recommendations from cache: %w", err)
	}

	var products []uuid.UUID
	if err := json.Unmarshal(data, &products); err != nil {
		c.logger.Warn("Dropping corrupted recommendation cache entry",
			zap.String("key", key),
			zap.Error(err))
		_ = c.client.Del(ctx, key)
		return nil, false, nil
	}

	return products, true, nil
}

// Set stores the ranking for a query with the given TTL
func (c *RedisRecommendationCache) Set(ctx context.Context, query string, products []uuid.UUID, ttl time.Duration) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey(query), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set recommendations in cache: %w", err)
	}
	return nil
}

// Close releases the Redis client when this cache owns it
func (c *RedisRecommendationCache) Close() error {
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}
