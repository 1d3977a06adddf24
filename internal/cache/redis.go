package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const scrapePrefix = "scrape:"

// Cache handles Redis operations. A nil *Cache is valid and disables
// caching and rate limiting, for deployments without Redis.
type Cache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCache creates a new cache instance
func NewCache(redisURL string, logger *zap.Logger) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Cache{
		client: client,
		logger: logger,
	}, nil
}

// Close closes the Redis connection
func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

// Enabled reports whether a Redis backend is attached.
func (c *Cache) Enabled() bool {
	return c != nil
}

// GetScrape retrieves a cached scraper response. A miss returns nil, nil.
func (c *Cache) GetScrape(ctx context.Context, key string) ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	data, err := c.client.Get(ctx, scrapePrefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get scraper response from cache", zap.String("key", key), zap.Error(err))
		return nil, err
	}
	return data, nil
}

// SetScrape stores a scraper response with a TTL. Failures are logged and
// otherwise ignored; the cache is an optimization, not a dependency.
func (c *Cache) SetScrape(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if c == nil {
		return
	}
	if err := c.client.Set(ctx, scrapePrefix+key, payload, ttl).Err(); err != nil {
		c.logger.Error("Failed to cache scraper response", zap.String("key", key), zap.Error(err))
	}
}

// PurgeScrapes removes every cached scraper response and returns how many
// keys were dropped.
func (c *Cache) PurgeScrapes(ctx context.Context) (int64, error) {
	if c == nil {
		return 0, nil
	}

	var purged int64
	iter := c.client.Scan(ctx, 0, scrapePrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.logger.Error("Failed to delete cached scraper response", zap.String("key", iter.Val()), zap.Error(err))
			return purged, err
		}
		purged++
	}
	if err := iter.Err(); err != nil {
		c.logger.Error("Failed to scan scraper cache", zap.Error(err))
		return purged, err
	}
	return purged, nil
}

// CheckRateLimit checks if the caller has exceeded its request budget for
// the window. With no Redis backend the limit is never exceeded.
func (c *Cache) CheckRateLimit(ctx context.Context, callerID string, limit int, window time.Duration) (bool, error) {
	if c == nil {
		return false, nil
	}

	key := "rate_limit:" + callerID
	count, err := c.client.Incr(ctx, key).Result()
	if err != nil {
		c.logger.Error("Failed to increment rate limit counter", zap.String("caller", callerID), zap.Error(err))
		return false, err
	}

	// Set expiration on first request
	if count == 1 {
		if err := c.client.Expire(ctx, key, window).Err(); err != nil {
			c.logger.Error("Failed to set rate limit expiration", zap.Error(err))
		}
	}

	return count > int64(limit), nil
}
