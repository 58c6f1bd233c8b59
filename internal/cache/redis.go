// Package cache keeps the rendered featured-events listing in Redis between writes.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"devevent/internal/domain"
)

const featuredKey = "devevent:featured"

// Config holds the Redis connection settings. An empty Addr disables caching.
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisCache implements domain.FeaturedCache. Listings are stored as one hash
// field per requested limit so a single DEL invalidates all of them.
type RedisCache struct {
	client  *redis.Client
	ttl     time.Duration
	logger  *slog.Logger
	enabled bool
}

// NewRedisCache connects to Redis and pings it. A disabled config yields a cache that always misses.
func NewRedisCache(ctx context.Context, cfg Config, logger *slog.Logger) (*RedisCache, error) {
	if cfg.Addr == "" {
		return &RedisCache{logger: logger}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}

	return newRedisCache(client, cfg.TTL, logger), nil
}

func newRedisCache(client *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisCache {
	return &RedisCache{client: client, ttl: ttl, logger: logger, enabled: true}
}

// Enabled reports whether the cache is backed by Redis.
func (c *RedisCache) Enabled() bool {
	return c.enabled
}

// GetFeatured returns the cached listing for limit. Any Redis failure is treated as a miss.
func (c *RedisCache) GetFeatured(ctx context.Context, limit int) ([]domain.EventCard, bool) {
	if !c.enabled {
		return nil, false
	}
	data, err := c.client.HGet(ctx, featuredKey, strconv.Itoa(limit)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.WarnContext(ctx, "featured cache read failed", "err", err)
		}
		return nil, false
	}
	var cards []domain.EventCard
	if err := json.Unmarshal(data, &cards); err != nil {
		c.logger.WarnContext(ctx, "featured cache entry unreadable", "err", errors.Wrap(err, "failed to unmarshal cached value"))
		return nil, false
	}
	return cards, true
}

// SetFeatured stores the listing for limit and refreshes the TTL.
func (c *RedisCache) SetFeatured(ctx context.Context, limit int, cards []domain.EventCard) {
	if !c.enabled {
		return
	}
	data, err := json.Marshal(cards)
	if err != nil {
		c.logger.WarnContext(ctx, "featured cache write skipped", "err", errors.Wrap(err, "failed to marshal value for caching"))
		return
	}
	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, featuredKey, strconv.Itoa(limit), data)
		if c.ttl > 0 {
			pipe.Expire(ctx, featuredKey, c.ttl)
		}
		return nil
	})
	if err != nil {
		c.logger.WarnContext(ctx, "featured cache write failed", "err", err)
	}
}

// Invalidate drops every cached listing.
func (c *RedisCache) Invalidate(ctx context.Context) {
	if !c.enabled {
		return
	}
	if err := c.client.Del(ctx, featuredKey).Err(); err != nil {
		c.logger.WarnContext(ctx, "featured cache invalidation failed", "err", err)
	}
}

// Close closes the Redis connection.
func (c *RedisCache) Close() error {
	if !c.enabled || c.client == nil {
		return nil
	}
	return c.client.Close()
}
