package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devevent/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewRedisCache_Disabled(t *testing.T) {
	ctx := context.Background()
	c, err := NewRedisCache(ctx, Config{}, discardLogger())
	require.NoError(t, err)
	assert.False(t, c.Enabled())

	c.SetFeatured(ctx, 6, []domain.EventCard{{Slug: "go-day"}})
	got, ok := c.GetFeatured(ctx, 6)
	assert.False(t, ok)
	assert.Nil(t, got)
	c.Invalidate(ctx)
	assert.NoError(t, c.Close())
}

func TestRedisCache_UnreachableServerMisses(t *testing.T) {
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := newRedisCache(client, time.Minute, discardLogger())
	t.Cleanup(func() { _ = c.Close() })

	c.SetFeatured(ctx, 6, []domain.EventCard{{Slug: "go-day"}})
	got, ok := c.GetFeatured(ctx, 6)
	assert.False(t, ok)
	assert.Nil(t, got)
	c.Invalidate(ctx)
}

func TestNewRedisCache_PingFailure(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_, err := NewRedisCache(ctx, Config{Addr: "127.0.0.1:1"}, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to Redis")
}
