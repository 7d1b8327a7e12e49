package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs only against a live server, e.g. REDIS_ADDR=localhost:6379.
func TestRedisCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	cache := NewRedisCache(addr)
	t.Cleanup(func() { _ = cache.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, cache.Ping(ctx))

	key := "test:" + uuid.NewString()
	_, ok := cache.Get(ctx, key)
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, key, "value", time.Minute))
	got, ok := cache.Get(ctx, key)
	assert.True(t, ok)
	assert.Equal(t, "value", got)
}

func TestRedisCache_PingUnreachable(t *testing.T) {
	cache := NewRedisCache("127.0.0.1:1")
	t.Cleanup(func() { _ = cache.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	assert.Error(t, cache.Ping(ctx))
}
