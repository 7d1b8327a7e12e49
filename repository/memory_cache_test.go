package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache()

	_, ok := cache.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", "v", 0))
	val, ok := cache.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", val)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewMemoryCache()
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, "k", "v", time.Minute))

	now = now.Add(59 * time.Second)
	_, ok := cache.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Second)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok)
}
