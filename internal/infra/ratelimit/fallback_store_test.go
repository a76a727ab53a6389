package ratelimit

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ calls int }

func (s *failingStore) Allow(context.Context, string, time.Time) (Result, error) {
	s.calls++

	return Result{}, errors.New("connection refused")
}

func TestFallbackStore_UsesFallbackOnError(t *testing.T) {
	primary := &failingStore{}
	store := NewFallbackStore(primary, NewMemoryStore(1, time.Minute), slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	result, err := store.Allow(ctx, "ip_x", t0)
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	result, err = store.Allow(ctx, "ip_x", t0.Add(time.Second))
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, 2, primary.calls)
}

func TestRedisStore_Integration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	key := "test_" + time.Now().Format(time.RFC3339Nano)
	store := NewRedisStore(client, 3, time.Minute)

	for i := 0; i < 3; i++ {
		result, err := store.Allow(ctx, key, time.Now())
		require.NoError(t, err)
		require.True(t, result.Allowed)
	}

	result, err := store.Allow(ctx, key, time.Now())
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.WithinDuration(t, time.Now().Add(time.Minute), result.ResetAt, 5*time.Second)

	require.NoError(t, client.Del(ctx, redisKeyPrefix+key).Err())
}

func TestRedisStore_RollingWindowIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	ctx := context.Background()
	key := "test_rolling_" + time.Now().Format(time.RFC3339Nano)
	store := NewRedisStore(client, 3, time.Minute)
	start := time.Now()

	result, err := store.Allow(ctx, key, start)
	require.NoError(t, err)
	require.True(t, result.Allowed)
	for i := 0; i < 2; i++ {
		result, err = store.Allow(ctx, key, start.Add(59*time.Second))
		require.NoError(t, err)
		require.True(t, result.Allowed)
	}

	// Only the first request has left the window.
	result, err = store.Allow(ctx, key, start.Add(time.Minute))
	require.NoError(t, err)
	assert.True(t, result.Allowed)
	result, err = store.Allow(ctx, key, start.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, result.Allowed)

	require.NoError(t, client.Del(ctx, redisKeyPrefix+key).Err())
}
