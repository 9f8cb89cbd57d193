package session

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func TestRedisStorage_SetAndGet(t *testing.T) {
	storage := NewRedisStorage(setupTestRedis(t), testLogger())
	ctx := context.Background()

	require.NoError(t, storage.SetMode(ctx, 123, ModeAwaitingCurrency))

	mode, err := storage.GetMode(ctx, 123)
	require.NoError(t, err)
	assert.Equal(t, ModeAwaitingCurrency, mode)
}

func TestRedisStorage_GetNotFound(t *testing.T) {
	storage := NewRedisStorage(setupTestRedis(t), testLogger())

	_, err := storage.GetMode(context.Background(), 999)
	assert.ErrorIs(t, err, ErrModeNotFound)
}

func TestRedisStorage_ClearMode(t *testing.T) {
	storage := NewRedisStorage(setupTestRedis(t), testLogger())
	ctx := context.Background()

	require.NoError(t, storage.SetMode(ctx, 456, ModeAwaitingCurrency))
	require.NoError(t, storage.ClearMode(ctx, 456))

	_, err := storage.GetMode(ctx, 456)
	assert.ErrorIs(t, err, ErrModeNotFound)
}
