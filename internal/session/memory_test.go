package session

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMemoryStorage_GetNotFound(t *testing.T) {
	storage := NewMemoryStorage()

	_, err := storage.GetMode(context.Background(), 42)
	assert.ErrorIs(t, err, ErrModeNotFound)
}

func TestMemoryStorage_SetAndGet(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, storage.SetMode(ctx, 42, ModeAwaitingCurrency))

	mode, err := storage.GetMode(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, ModeAwaitingCurrency, mode)
}

func TestMemoryStorage_Clear(t *testing.T) {
	storage := NewMemoryStorage()
	ctx := context.Background()

	require.NoError(t, storage.SetMode(ctx, 7, ModeAwaitingCurrency))
	require.NoError(t, storage.ClearMode(ctx, 7))

	_, err := storage.GetMode(ctx, 7)
	assert.ErrorIs(t, err, ErrModeNotFound)
}
