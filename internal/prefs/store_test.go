package prefs

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStore_LoadMissingFileStartsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "preferences.json"), testLogger())

	require.NoError(t, store.Load())
	assert.Equal(t, 0, store.Len())
}

func TestStore_GetDefaultsToUSD(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "preferences.json"), testLogger())
	require.NoError(t, store.Load())

	assert.Equal(t, "USD", store.Get(12345))
}

func TestStore_SetPersistsFullSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")

	store := NewStore(path, testLogger())
	require.NoError(t, store.Load())

	require.NoError(t, store.Set(1, "EUR"))
	require.NoError(t, store.Set(2, "GBP"))

	reloaded := NewStore(path, testLogger())
	require.NoError(t, reloaded.Load())

	assert.Equal(t, "EUR", reloaded.Get(1))
	assert.Equal(t, "GBP", reloaded.Get(2))
	assert.Equal(t, 2, reloaded.Len())
}

func TestStore_SetOverwritesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")

	store := NewStore(path, testLogger())
	require.NoError(t, store.Set(1, "EUR"))
	require.NoError(t, store.Set(1, "JPY"))

	assert.Equal(t, "JPY", store.Get(1))

	reloaded := NewStore(path, testLogger())
	require.NoError(t, reloaded.Load())
	assert.Equal(t, "JPY", reloaded.Get(1))
}

func TestStore_LoadRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewStore(path, testLogger())
	assert.Error(t, store.Load())
}

func TestStore_SetKeepsMemoryOnWriteFailure(t *testing.T) {
	// point the store at a path whose parent does not exist
	store := NewStore(filepath.Join(t.TempDir(), "missing", "preferences.json"), testLogger())

	err := store.Set(1, "EUR")
	assert.Error(t, err)
	assert.Equal(t, "EUR", store.Get(1), "in-memory preference survives a failed save")
}

func TestStore_ReloadPicksUpExternalChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.json")

	store := NewStore(path, testLogger())
	require.NoError(t, store.Set(1, "EUR"))

	require.NoError(t, os.WriteFile(path, []byte(`{"1":"CHF"}`), 0o644))
	require.NoError(t, store.Reload())

	assert.Equal(t, "CHF", store.Get(1))
}
