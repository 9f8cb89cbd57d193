package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/satstack/sats-fiat-bot/pkg/config"
)

func writeConfigFile(t *testing.T, contents string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "test.yaml"), []byte(contents), 0o644))

	t.Chdir(dir)
	t.Setenv("APP_ENV", "test")
}

func TestLoad_AppliesDefaults(t *testing.T) {
	writeConfigFile(t, "bot:\n  token: \"123:abc\"\n")

	cfg, _, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.AppEnv)
	assert.Equal(t, "123:abc", cfg.Bot.Token)
	assert.Equal(t, 10*time.Second, cfg.Bot.Timeout)
	assert.Equal(t, 15*time.Minute, cfg.Rates.CacheTTL)
	assert.Equal(t, "https://api.coingecko.com/api/v3", cfg.Rates.BaseURL)
	assert.Equal(t, "preferences.json", cfg.Prefs.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Port)
}

func TestLoad_MissingTokenFails(t *testing.T) {
	writeConfigFile(t, "bot:\n  token: \"\"\n")

	_, _, err := config.Load()
	assert.Error(t, err, "a missing bot token must fail startup")
}

func TestLoad_TokenFromEnvOverride(t *testing.T) {
	writeConfigFile(t, "bot:\n  token: \"\"\n")
	t.Setenv("BOT_TOKEN", "456:def")

	cfg, _, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "456:def", cfg.Bot.Token)
}

func TestLoad_MissingConfigFileFails(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("APP_ENV", "test")

	_, _, err := config.Load()
	assert.Error(t, err)
}
