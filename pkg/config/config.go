package config

import "time"

// Config holds runtime configuration for the sats-fiat bot.
type Config struct {
	AppEnv string `mapstructure:"-"`

	Bot    BotConfig    `mapstructure:"bot" validate:"required"`
	Server ServerConfig `mapstructure:"server"`
	Rates  RatesConfig  `mapstructure:"rates"`
	Prefs  PrefsConfig  `mapstructure:"prefs"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Log    LogConfig    `mapstructure:"log"`
	Sentry SentryConfig `mapstructure:"sentry"`
}

// BotConfig configures the Telegram transport. The bot runs in long
// polling mode; Timeout is the long poll interval.
type BotConfig struct {
	Token   string        `mapstructure:"token" validate:"required"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerConfig configures the metrics/health HTTP listener.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// RatesConfig configures the BTC price source and cache.
type RatesConfig struct {
	BaseURL        string        `mapstructure:"base_url" validate:"required,url"`
	CacheTTL       time.Duration `mapstructure:"cache_ttl" validate:"gt=0"`
	RequestTimeout time.Duration `mapstructure:"request_timeout" validate:"gt=0"`
}

// PrefsConfig configures the currency preference file store.
type PrefsConfig struct {
	Path  string `mapstructure:"path" validate:"required"`
	Watch bool   `mapstructure:"watch"`
}

// RedisConfig configures the optional Redis backend for chat modes.
// When Addr is empty the bot keeps modes in process memory.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LogConfig configures structured logging output and rotation.
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// SentryConfig configures error reporting.
type SentryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}
