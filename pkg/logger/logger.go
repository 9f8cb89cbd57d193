// Package logger assembles the application slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	sentryslog "github.com/samber/slog-sentry/v2"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"

	"github.com/satstack/sats-fiat-bot/pkg/config"
)

// New builds a JSON slog logger according to the log configuration.
// When a log file is configured output is rotated via lumberjack; when
// Sentry is enabled error records are additionally fanned out to Sentry.
func New(cfg config.LogConfig, sentryEnabled bool) *slog.Logger {
	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		}
	}

	var handler slog.Handler = slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	})
	handler = NewMaskingHandler(handler)

	if sentryEnabled {
		sentryHandler := sentryslog.Option{
			Level: slog.LevelError,
		}.NewSentryHandler()
		handler = slogmulti.Fanout(handler, sentryHandler)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
