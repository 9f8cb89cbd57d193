package bot

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/satstack/sats-fiat-bot/internal/bot/handlers"
	apperrors "github.com/satstack/sats-fiat-bot/internal/errors"
	"github.com/satstack/sats-fiat-bot/pkg/metrics"
)

// RecoveryMiddleware catches panics, reports them via the centralized handler, and notifies the user.
func RecoveryMiddleware(log *slog.Logger, errHandler *apperrors.Handler) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("panic recovered in handler", slog.Any("panic", r), slog.String("stack", string(debug.Stack())))

					userMsg := "⚠️ Something went wrong. Please try again later."
					if errHandler != nil {
						appErr := apperrors.NewStateError(fmt.Errorf("panic recovered: %v", r))
						if msg := errHandler.Handle(context.Background(), appErr); msg != "" {
							userMsg = msg
						}
					}

					if c != nil {
						if sendErr := c.Send(userMsg); sendErr != nil {
							log.Error("failed to notify user about panic", slog.Any("error", sendErr))
						}
					}

					err = nil
				}
			}()

			return next(c)
		}
	}
}

// ErrorHandlingMiddleware centralizes error reporting and user messaging
// for handler failures. User-input errors surface as explanatory replies;
// nothing propagates past this middleware and kills the polling loop.
func ErrorHandlingMiddleware(errHandler *apperrors.Handler) handlers.Middleware {
	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			userMsg := "Something went wrong. Please try again later."
			if errHandler != nil {
				if msg := errHandler.Handle(context.Background(), err); msg != "" {
					userMsg = msg
				}
			}

			if c != nil {
				_ = c.Send(userMsg)
			}

			return nil
		}
	}
}

// LoggingMiddleware logs basic telemetry about incoming messages.
func LoggingMiddleware(log *slog.Logger) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			start := time.Now()
			chatID := int64(0)
			text := ""
			if c != nil {
				if c.Chat() != nil {
					chatID = c.Chat().ID
				}
				text = c.Text()
			}

			log.Info("handling message", slog.Int64("chat_id", chatID), slog.String("text", text))
			err := next(c)
			log.Info("handled message",
				slog.Int64("chat_id", chatID),
				slog.Duration("duration", time.Since(start)),
				slog.Any("error", err),
			)

			return err
		}
	}
}

// MetricsMiddleware records message counts and handler durations.
func MetricsMiddleware(next handlers.Handler) handlers.Handler {
	if next == nil {
		return nil
	}

	return func(c telebot.Context) error {
		start := time.Now()

		err := next(c)

		status := "ok"
		if err != nil {
			status = "error"
		}

		metrics.RecordMessage(handlerLabel(c), status, time.Since(start))
		return err
	}
}

func handlerLabel(c telebot.Context) string {
	if c == nil {
		return "unknown"
	}

	text := c.Text()
	if strings.HasPrefix(text, "/") {
		return strings.Fields(text)[0]
	}

	return "text"
}
