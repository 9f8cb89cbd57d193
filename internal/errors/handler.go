package errors

import (
	"context"
	"errors"
	"log/slog"

	"github.com/getsentry/sentry-go"

	"github.com/satstack/sats-fiat-bot/pkg/logger"
)

const fallbackReply = "Something went wrong. Please try again later."

// Handler maps errors to user-facing replies, logging every occurrence and
// escalating high-severity errors to Sentry when enabled.
type Handler struct {
	log           *slog.Logger
	sentryEnabled bool
}

func NewHandler(log *slog.Logger, sentryEnabled bool) *Handler {
	return &Handler{
		log:           log,
		sentryEnabled: sentryEnabled,
	}
}

// Handle logs the error and returns the text that should be sent to the user.
func (h *Handler) Handle(ctx context.Context, err error) string {
	if err == nil {
		return ""
	}

	if ctx == nil {
		ctx = context.Background()
	}

	log := h.log
	if log == nil {
		log = slog.Default()
	}

	var appErr *AppError
	if !errors.As(err, &appErr) || appErr == nil {
		// unclassified errors are treated as high severity
		appErr = &AppError{
			Message:  err.Error(),
			Severity: SeverityHigh,
			cause:    err,
		}
	}

	attrs := []slog.Attr{
		slog.String("code", appErr.Code),
		slog.String("message", appErr.Message),
		slog.String("severity", string(appErr.Severity)),
	}
	if correlationID := logger.CorrelationIDFromContext(ctx); correlationID != "" {
		attrs = append(attrs, slog.String("correlation_id", correlationID))
	}
	log.LogAttrs(ctx, slog.LevelError, "handling failed", attrs...)

	if h.sentryEnabled && (appErr.Severity == SeverityHigh || appErr.Severity == SeverityCritical) {
		sendToSentry(err, appErr)
	}

	if appErr.UserMessage == "" {
		return fallbackReply
	}

	return appErr.UserMessage
}

func sendToSentry(err error, appErr *AppError) {
	sentry.WithScope(func(scope *sentry.Scope) {
		if appErr.Code != "" {
			scope.SetTag("code", appErr.Code)
		}
		if appErr.Severity != "" {
			scope.SetTag("severity", string(appErr.Severity))
		}

		sentry.CaptureException(err)
	})
}
