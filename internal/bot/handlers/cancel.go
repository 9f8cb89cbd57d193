package handlers

import (
	"context"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	apperrors "github.com/satstack/sats-fiat-bot/internal/errors"
	"github.com/satstack/sats-fiat-bot/internal/session"
)

// NewCancelHandler returns the /cancel command handler, which abandons a
// pending currency prompt and returns the chat to idle.
func NewCancelHandler(sessions *session.Manager, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if c == nil || c.Chat() == nil {
			log.Warn("cancel handler invoked without chat context")
			return nil
		}

		ctx := context.Background()
		chatID := c.Chat().ID

		if err := sessions.ClearMode(ctx, chatID); err != nil {
			return apperrors.NewStateError(err)
		}

		return c.Send("Cancelled. Send me a number in sats to convert it.")
	}
}
