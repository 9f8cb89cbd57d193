package handlers

import (
	"context"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	apperrors "github.com/satstack/sats-fiat-bot/internal/errors"
	"github.com/satstack/sats-fiat-bot/internal/session"
)

const currencyPrompt = "🪙​ Please enter your preferred fiat currency (e.g., USD, EUR, GBP):"

// NewSettingsHandler returns the /settings command handler. It puts the
// chat into currency input mode and prompts for a 3-letter code.
func NewSettingsHandler(sessions *session.Manager, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if c == nil || c.Chat() == nil {
			log.Warn("settings handler invoked without chat context")
			return nil
		}

		ctx := context.Background()
		chatID := c.Chat().ID

		if err := sessions.SetMode(ctx, chatID, session.ModeAwaitingCurrency); err != nil {
			return apperrors.NewStateError(err)
		}

		return c.Send(currencyPrompt)
	}
}
