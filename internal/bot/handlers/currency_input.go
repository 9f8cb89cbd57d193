package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	telebot "gopkg.in/telebot.v3"

	apperrors "github.com/satstack/sats-fiat-bot/internal/errors"
	"github.com/satstack/sats-fiat-bot/internal/prefs"
	"github.com/satstack/sats-fiat-bot/internal/session"
)

const saveFailedNote = "\n⚠️​ Saving to disk failed; it applies for this session only."

// NewCurrencyInputHandler handles the message following /settings: the text
// is treated as a candidate currency code. A code that is not exactly 3
// characters after normalization is rejected and the chat stays in currency
// input mode so the user can retry.
func NewCurrencyInputHandler(
	sessions *session.Manager,
	preferences *prefs.Store,
	errHandler *apperrors.Handler,
	log *slog.Logger,
) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if c == nil || c.Chat() == nil {
			log.Warn("currency input handler invoked without chat context")
			return nil
		}

		ctx := context.Background()
		chatID := c.Chat().ID

		code := strings.ToUpper(strings.TrimSpace(c.Text()))
		if utf8.RuneCountInString(code) != 3 {
			return apperrors.NewInvalidCurrencyError(c.Text())
		}

		// the in-memory preference stands even when the write fails; the
		// next successful save persists the full snapshot
		saveNote := ""
		if err := preferences.Set(chatID, code); err != nil {
			appErr := apperrors.NewPersistenceError(err)
			if errHandler != nil {
				errHandler.Handle(ctx, appErr)
			} else {
				log.Error("failed to persist currency preference",
					slog.Int64("chat_id", chatID), slog.Any("error", appErr))
			}
			saveNote = saveFailedNote
		}

		if err := sessions.SetMode(ctx, chatID, session.ModeIdle); err != nil {
			return apperrors.NewStateError(err)
		}

		return c.Send(fmt.Sprintf("💱​ Currency preference set to: %s", code) + saveNote)
	}
}
