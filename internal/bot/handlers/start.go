package handlers

import (
	"log/slog"

	telebot "gopkg.in/telebot.v3"
)

const welcomeMessage = "❗​ Welcome! Send me a number in sats and I'll convert it to fiat. Use /settings to set your preferred currency."

// NewStartHandler returns the /start command handler. It only greets the
// user; no chat state changes.
func NewStartHandler(log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if c == nil || c.Chat() == nil {
			log.Warn("start handler invoked without chat context")
			return nil
		}

		return c.Send(welcomeMessage)
	}
}
