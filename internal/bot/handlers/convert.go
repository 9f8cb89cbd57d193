package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	telebot "gopkg.in/telebot.v3"

	"github.com/satstack/sats-fiat-bot/internal/convert"
	apperrors "github.com/satstack/sats-fiat-bot/internal/errors"
	"github.com/satstack/sats-fiat-bot/internal/prefs"
	"github.com/satstack/sats-fiat-bot/pkg/metrics"
)

const rateUnavailableNote = "\n⚠️​ The exchange rate is temporarily unavailable."

// NewConvertHandler handles free text while the chat is idle: the text is
// parsed as a sats amount and converted using the chat's preferred
// currency. A parse failure produces a rejection without touching the rate
// cache or the network.
func NewConvertHandler(engine *convert.Engine, preferences *prefs.Store, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		if c == nil || c.Chat() == nil {
			log.Warn("convert handler invoked without chat context")
			return nil
		}

		text := strings.TrimSpace(c.Text())

		amountSats, err := strconv.ParseInt(text, 10, 64)
		if err != nil {
			return apperrors.NewInvalidAmountError(text)
		}

		ctx := context.Background()
		chatID := c.Chat().ID

		currency := preferences.Get(chatID)
		value, available := engine.Convert(ctx, amountSats, currency)
		metrics.RecordConversion(currency)

		response := fmt.Sprintf("%d sats ≈ %s %s", amountSats, value, currency)
		if !available {
			response += rateUnavailableNote
		}

		return c.Send(response)
	}
}
