// Package bot wires the Telegram transport to the conversion handlers.
package bot

import (
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/satstack/sats-fiat-bot/internal/bot/handlers"
	"github.com/satstack/sats-fiat-bot/internal/convert"
	apperrors "github.com/satstack/sats-fiat-bot/internal/errors"
	"github.com/satstack/sats-fiat-bot/internal/prefs"
	"github.com/satstack/sats-fiat-bot/internal/session"
	"github.com/satstack/sats-fiat-bot/pkg/config"
)

// Bot wraps telebot.Bot with the application dependencies required for
// handling messages.
type Bot struct {
	telebot    *telebot.Bot
	log        *slog.Logger
	cfg        config.Config
	sessions   *session.Manager
	router     *Router
	dispatcher *Dispatcher
	errHandler *apperrors.Handler
}

// New builds a Telegram bot instance configured according to the
// application settings.
func New(
	cfg config.Config,
	log *slog.Logger,
	sessions *session.Manager,
	preferences *prefs.Store,
	engine *convert.Engine,
) (*Bot, error) {
	settings := telebot.Settings{
		Token: cfg.Bot.Token,
		Poller: &telebot.LongPoller{
			Timeout: cfg.Bot.Timeout,
		},
	}

	tb, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("initialize telebot: %w", err)
	}

	dispatcher := NewDispatcher(sessions, log)
	router := NewRouter(dispatcher, sessions, log)
	errHandler := apperrors.NewHandler(log, cfg.Sentry.Enabled)

	b := &Bot{
		telebot:    tb,
		log:        log,
		cfg:        cfg,
		sessions:   sessions,
		router:     router,
		dispatcher: dispatcher,
		errHandler: errHandler,
	}

	b.setupRouter(preferences, engine)

	tb.Handle(telebot.OnText, router.Route)

	return b, nil
}

// Start runs the Telegram bot event loop.
func (b *Bot) Start() {
	if b.telebot != nil {
		b.telebot.Start()
	}
}

// Stop gracefully stops the Telegram bot.
func (b *Bot) Stop() {
	if b.telebot == nil {
		return
	}

	if b.log != nil {
		b.log.Info("stopping telegram bot...")
	}

	b.telebot.Stop()
}

// Telebot exposes the underlying telebot.Bot instance for integrations such as health checks.
func (b *Bot) Telebot() *telebot.Bot {
	return b.telebot
}

func (b *Bot) setupRouter(preferences *prefs.Store, engine *convert.Engine) {
	b.router.Use(RecoveryMiddleware(b.log, b.errHandler))
	b.router.Use(ErrorHandlingMiddleware(b.errHandler))
	b.router.Use(LoggingMiddleware(b.log))
	b.router.Use(MetricsMiddleware)

	b.router.RegisterCommand(CommandStart, handlers.NewStartHandler(b.log))
	b.router.RegisterCommand(CommandSettings, handlers.NewSettingsHandler(b.sessions, b.log))
	b.router.RegisterCommand(CommandCancel, handlers.NewCancelHandler(b.sessions, b.log))

	b.dispatcher.RegisterModeHandler(
		session.ModeAwaitingCurrency,
		handlers.NewCurrencyInputHandler(b.sessions, preferences, b.errHandler, b.log),
	)

	b.router.SetDefault(handlers.NewConvertHandler(engine, preferences, b.log))
}
