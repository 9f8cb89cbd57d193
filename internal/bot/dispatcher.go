package bot

import (
	"context"
	"log/slog"
	"sync"

	telebot "gopkg.in/telebot.v3"

	"github.com/satstack/sats-fiat-bot/internal/bot/handlers"
	"github.com/satstack/sats-fiat-bot/internal/session"
)

// Dispatcher routes incoming messages to mode-specific handlers.
type Dispatcher struct {
	sessions     *session.Manager
	modeHandlers map[session.Mode]handlers.Handler
	log          *slog.Logger
	mu           sync.RWMutex
}

// NewDispatcher creates a Dispatcher with an empty handlers registry.
func NewDispatcher(sessions *session.Manager, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}

	return &Dispatcher{
		sessions:     sessions,
		modeHandlers: make(map[session.Mode]handlers.Handler),
		log:          log,
	}
}

// RegisterModeHandler registers a handler for the provided chat mode.
func (d *Dispatcher) RegisterModeHandler(mode session.Mode, h handlers.Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.modeHandlers[mode] = h
}

// Handler returns the handler registered for the chat's current mode, or
// nil when the message should fall through to the router's default handler.
func (d *Dispatcher) Handler(c telebot.Context) handlers.Handler {
	if c == nil || c.Chat() == nil {
		d.log.Warn("cannot dispatch without chat information")
		return nil
	}

	mode := d.sessions.Mode(context.Background(), c.Chat().ID)

	return d.getHandler(mode)
}

func (d *Dispatcher) getHandler(mode session.Mode) handlers.Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.modeHandlers[mode]
}
