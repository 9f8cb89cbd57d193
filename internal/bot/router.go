package bot

import (
	"log/slog"
	"strings"
	"sync"

	telebot "gopkg.in/telebot.v3"

	"github.com/satstack/sats-fiat-bot/internal/bot/handlers"
	"github.com/satstack/sats-fiat-bot/internal/session"
)

// Router dispatches commands and mode-aware messages. Every message turn is
// serialized per chat through the session manager, so the mode observed at
// dispatch time cannot change under the executing handler.
type Router struct {
	mu             sync.RWMutex
	commands       map[string]handlers.Handler
	dispatcher     *Dispatcher
	sessions       *session.Manager
	defaultHandler handlers.Handler
	middlewares    []handlers.Middleware
	log            *slog.Logger
}

// NewRouter builds a Router with empty registries.
func NewRouter(dispatcher *Dispatcher, sessions *session.Manager, log *slog.Logger) *Router {
	if log == nil {
		log = slog.Default()
	}

	return &Router{
		commands:    make(map[string]handlers.Handler),
		dispatcher:  dispatcher,
		sessions:    sessions,
		middlewares: make([]handlers.Middleware, 0),
		log:         log,
	}
}

// RegisterCommand registers a handler for a bot command.
func (r *Router) RegisterCommand(cmd string, h handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[cmd] = h
}

// Use appends a middleware to the chain.
func (r *Router) Use(mw handlers.Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = append(r.middlewares, mw)
}

// SetDefault sets the fallback handler for messages no command or mode
// handler consumed.
func (r *Router) SetDefault(h handlers.Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultHandler = h
}

// Route directs the incoming message to the appropriate handler while
// holding the chat's turn lock.
func (r *Router) Route(c telebot.Context) error {
	if c == nil {
		return nil
	}

	chat := c.Chat()
	if chat == nil {
		r.log.Warn("cannot route update without chat information")
		return nil
	}

	return r.sessions.Do(chat.ID, func() error {
		return r.route(c)
	})
}

func (r *Router) route(c telebot.Context) error {
	text := c.Text()

	if strings.HasPrefix(text, "/") {
		cmd := strings.Fields(text)[0]
		if handler := r.getCommandHandler(cmd); handler != nil {
			return r.executeHandler(handler, c)
		}
	}

	if handler := r.dispatcher.Handler(c); handler != nil {
		return r.executeHandler(handler, c)
	}

	if handler := r.getDefaultHandler(); handler != nil {
		return r.executeHandler(handler, c)
	}

	return nil
}

func (r *Router) executeHandler(h handlers.Handler, c telebot.Context) error {
	wrapped := r.applyMiddlewares(h)
	if wrapped == nil {
		return nil
	}
	return wrapped(c)
}

func (r *Router) getCommandHandler(cmd string) handlers.Handler {
	r.mu.RLock()
	handler := r.commands[cmd]
	r.mu.RUnlock()
	return handler
}

func (r *Router) getDefaultHandler() handlers.Handler {
	r.mu.RLock()
	handler := r.defaultHandler
	r.mu.RUnlock()
	return handler
}

// applyMiddlewares wraps the handler with all registered middlewares.
func (r *Router) applyMiddlewares(h handlers.Handler) handlers.Handler {
	if h == nil {
		return nil
	}

	middlewares := r.middlewaresSnapshot()
	wrapped := h
	for i := len(middlewares) - 1; i >= 0; i-- {
		wrapped = middlewares[i](wrapped)
	}

	return wrapped
}

func (r *Router) middlewaresSnapshot() []handlers.Middleware {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.middlewares) == 0 {
		return nil
	}

	snapshot := make([]handlers.Middleware, len(r.middlewares))
	copy(snapshot, r.middlewares)
	return snapshot
}
