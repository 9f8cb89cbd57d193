// Package lifecycle coordinates graceful process shutdown.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// Hook describes a named shutdown step.
type Hook struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Shutdown runs registered hooks in reverse registration order, so the
// components started last are stopped first.
type Shutdown struct {
	mu    sync.Mutex
	hooks []Hook
	log   *slog.Logger
}

// NewShutdown constructs a new Shutdown coordinator.
func NewShutdown(log *slog.Logger) *Shutdown {
	if log == nil {
		log = slog.Default()
	}

	return &Shutdown{log: log}
}

// Register adds a named shutdown hook.
func (s *Shutdown) Register(name string, fn func(context.Context) error) {
	if fn == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.hooks = append(s.hooks, Hook{Name: name, Fn: fn})
}

// Execute runs all registered hooks and returns the combined failures.
func (s *Shutdown) Execute(ctx context.Context) error {
	s.mu.Lock()
	hooks := append([]Hook(nil), s.hooks...)
	s.mu.Unlock()

	start := time.Now()
	s.log.Info("shutdown sequence started", slog.Int("hook_count", len(hooks)))

	var errs []string
	for i := len(hooks) - 1; i >= 0; i-- {
		hook := hooks[i]
		if hook.Fn == nil {
			continue
		}

		s.log.Info("running shutdown hook", slog.String("hook", hook.Name))
		if err := hook.Fn(ctx); err != nil {
			s.log.Error("shutdown hook failed", slog.String("hook", hook.Name), slog.Any("error", err))
			errs = append(errs, fmt.Sprintf("%s: %v", hook.Name, err))
			continue
		}
		s.log.Info("shutdown hook completed", slog.String("hook", hook.Name))
	}

	s.log.Info("shutdown sequence finished", slog.Duration("elapsed", time.Since(start)))

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}
