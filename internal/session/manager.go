package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

var transitionRecorder = func(from, to string) {}

// RegisterTransitionRecorder allows external packages to observe mode transitions.
func RegisterTransitionRecorder(recorder func(from, to string)) {
	if recorder == nil {
		transitionRecorder = func(string, string) {}
		return
	}

	transitionRecorder = recorder
}

// Manager exposes the chat mode state machine on top of a Storage backend
// and serializes whole message turns per chat. Messages for different chats
// proceed concurrently; two rapid messages from the same chat are handled
// one after the other, so a mode check followed by a transition inside one
// turn cannot be torn by the second message.
type Manager struct {
	storage Storage
	log     *slog.Logger

	mu        sync.Mutex
	chatLocks map[int64]*sync.Mutex
}

// NewManager creates a Manager backed by the provided storage.
func NewManager(storage Storage, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}

	return &Manager{
		storage:   storage,
		log:       log,
		chatLocks: make(map[int64]*sync.Mutex),
	}
}

// Mode returns the current mode for the chat, defaulting to idle when no
// record exists. Storage errors also resolve to idle so a single bad read
// cannot wedge a conversation.
func (m *Manager) Mode(ctx context.Context, chatID int64) Mode {
	mode, err := m.storage.GetMode(ctx, chatID)
	if err != nil {
		if !errors.Is(err, ErrModeNotFound) {
			m.log.Error("failed to read chat mode", slog.Int64("chat_id", chatID), slog.Any("error", err))
		}
		return ModeIdle
	}

	return mode
}

// SetMode transitions the chat to the given mode.
func (m *Manager) SetMode(ctx context.Context, chatID int64, mode Mode) error {
	current := m.Mode(ctx, chatID)

	if err := m.storage.SetMode(ctx, chatID, mode); err != nil {
		return err
	}

	transitionRecorder(string(current), string(mode))
	return nil
}

// ClearMode resets the chat back to idle.
func (m *Manager) ClearMode(ctx context.Context, chatID int64) error {
	current := m.Mode(ctx, chatID)

	if err := m.storage.ClearMode(ctx, chatID); err != nil {
		return err
	}

	transitionRecorder(string(current), string(ModeIdle))
	return nil
}

// Do runs fn while holding the chat's turn lock.
func (m *Manager) Do(chatID int64, fn func() error) error {
	lock := m.chatLock(chatID)
	lock.Lock()
	defer lock.Unlock()

	return fn()
}

func (m *Manager) chatLock(chatID int64) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.chatLocks[chatID]
	if !ok {
		lock = &sync.Mutex{}
		m.chatLocks[chatID] = lock
	}

	return lock
}
