package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStorage keeps chat modes in process memory. It is the default
// backend when no Redis address is configured.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[int64]*Record
}

// NewMemoryStorage constructs an in-memory Storage implementation.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		records: make(map[int64]*Record),
	}
}

// GetMode returns the stored mode for the chat or ErrModeNotFound when absent.
func (s *MemoryStorage) GetMode(ctx context.Context, chatID int64) (Mode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.records[chatID]
	if !ok {
		return "", ErrModeNotFound
	}

	return record.Mode, nil
}

// SetMode saves the mode for the chat, creating the record if necessary.
func (s *MemoryStorage) SetMode(ctx context.Context, chatID int64, mode Mode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[chatID] = &Record{
		ChatID:    chatID,
		Mode:      mode,
		UpdatedAt: time.Now().UTC(),
	}

	return nil
}

// ClearMode removes the mode record for the chat.
func (s *MemoryStorage) ClearMode(ctx context.Context, chatID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, chatID)
	return nil
}
