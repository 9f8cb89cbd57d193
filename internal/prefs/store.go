// Package prefs stores per-chat fiat currency preferences in a JSON file.
package prefs

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"sync"
)

// DefaultCurrency is applied when a chat has no stored preference.
const DefaultCurrency = "USD"

// Store keeps currency preferences in memory and mirrors every change to a
// JSON file. The whole mapping is rewritten on each save.
type Store struct {
	path string
	log  *slog.Logger

	mu    sync.RWMutex
	prefs map[int64]string
}

// NewStore constructs a Store persisting to the given file path.
func NewStore(path string, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}

	return &Store{
		path:  path,
		log:   log,
		prefs: make(map[int64]string),
	}
}

// Load initializes the mapping from the backing file. A missing file is not
// an error; the store starts empty and the default currency applies
// per-request.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read preferences file: %w", err)
	}

	loaded, err := decodePreferences(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.prefs = loaded
	s.mu.Unlock()

	return nil
}

// Reload re-reads the backing file, replacing the in-memory mapping.
// Used when the file changes on disk outside of this process.
func (s *Store) Reload() error {
	return s.Load()
}

// Get returns the preferred currency for the chat, or DefaultCurrency when
// no preference is stored.
func (s *Store) Get(chatID int64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if code, ok := s.prefs[chatID]; ok {
		return code
	}

	return DefaultCurrency
}

// Set stores the preference and rewrites the full snapshot to disk. The
// in-memory mapping is updated even when the write fails; the next
// successful save persists the complete current state.
func (s *Store) Set(chatID int64, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs[chatID] = code
	return s.save()
}

// Len reports the number of stored preferences.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.prefs)
}

func (s *Store) save() error {
	encoded := make(map[string]string, len(s.prefs))
	for chatID, code := range s.prefs {
		encoded[strconv.FormatInt(chatID, 10)] = code
	}

	data, err := json.MarshalIndent(encoded, "", "  ")
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write preferences file: %w", err)
	}

	return nil
}

func decodePreferences(data []byte) (map[int64]string, error) {
	var encoded map[string]string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return nil, fmt.Errorf("decode preferences file: %w", err)
	}

	prefs := make(map[int64]string, len(encoded))
	for key, code := range encoded {
		chatID, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decode preferences file: bad chat id %q: %w", key, err)
		}
		prefs[chatID] = code
	}

	return prefs, nil
}
