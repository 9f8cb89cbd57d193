// Package session tracks the per-chat input mode state machine.
package session

import (
	"context"
	"errors"
)

// ErrModeNotFound indicates that no mode record exists for a chat.
var ErrModeNotFound = errors.New("chat mode not found")

// Storage defines the persistence contract for chat input modes.
type Storage interface {
	// GetMode returns the current mode for the specified chat.
	GetMode(ctx context.Context, chatID int64) (Mode, error)
	// SetMode saves the provided mode for the specified chat.
	SetMode(ctx context.Context, chatID int64, mode Mode) error
	// ClearMode removes the mode record for the specified chat.
	ClearMode(ctx context.Context, chatID int64) error
}
