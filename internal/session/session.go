package session

import "time"

// Mode represents the input mode of a single chat conversation.
type Mode string

const (
	// ModeIdle indicates the chat has no pending question; free text is
	// treated as a sats amount.
	ModeIdle Mode = "idle"
	// ModeAwaitingCurrency indicates the next message from the chat is
	// treated as a fiat currency code.
	ModeAwaitingCurrency Mode = "awaiting_currency"
)

// Record captures the stored input mode for a chat.
type Record struct {
	ChatID    int64     `json:"chat_id"`
	Mode      Mode      `json:"mode"`
	UpdatedAt time.Time `json:"updated_at"`
}
