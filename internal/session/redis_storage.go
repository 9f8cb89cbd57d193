package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	chatModeKeyPattern = "chat:mode:%d"
	chatModeTTL        = time.Hour
)

// RedisStorage persists chat modes in Redis so they survive restarts.
type RedisStorage struct {
	client *redis.Client
	log    *slog.Logger
}

// NewRedisStorage initializes a Redis-backed Storage implementation.
func NewRedisStorage(client *redis.Client, log *slog.Logger) *RedisStorage {
	if log == nil {
		log = slog.Default()
	}

	return &RedisStorage{
		client: client,
		log:    log,
	}
}

// GetMode returns the stored mode or ErrModeNotFound when absent.
func (s *RedisStorage) GetMode(ctx context.Context, chatID int64) (Mode, error) {
	data, err := s.client.Get(ctx, redisChatModeKey(chatID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrModeNotFound
		}

		s.log.Error("failed to get chat mode from redis", "chat_id", chatID, "error", err)
		return "", err
	}

	var record Record
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		s.log.Error("failed to decode chat mode", "chat_id", chatID, "error", err)
		return "", err
	}

	return record.Mode, nil
}

// SetMode saves the mode for the chat with a TTL; an expired record simply
// falls back to idle on the next message.
func (s *RedisStorage) SetMode(ctx context.Context, chatID int64, mode Mode) error {
	record := Record{
		ChatID:    chatID,
		Mode:      mode,
		UpdatedAt: time.Now().UTC(),
	}

	data, err := json.Marshal(record)
	if err != nil {
		s.log.Error("failed to encode chat mode", "chat_id", chatID, "error", err)
		return err
	}

	if err := s.client.Set(ctx, redisChatModeKey(chatID), data, chatModeTTL).Err(); err != nil {
		s.log.Error("failed to save chat mode in redis", "chat_id", chatID, "error", err)
		return err
	}

	return nil
}

// ClearMode removes the stored mode for the given chat.
func (s *RedisStorage) ClearMode(ctx context.Context, chatID int64) error {
	if err := s.client.Del(ctx, redisChatModeKey(chatID)).Err(); err != nil {
		s.log.Error("failed to clear chat mode", "chat_id", chatID, "error", err)
		return err
	}

	return nil
}

func redisChatModeKey(chatID int64) string {
	return fmt.Sprintf(chatModeKeyPattern, chatID)
}
