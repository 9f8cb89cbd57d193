package rates

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/satstack/sats-fiat-bot/pkg/metrics"
)

// Fetcher performs a single outbound BTC price lookup.
type Fetcher interface {
	Fetch(ctx context.Context, currency string) (float64, error)
}

type entry struct {
	rate      float64
	fetchedAt time.Time
}

// Cache serves BTC exchange rates, refreshing lazily through a Fetcher when
// the stored value exceeds the freshness window. Concurrent refreshes for
// the same currency are allowed; the last successful fetch wins.
type Cache struct {
	fetcher Fetcher
	ttl     time.Duration
	log     *slog.Logger
	now     func() time.Time

	mu      sync.Mutex
	entries map[string]entry
}

// NewCache constructs a Cache with the given freshness window.
func NewCache(fetcher Fetcher, ttl time.Duration, log *slog.Logger) *Cache {
	if log == nil {
		log = slog.Default()
	}

	return &Cache{
		fetcher: fetcher,
		ttl:     ttl,
		log:     log,
		now:     time.Now,
		entries: make(map[string]entry),
	}
}

// Rate returns the BTC price in the given currency. The second return value
// reports availability: false means the fetch failed and the zero fallback
// is being served. A stale entry is never returned; it is either superseded
// by a fresh fetch or bypassed in favor of the fallback.
func (c *Cache) Rate(ctx context.Context, currencyCode string) (float64, bool) {
	key := strings.ToLower(strings.TrimSpace(currencyCode))

	c.mu.Lock()
	if cached, ok := c.entries[key]; ok && c.now().Sub(cached.fetchedAt) < c.ttl {
		c.mu.Unlock()
		metrics.RecordCacheLookup("hit")
		return cached.rate, true
	}
	c.mu.Unlock()

	metrics.RecordCacheLookup("miss")

	rate, err := c.fetcher.Fetch(ctx, key)
	if err != nil {
		c.log.Warn("rate fetch failed, serving zero fallback",
			slog.String("currency", key), slog.Any("error", err))
		metrics.RecordRateFetch("error")
		return 0.0, false
	}

	c.mu.Lock()
	c.entries[key] = entry{rate: rate, fetchedAt: c.now()}
	c.mu.Unlock()

	metrics.RecordRateFetch("ok")
	return rate, true
}
