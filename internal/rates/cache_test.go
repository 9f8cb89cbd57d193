package rates

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingFetcher struct {
	mu      sync.Mutex
	calls   int
	rate    float64
	err     error
	byCode  map[string]float64
	lastKey string
}

func (f *countingFetcher) Fetch(ctx context.Context, currency string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.lastKey = currency

	if f.err != nil {
		return 0, f.err
	}
	if f.byCode != nil {
		if rate, ok := f.byCode[currency]; ok {
			return rate, nil
		}
		return 0, ErrPriceMissing
	}
	return f.rate, nil
}

func (f *countingFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCache_FreshEntrySkipsFetch(t *testing.T) {
	ctx := context.Background()
	fetcher := &countingFetcher{rate: 50000.0}
	cache := NewCache(fetcher, 15*time.Minute, testLogger())

	rate, available := cache.Rate(ctx, "usd")
	require.True(t, available)
	require.Equal(t, 50000.0, rate)
	require.Equal(t, 1, fetcher.callCount())

	rate, available = cache.Rate(ctx, "usd")
	assert.True(t, available)
	assert.Equal(t, 50000.0, rate)
	assert.Equal(t, 1, fetcher.callCount(), "second call within the window must not fetch")
}

func TestCache_ExpiredEntryRefetches(t *testing.T) {
	ctx := context.Background()
	fetcher := &countingFetcher{rate: 50000.0}
	cache := NewCache(fetcher, 15*time.Minute, testLogger())

	now := time.Now()
	cache.now = func() time.Time { return now }

	_, _ = cache.Rate(ctx, "usd")
	require.Equal(t, 1, fetcher.callCount())

	// jump past the freshness window
	cache.now = func() time.Time { return now.Add(15*time.Minute + time.Second) }
	fetcher.mu.Lock()
	fetcher.rate = 51000.0
	fetcher.mu.Unlock()

	rate, available := cache.Rate(ctx, "usd")
	assert.True(t, available)
	assert.Equal(t, 51000.0, rate)
	assert.Equal(t, 2, fetcher.callCount(), "expired entry must trigger exactly one more fetch")
}

func TestCache_FetchFailureServesZeroFallback(t *testing.T) {
	ctx := context.Background()
	fetcher := &countingFetcher{err: errors.New("connection refused")}
	cache := NewCache(fetcher, 15*time.Minute, testLogger())

	rate, available := cache.Rate(ctx, "usd")
	assert.False(t, available)
	assert.Equal(t, 0.0, rate)
}

func TestCache_StaleEntryNotServedWhenFetchFails(t *testing.T) {
	ctx := context.Background()
	fetcher := &countingFetcher{rate: 50000.0}
	cache := NewCache(fetcher, 15*time.Minute, testLogger())

	now := time.Now()
	cache.now = func() time.Time { return now }

	rate, available := cache.Rate(ctx, "usd")
	require.True(t, available)
	require.Equal(t, 50000.0, rate)

	cache.now = func() time.Time { return now.Add(time.Hour) }
	fetcher.mu.Lock()
	fetcher.err = errors.New("price source down")
	fetcher.mu.Unlock()

	rate, available = cache.Rate(ctx, "usd")
	assert.False(t, available)
	assert.Equal(t, 0.0, rate, "stale value must not be served after the window")
}

func TestCache_NormalizesCurrencyCode(t *testing.T) {
	ctx := context.Background()
	fetcher := &countingFetcher{rate: 42000.0}
	cache := NewCache(fetcher, 15*time.Minute, testLogger())

	_, _ = cache.Rate(ctx, "USD")
	assert.Equal(t, "usd", fetcher.lastKey)

	_, _ = cache.Rate(ctx, " usd ")
	assert.Equal(t, 1, fetcher.callCount(), "differently cased codes share one cache entry")
}

func TestCache_ConcurrentLookups(t *testing.T) {
	ctx := context.Background()
	fetcher := &countingFetcher{byCode: map[string]float64{
		"usd": 50000.0,
		"eur": 46000.0,
	}}
	cache := NewCache(fetcher, 15*time.Minute, testLogger())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		code := "usd"
		if i%2 == 0 {
			code = "eur"
		}

		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			rate, available := cache.Rate(ctx, code)
			assert.True(t, available)
			assert.Greater(t, rate, 0.0)
		}(code)
	}
	wg.Wait()

	rate, available := cache.Rate(ctx, "usd")
	assert.True(t, available)
	assert.Equal(t, 50000.0, rate)
}
