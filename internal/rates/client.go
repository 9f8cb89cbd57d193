// Package rates fetches and caches BTC exchange rates.
package rates

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
)

var (
	// ErrBadStatus indicates the price source answered with a non-2xx status.
	ErrBadStatus = errors.New("price source returned unexpected status")
	// ErrPriceMissing indicates the response parsed but carried no price for
	// the requested currency, e.g. an unsupported code.
	ErrPriceMissing = errors.New("price source response has no price for currency")
)

// Client performs single BTC price lookups against a CoinGecko-compatible
// simple price endpoint. One attempt per call; retry policy belongs to the
// caller.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
}

// NewClient constructs a price source client with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Fetch returns the price of 1 BTC denominated in the given currency code.
// The code is expected in lowercase, matching the response key path.
func (c *Client) Fetch(ctx context.Context, currency string) (float64, error) {
	query := url.Values{}
	query.Set("ids", "bitcoin")
	query.Set("vs_currencies", currency)

	endpoint := fmt.Sprintf("%s/simple/price?%s", c.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, fmt.Errorf("build price request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("price source request: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			c.log.Warn("failed to close price response body", slog.Any("error", cerr))
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return 0, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read price response: %w", err)
	}

	price := gjson.GetBytes(body, "bitcoin."+currency)
	if !price.Exists() || price.Type != gjson.Number {
		return 0, fmt.Errorf("%w: %s", ErrPriceMissing, currency)
	}

	return price.Float(), nil
}
