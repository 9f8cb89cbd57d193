package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FetchSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
		assert.Equal(t, "eur", r.URL.Query().Get("vs_currencies"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bitcoin":{"eur":46123.45}}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, 5*time.Second, testLogger())

	price, err := client.Fetch(context.Background(), "eur")
	require.NoError(t, err)
	assert.Equal(t, 46123.45, price)
}

func TestClient_FetchBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, 5*time.Second, testLogger())

	_, err := client.Fetch(context.Background(), "usd")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestClient_FetchMissingPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bitcoin":{}}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, 5*time.Second, testLogger())

	_, err := client.Fetch(context.Background(), "xyz")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPriceMissing)
}

func TestClient_FetchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, time.Second, testLogger())

	_, err := client.Fetch(context.Background(), "usd")
	assert.Error(t, err)
}

func TestClient_FetchNonNumericPrice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bitcoin":{"usd":"not-a-number"}}`))
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, 5*time.Second, testLogger())

	_, err := client.Fetch(context.Background(), "usd")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPriceMissing)
}
