// Package metrics exposes Prometheus collectors for the bot.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/satstack/sats-fiat-bot/internal/session"
)

var (
	messagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_total",
			Help: "Total number of handled messages labeled by handler and status",
		},
		[]string{"handler", "status"},
	)
	handlerDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "handler_duration_seconds",
			Help:    "Duration of message handlers in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler"},
	)
	conversionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversions_total",
			Help: "Total number of sats conversions labeled by currency",
		},
		[]string{"currency"},
	)
	rateFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_fetches_total",
			Help: "Total number of outbound price source fetches labeled by status",
		},
		[]string{"status"},
	)
	rateCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_cache_lookups_total",
			Help: "Total number of rate cache lookups labeled by result",
		},
		[]string{"result"},
	)
	modeTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_mode_transitions_total",
			Help: "Total number of chat mode transitions",
		},
		[]string{"from", "to"},
	)
)

func init() {
	session.RegisterTransitionRecorder(RecordModeTransition)
}

// RecordMessage increments message counters and records handler duration.
func RecordMessage(handler, status string, duration time.Duration) {
	if handler == "" {
		handler = "unknown"
	}
	if status == "" {
		status = "unknown"
	}

	messagesTotal.WithLabelValues(handler, status).Inc()
	handlerDurationSeconds.WithLabelValues(handler).Observe(duration.Seconds())
}

// RecordConversion counts a completed sats conversion for the currency.
func RecordConversion(currency string) {
	if currency == "" {
		currency = "unknown"
	}

	conversionsTotal.WithLabelValues(currency).Inc()
}

// RecordRateFetch counts an outbound price fetch attempt.
func RecordRateFetch(status string) {
	rateFetchesTotal.WithLabelValues(status).Inc()
}

// RecordCacheLookup counts a rate cache lookup as a hit or miss.
func RecordCacheLookup(result string) {
	rateCacheLookupsTotal.WithLabelValues(result).Inc()
}

// RecordModeTransition counts a chat mode transition.
func RecordModeTransition(from, to string) {
	modeTransitionsTotal.WithLabelValues(from, to).Inc()
}
