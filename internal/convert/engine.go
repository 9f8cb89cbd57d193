// Package convert turns sats amounts into formatted fiat values.
package convert

import (
	"context"
	"fmt"
)

// satoshiToBTC is the fixed scaling constant: 1 BTC = 100,000,000 sats.
const satoshiToBTC = 1e-8

// RateSource supplies the BTC price for a currency, reporting availability.
type RateSource interface {
	Rate(ctx context.Context, currencyCode string) (float64, bool)
}

// Engine composes sats scaling with a rate lookup.
type Engine struct {
	rates RateSource
}

// NewEngine constructs a conversion engine on top of a rate source.
func NewEngine(rates RateSource) *Engine {
	return &Engine{rates: rates}
}

// Convert returns the fiat value of the given sats amount formatted to two
// decimals. It always produces a numeric string; when no rate is available
// the zero fallback yields "0.00" and the second return value is false.
func (e *Engine) Convert(ctx context.Context, amountSats int64, currencyCode string) (string, bool) {
	btcValue := float64(amountSats) * satoshiToBTC
	rate, available := e.rates.Rate(ctx, currencyCode)

	return fmt.Sprintf("%.2f", btcValue*rate), available
}
