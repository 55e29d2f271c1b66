// Package provider defines the upstream exchange-rate capability and the
// registry that resolves provider names to implementations.
package provider

import (
	"context"
	"time"

	"github.com/amirasaad/currency-converter/pkg/domain"
)

// DefaultProviderName is the provider used when a request does not name
// one.
const DefaultProviderName = "frankfurter"

// ExchangeRateProvider is one upstream source of exchange-rate data. All
// calls go out over the network and accept a context; the correlation ID
// carried by the context, if any, is attached to the outbound request.
type ExchangeRateProvider interface {
	// GetLatestRates fetches the full rate table for a base currency.
	GetLatestRates(ctx context.Context, base string) (*domain.RatesSnapshot, error)

	// GetRate fetches the single-pair rate snapshot for from -> to.
	GetRate(ctx context.Context, from, to string) (*domain.RatesSnapshot, error)

	// GetHistoricalRates fetches the full series for the closed date range.
	GetHistoricalRates(ctx context.Context, base string, start, end time.Time) (*domain.HistoricalSeries, error)

	// Name returns the provider's registry name for logging and cache keys.
	Name() string
}
