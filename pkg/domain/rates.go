// Package domain holds the exchange-rate result types and the error
// taxonomy shared by the service, cache and provider layers.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RatesSnapshot is a set of exchange rates for a base currency as returned
// by a provider in a single fetch. It is immutable once returned; a cache
// entry owns whichever snapshot it holds.
type RatesSnapshot struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
	AsOf  time.Time          `json:"as_of"`
}

// HistoricalSeries maps calendar dates (YYYY-MM-DD) to the rate table
// observed on that date, for a single base currency.
type HistoricalSeries struct {
	Base        string                        `json:"base"`
	RatesByDate map[string]map[string]float64 `json:"rates"`
}

// ConversionResult is the outcome of converting an amount between two
// currencies at the provider's current rate.
type ConversionResult struct {
	From            string          `json:"from"`
	To              string          `json:"to"`
	Amount          decimal.Decimal `json:"amount"`
	Rate            decimal.Decimal `json:"rate"`
	ConvertedAmount decimal.Decimal `json:"converted_amount"`
}

// PagedHistoricalRates is one page of a historical series, sliced after
// sorting the dates ascending. Rates holds only the dates belonging to the
// requested page; a page past the end of the series is empty, not an error.
type PagedHistoricalRates struct {
	Base         string                        `json:"base"`
	Rates        map[string]map[string]float64 `json:"rates"`
	TotalRecords int                           `json:"total_records"`
	Page         int                           `json:"page"`
	PageSize     int                           `json:"page_size"`
	TotalPages   int                           `json:"total_pages"`
}
