// Package provider contains the REST adapters behind the
// provider.ExchangeRateProvider port.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/amirasaad/currency-converter/infra/metrics"
	"github.com/amirasaad/currency-converter/infra/resilience"
	"github.com/amirasaad/currency-converter/pkg/config"
	"github.com/amirasaad/currency-converter/pkg/correlation"
	"github.com/amirasaad/currency-converter/pkg/domain"
)

// Name under which the Frankfurter adapter registers itself.
const FrankfurterName = "frankfurter"

// Frankfurter talks to the Frankfurter public exchange-rate API
// (https://frankfurter.dev). Every outbound call goes through the shared
// resilience policy.
type Frankfurter struct {
	baseURL    string
	httpClient *http.Client
	policy     *resilience.Policy
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

type historicalResponse struct {
	Base  string                        `json:"base"`
	Rates map[string]map[string]float64 `json:"rates"`
}

// NewFrankfurter creates the adapter. The per-attempt connection/response
// timeout lives on the HTTP client; a timed-out attempt is a transient
// failure for the policy. metrics may be nil.
func NewFrankfurter(cfg config.Frankfurter, policy *resilience.Policy, logger *slog.Logger, m *metrics.Metrics) *Frankfurter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Frankfurter{
		baseURL:    cfg.ApiUrl,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		policy:     policy,
		logger:     logger,
		metrics:    m,
	}
}

// Name implements provider.ExchangeRateProvider.
func (f *Frankfurter) Name() string { return FrankfurterName }

// GetLatestRates fetches the full rate table for base.
func (f *Frankfurter) GetLatestRates(ctx context.Context, base string) (*domain.RatesSnapshot, error) {
	var resp ratesResponse
	path := "latest?base=" + url.QueryEscape(base)
	if err := f.fetch(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &domain.RatesSnapshot{Base: resp.Base, Rates: resp.Rates, AsOf: time.Now().UTC()}, nil
}

// GetRate fetches the single-pair snapshot for from -> to.
func (f *Frankfurter) GetRate(ctx context.Context, from, to string) (*domain.RatesSnapshot, error) {
	var resp ratesResponse
	path := fmt.Sprintf("latest?base=%s&symbols=%s", url.QueryEscape(from), url.QueryEscape(to))
	if err := f.fetch(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &domain.RatesSnapshot{Base: resp.Base, Rates: resp.Rates, AsOf: time.Now().UTC()}, nil
}

// GetHistoricalRates fetches the full series for the closed date range.
func (f *Frankfurter) GetHistoricalRates(ctx context.Context, base string, start, end time.Time) (*domain.HistoricalSeries, error) {
	var resp historicalResponse
	path := fmt.Sprintf("%s..%s?base=%s",
		start.Format("2006-01-02"), end.Format("2006-01-02"), url.QueryEscape(base))
	if err := f.fetch(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &domain.HistoricalSeries{Base: resp.Base, RatesByDate: resp.Rates}, nil
}

// fetch runs one logical GET under the resilience policy and decodes the
// JSON body into out.
func (f *Frankfurter) fetch(ctx context.Context, path string, out any) error {
	err := f.policy.Do(ctx, func(ctx context.Context) error {
		return f.fetchOnce(ctx, path, out)
	})
	if f.metrics != nil {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		f.metrics.UpstreamRequestsTotal.WithLabelValues(FrankfurterName, outcome).Inc()
	}
	return err
}

func (f *Frankfurter) fetchOnce(ctx context.Context, path string, out any) error {
	reqURL := f.baseURL + "/" + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamRequestInvalid, err)
	}
	req.Header.Set("Accept", "application/json")

	correlationID := correlation.From(ctx)
	if correlationID != "" {
		req.Header.Set(correlation.Header, correlationID)
	}
	f.logger.Info("calling Frankfurter API", "url", reqURL, "correlation_id", correlationID)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		// Covers connection failures and the client timeout.
		return resilience.Transient(fmt.Errorf("frankfurter request failed: %w", err))
	}
	defer resp.Body.Close() //nolint:errcheck

	f.logger.Info("Frankfurter API response",
		"url", reqURL, "status", resp.StatusCode, "correlation_id", correlationID)

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return resilience.Transient(fmt.Errorf("frankfurter returned status %d", resp.StatusCode))
	case resp.StatusCode >= http.StatusBadRequest:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamRequestInvalid, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamResponseMalformed, err)
	}
	return nil
}
