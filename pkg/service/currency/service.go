// Package currency implements the exchange-rate operations: latest rates,
// conversion and paginated historical series. Every operation is a
// read-through against the rate cache; on a miss the provider resolved by
// name does the fetch and the result is memoized for the cache TTL.
package currency

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/amirasaad/currency-converter/infra/metrics"
	"github.com/amirasaad/currency-converter/pkg/cache"
	"github.com/amirasaad/currency-converter/pkg/domain"
	"github.com/amirasaad/currency-converter/pkg/provider"
)

// DefaultCacheTTL is how long any memoized operation result stays valid.
const DefaultCacheTTL = 30 * time.Minute

// blockedCurrencies are excluded from conversion entirely. The check runs
// before any cache or provider access.
var blockedCurrencies = map[string]struct{}{
	"TRY": {},
	"PLN": {},
	"THB": {},
	"MXN": {},
}

// Service orchestrates registry, cache and business policy. It is
// stateless per call; the cache and the providers' breaker state are the
// only shared mutable pieces.
type Service struct {
	registry *provider.Registry
	cache    cache.RateCache
	ttl      time.Duration
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

// New creates the service. A non-positive ttl falls back to
// DefaultCacheTTL; metrics may be nil.
func New(registry *provider.Registry, rateCache cache.RateCache, ttl time.Duration, logger *slog.Logger, m *metrics.Metrics) *Service {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		registry: registry,
		cache:    rateCache,
		ttl:      ttl,
		logger:   logger,
		metrics:  m,
	}
}

// GetLatestExchangeRates returns the latest rate table for base from the
// named provider, memoized under latest|{provider}|{base}.
func (s *Service) GetLatestExchangeRates(ctx context.Context, providerName, base string) (*domain.RatesSnapshot, error) {
	base = strings.ToUpper(base)
	log := s.logger.With("operation", "latest", "provider", providerName, "base", base)

	key := cacheKey("latest", providerName, base)
	if v, ok := s.cacheGet(key, "latest"); ok {
		if snap, ok := v.(*domain.RatesSnapshot); ok {
			log.Debug("latest rates served from cache", "key", key)
			return snap, nil
		}
	}

	p, err := s.registry.Resolve(providerName)
	if err != nil {
		return nil, err
	}

	snap, err := p.GetLatestRates(ctx, base)
	if err != nil {
		log.Error("failed to fetch latest rates", "error", err)
		return nil, err
	}
	if snap == nil || len(snap.Rates) == 0 {
		return nil, fmt.Errorf("%w: base %s", domain.ErrNoRatesFound, base)
	}

	s.cache.Set(key, snap, s.ttl)
	log.Info("latest rates fetched", "currencies", len(snap.Rates))
	return snap, nil
}

// ConvertCurrency converts amount from one currency to another at the
// provider's current rate, rounding to 2 decimal places. Deny-listed
// currencies fail before any cache or provider access. The amount > 0
// invariant is enforced at the caller boundary, not here.
func (s *Service) ConvertCurrency(ctx context.Context, providerName, from, to string, amount decimal.Decimal) (*domain.ConversionResult, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)
	log := s.logger.With("operation", "convert", "provider", providerName, "from", from, "to", to)

	if _, blocked := blockedCurrencies[from]; blocked {
		return nil, fmt.Errorf("%w: %s", domain.ErrCurrencyNotSupported, from)
	}
	if _, blocked := blockedCurrencies[to]; blocked {
		return nil, fmt.Errorf("%w: %s", domain.ErrCurrencyNotSupported, to)
	}

	key := cacheKey("convert", providerName, from, to, amount.String())
	if v, ok := s.cacheGet(key, "convert"); ok {
		if result, ok := v.(*domain.ConversionResult); ok {
			log.Debug("conversion served from cache", "key", key)
			return result, nil
		}
	}

	p, err := s.registry.Resolve(providerName)
	if err != nil {
		return nil, err
	}

	snap, err := p.GetRate(ctx, from, to)
	if err != nil {
		log.Error("failed to fetch conversion rate", "error", err)
		return nil, err
	}
	rate, ok := rateFor(snap, to)
	if !ok {
		return nil, fmt.Errorf("%w: pair %s/%s", domain.ErrNoRatesFound, from, to)
	}

	rateDec := decimal.NewFromFloat(rate)
	result := &domain.ConversionResult{
		From:            from,
		To:              to,
		Amount:          amount,
		Rate:            rateDec,
		ConvertedAmount: amount.Mul(rateDec).Round(2),
	}

	s.cache.Set(key, result, s.ttl)
	log.Info("conversion done", "rate", rate)
	return result, nil
}

// GetHistoricalExchangeRates returns one page of the historical series for
// the date range, dates ascending. The pagination parameters are part of
// the cache key: two pages are two entries, each fetched from the full
// upstream series on first access. A page beyond the range comes back
// empty with TotalPages untouched.
func (s *Service) GetHistoricalExchangeRates(ctx context.Context, providerName, base string, start, end time.Time, page, pageSize int) (*domain.PagedHistoricalRates, error) {
	base = strings.ToUpper(base)
	log := s.logger.With("operation", "historical", "provider", providerName, "base", base,
		"start", start.Format("2006-01-02"), "end", end.Format("2006-01-02"),
		"page", page, "page_size", pageSize)

	key := cacheKey("historical", providerName, base,
		start.Format("2006-01-02"), end.Format("2006-01-02"),
		fmt.Sprint(page), fmt.Sprint(pageSize))
	if v, ok := s.cacheGet(key, "historical"); ok {
		if result, ok := v.(*domain.PagedHistoricalRates); ok {
			log.Debug("historical page served from cache", "key", key)
			return result, nil
		}
	}

	p, err := s.registry.Resolve(providerName)
	if err != nil {
		return nil, err
	}

	series, err := p.GetHistoricalRates(ctx, base, start, end)
	if err != nil {
		log.Error("failed to fetch historical rates", "error", err)
		return nil, err
	}
	if series == nil || len(series.RatesByDate) == 0 {
		return nil, fmt.Errorf("%w: base %s", domain.ErrNoHistoricalDataFound, base)
	}

	result := paginate(series, page, pageSize)
	s.cache.Set(key, result, s.ttl)
	log.Info("historical page built", "total_records", result.TotalRecords, "total_pages", result.TotalPages)
	return result, nil
}

// cacheGet wraps the cache read with hit/miss accounting.
func (s *Service) cacheGet(key, operation string) (any, bool) {
	v, ok := s.cache.Get(key)
	if s.metrics != nil {
		if ok {
			s.metrics.CacheHitsTotal.WithLabelValues(operation).Inc()
		} else {
			s.metrics.CacheMissesTotal.WithLabelValues(operation).Inc()
		}
	}
	return v, ok
}

// cacheKey builds the memoization key from the operation, the provider and
// the normalized parameters. The delimiter keeps distinct parameter tuples
// from ever colliding.
func cacheKey(operation, providerName string, params ...string) string {
	parts := make([]string, 0, len(params)+2)
	parts = append(parts, operation, strings.ToLower(providerName))
	for _, p := range params {
		parts = append(parts, strings.ToUpper(p))
	}
	return strings.Join(parts, "|")
}

// rateFor pulls the rate for code out of a snapshot.
func rateFor(snap *domain.RatesSnapshot, code string) (float64, bool) {
	if snap == nil || snap.Rates == nil {
		return 0, false
	}
	rate, ok := snap.Rates[code]
	return rate, ok
}

// paginate sorts the series dates ascending and slices out the requested
// page.
func paginate(series *domain.HistoricalSeries, page, pageSize int) *domain.PagedHistoricalRates {
	dates := make([]string, 0, len(series.RatesByDate))
	for date := range series.RatesByDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	total := len(dates)
	totalPages := (total + pageSize - 1) / pageSize

	lo := (page - 1) * pageSize
	if lo > total {
		lo = total
	}
	hi := lo + pageSize
	if hi > total {
		hi = total
	}

	pageRates := make(map[string]map[string]float64, hi-lo)
	for _, date := range dates[lo:hi] {
		pageRates[date] = series.RatesByDate[date]
	}

	return &domain.PagedHistoricalRates{
		Base:         series.Base,
		Rates:        pageRates,
		TotalRecords: total,
		Page:         page,
		PageSize:     pageSize,
		TotalPages:   totalPages,
	}
}
