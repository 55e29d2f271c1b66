package currency

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	infracache "github.com/amirasaad/currency-converter/infra/cache"
	"github.com/amirasaad/currency-converter/pkg/config"
	"github.com/amirasaad/currency-converter/pkg/domain"
	"github.com/amirasaad/currency-converter/pkg/provider"
	authsvc "github.com/amirasaad/currency-converter/pkg/service/auth"
	currencysvc "github.com/amirasaad/currency-converter/pkg/service/currency"
)

type stubProvider struct {
	snapshot *domain.RatesSnapshot
	series   *domain.HistoricalSeries
	err      error
}

func (s *stubProvider) Name() string { return "frankfurter" }

func (s *stubProvider) GetLatestRates(ctx context.Context, base string) (*domain.RatesSnapshot, error) {
	return s.snapshot, s.err
}

func (s *stubProvider) GetRate(ctx context.Context, from, to string) (*domain.RatesSnapshot, error) {
	return s.snapshot, s.err
}

func (s *stubProvider) GetHistoricalRates(ctx context.Context, base string, start, end time.Time) (*domain.HistoricalSeries, error) {
	return s.series, s.err
}

var testJwtCfg = &config.Jwt{Secret: "test-secret", Expiry: time.Hour}

func newTestApp(t *testing.T, p *stubProvider) *fiber.App {
	t.Helper()
	svc := currencysvc.New(provider.NewRegistry(p), infracache.NewMemoryCache(), time.Minute, nil, nil)

	app := fiber.New()
	Routes(app, svc, testJwtCfg)
	return app
}

func tokenFor(t *testing.T, role string) string {
	t.Helper()
	svc := authsvc.New(nil, testJwtCfg, nil)
	token, err := svc.GenerateToken(&config.User{Username: "tester", Role: role})
	require.NoError(t, err)
	return token
}

func get(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestLatestRates_Success(t *testing.T) {
	app := newTestApp(t, &stubProvider{
		snapshot: &domain.RatesSnapshot{Base: "USD", Rates: map[string]float64{"EUR": 0.9}},
	})

	resp := get(t, app, "/api/v1/currency/latest?baseCurrency=USD", tokenFor(t, "admin"))
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data domain.RatesSnapshot `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, "USD", envelope.Data.Base)
	assert.Equal(t, 0.9, envelope.Data.Rates["EUR"])
}

func TestLatestRates_RequiresToken(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	resp := get(t, app, "/api/v1/currency/latest?baseCurrency=USD", "")
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLatestRates_AdminOnly(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	resp := get(t, app, "/api/v1/currency/latest?baseCurrency=USD", tokenFor(t, "user"))
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestLatestRates_ValidatesBaseCurrency(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	tests := []struct {
		name string
		path string
	}{
		{name: "missing", path: "/api/v1/currency/latest"},
		{name: "too long", path: "/api/v1/currency/latest?baseCurrency=USDX"},
		{name: "not alphabetic", path: "/api/v1/currency/latest?baseCurrency=U5D"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, app, tt.path, tokenFor(t, "admin"))
			defer resp.Body.Close() //nolint:errcheck
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestLatestRates_UnknownProvider(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	resp := get(t, app, "/api/v1/currency/latest?baseCurrency=USD&provider=otherprovider", tokenFor(t, "admin"))
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestConvert_Success(t *testing.T) {
	app := newTestApp(t, &stubProvider{
		snapshot: &domain.RatesSnapshot{Base: "USD", Rates: map[string]float64{"EUR": 0.9}},
	})

	resp := get(t, app, "/api/v1/currency/convert?from=USD&to=EUR&amount=100", tokenFor(t, "user"))
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data domain.ConversionResult `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.True(t, envelope.Data.ConvertedAmount.Equal(decimal.NewFromInt(90)),
		"got %s", envelope.Data.ConvertedAmount)
}

func TestConvert_InvalidAmount(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	tests := []struct {
		name string
		path string
	}{
		{name: "zero", path: "/api/v1/currency/convert?from=USD&to=EUR&amount=0"},
		{name: "negative", path: "/api/v1/currency/convert?from=USD&to=EUR&amount=-5"},
		{name: "not a number", path: "/api/v1/currency/convert?from=USD&to=EUR&amount=abc"},
		{name: "missing", path: "/api/v1/currency/convert?from=USD&to=EUR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, app, tt.path, tokenFor(t, "user"))
			defer resp.Body.Close() //nolint:errcheck
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestConvert_BlockedCurrency(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	resp := get(t, app, "/api/v1/currency/convert?from=TRY&to=USD&amount=10", tokenFor(t, "user"))
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestConvert_UpstreamUnavailable(t *testing.T) {
	app := newTestApp(t, &stubProvider{err: domain.ErrUpstreamUnavailable})

	resp := get(t, app, "/api/v1/currency/convert?from=USD&to=EUR&amount=10", tokenFor(t, "admin"))
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}

func TestHistoricalRates_Success(t *testing.T) {
	app := newTestApp(t, &stubProvider{
		series: &domain.HistoricalSeries{
			Base: "USD",
			RatesByDate: map[string]map[string]float64{
				"2020-01-01": {"EUR": 0.9},
				"2020-01-02": {"EUR": 0.91},
				"2020-01-03": {"EUR": 0.92},
			},
		},
	})

	resp := get(t, app,
		"/api/v1/currency/historical?baseCurrency=USD&startDate=2020-01-01&endDate=2020-01-03&page=1&pageSize=2",
		tokenFor(t, "admin"))
	defer resp.Body.Close() //nolint:errcheck
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data domain.PagedHistoricalRates `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	assert.Equal(t, 3, envelope.Data.TotalRecords)
	assert.Equal(t, 2, envelope.Data.TotalPages)
	assert.Contains(t, envelope.Data.Rates, "2020-01-01")
	assert.Contains(t, envelope.Data.Rates, "2020-01-02")
	assert.NotContains(t, envelope.Data.Rates, "2020-01-03")
}

func TestHistoricalRates_Validation(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	tests := []struct {
		name string
		path string
	}{
		{name: "missing dates", path: "/api/v1/currency/historical?baseCurrency=USD"},
		{name: "bad date format", path: "/api/v1/currency/historical?baseCurrency=USD&startDate=01-01-2020&endDate=2020-01-31"},
		{name: "start after end", path: "/api/v1/currency/historical?baseCurrency=USD&startDate=2020-02-01&endDate=2020-01-01"},
		{name: "negative page", path: "/api/v1/currency/historical?baseCurrency=USD&startDate=2020-01-01&endDate=2020-01-31&page=-1&pageSize=5"},
		{name: "negative page size", path: "/api/v1/currency/historical?baseCurrency=USD&startDate=2020-01-01&endDate=2020-01-31&pageSize=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := get(t, app, tt.path, tokenFor(t, "admin"))
			defer resp.Body.Close() //nolint:errcheck
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestHistoricalRates_UserForbidden(t *testing.T) {
	app := newTestApp(t, &stubProvider{})

	resp := get(t, app,
		"/api/v1/currency/historical?baseCurrency=USD&startDate=2020-01-01&endDate=2020-01-31",
		tokenFor(t, "user"))
	defer resp.Body.Close() //nolint:errcheck
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
