// Package currency exposes the exchange-rate endpoints: latest rates,
// conversion and paginated historical series. Boundary validation lives
// here; the service below assumes normalized, positive input.
package currency

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/amirasaad/currency-converter/pkg/config"
	"github.com/amirasaad/currency-converter/pkg/provider"
	currencysvc "github.com/amirasaad/currency-converter/pkg/service/currency"
	"github.com/amirasaad/currency-converter/webapi/common"
	"github.com/amirasaad/currency-converter/webapi/middleware"
)

const (
	defaultPage     = 1
	defaultPageSize = 5
)

// Routes registers the currency endpoints. Latest and historical rates are
// admin-only; conversion is open to both roles.
func Routes(app *fiber.App, svc *currencysvc.Service, jwtCfg *config.Jwt) {
	group := app.Group("/api/v1/currency", middleware.JwtProtected(jwtCfg))

	group.Get("/latest", middleware.RequireRoles("admin"), LatestRates(svc))
	group.Get("/convert", middleware.RequireRoles("admin", "user"), Convert(svc))
	group.Get("/historical", middleware.RequireRoles("admin"), HistoricalRates(svc))
}

// LatestRates returns the latest rate table for a base currency.
func LatestRates(svc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query, err := common.BindQueryAndValidate[LatestRatesQuery](c)
		if query == nil {
			return err
		}

		snap, err := svc.GetLatestExchangeRates(c.UserContext(), providerOrDefault(query.Provider), query.BaseCurrency)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch latest rates", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Latest rates fetched successfully", snap)
	}
}

// Convert converts an amount between two currencies.
func Convert(svc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query, err := common.BindQueryAndValidate[ConvertQuery](c)
		if query == nil {
			return err
		}

		amount, err := decimal.NewFromString(query.Amount)
		if err != nil || !amount.IsPositive() {
			return common.ProblemDetailsJSON(c, "Invalid amount", nil,
				"amount must be a number greater than zero", fiber.StatusBadRequest)
		}

		result, err := svc.ConvertCurrency(c.UserContext(), providerOrDefault(query.Provider), query.From, query.To, amount)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to convert currency", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Currency converted successfully", result)
	}
}

// HistoricalRates returns one page of a historical rate series.
func HistoricalRates(svc *currencysvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		query, err := common.BindQueryAndValidate[HistoricalQuery](c)
		if query == nil {
			return err
		}

		start, err := time.Parse("2006-01-02", query.StartDate)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid start date", err, fiber.StatusBadRequest)
		}
		end, err := time.Parse("2006-01-02", query.EndDate)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Invalid end date", err, fiber.StatusBadRequest)
		}
		if start.After(end) {
			return common.ProblemDetailsJSON(c, "Invalid date range", nil,
				"start date must be before end date", fiber.StatusBadRequest)
		}

		page := query.Page
		if page == 0 {
			page = defaultPage
		}
		pageSize := query.PageSize
		if pageSize == 0 {
			pageSize = defaultPageSize
		}

		result, err := svc.GetHistoricalExchangeRates(c.UserContext(),
			providerOrDefault(query.Provider), query.BaseCurrency, start, end, page, pageSize)
		if err != nil {
			return common.ProblemDetailsJSON(c, "Failed to fetch historical rates", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Historical rates fetched successfully", result)
	}
}

func providerOrDefault(name string) string {
	if name == "" {
		return provider.DefaultProviderName
	}
	return name
}
