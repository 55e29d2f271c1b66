// Package app builds the Fiber application from its assembled dependencies.
package app

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/amirasaad/currency-converter/infra/metrics"
	"github.com/amirasaad/currency-converter/pkg/cache"
	"github.com/amirasaad/currency-converter/pkg/config"
	"github.com/amirasaad/currency-converter/pkg/provider"
	authsvc "github.com/amirasaad/currency-converter/pkg/service/auth"
	currencysvc "github.com/amirasaad/currency-converter/pkg/service/currency"
	"github.com/amirasaad/currency-converter/webapi/auth"
	"github.com/amirasaad/currency-converter/webapi/common"
	currencywebapi "github.com/amirasaad/currency-converter/webapi/currency"
	"github.com/amirasaad/currency-converter/webapi/middleware"
)

// Deps carries everything New needs to stand up the HTTP app.
type Deps struct {
	Config   *config.App
	Logger   *slog.Logger
	Registry *provider.Registry
	Cache    cache.RateCache
	Metrics  *metrics.Metrics
	Prom     *prometheus.Registry
	Users    []config.User
}

// New builds all services, registers middleware and routes, and returns
// the Fiber app.
func New(deps *Deps) *fiber.App {
	currencySvc := currencysvc.New(
		deps.Registry, deps.Cache, deps.Config.RateCache.TTL, deps.Logger, deps.Metrics)
	authSvc := authsvc.New(deps.Users, deps.Config.Auth.Jwt, deps.Logger)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ProblemDetailsJSON(c, "Internal Server Error", err)
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        deps.Config.RateLimit.MaxRequests,
		Expiration: deps.Config.RateLimit.Window,
		Next: func(c *fiber.Ctx) bool {
			return c.Path() == "/metrics"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			// Use X-Forwarded-For header if available (for load balancers/proxies)
			// Fall back to X-Real-IP, then to direct IP
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				// Take the first IP in the chain
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ProblemDetailsJSON(c, "Too Many Requests",
				errors.New("rate limit exceeded"), fiber.StatusTooManyRequests)
		},
	}))
	app.Use(recover.New())
	app.Use(middleware.RequestLogger(deps.Logger, deps.Metrics))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("App is working! 🚀")
	})
	if deps.Prom != nil {
		app.Get("/metrics", adaptor.HTTPHandler(
			promhttp.HandlerFor(deps.Prom, promhttp.HandlerOpts{})))
	}

	auth.Routes(app, authSvc)
	currencywebapi.Routes(app, currencySvc, deps.Config.Auth.Jwt)
	return app
}
