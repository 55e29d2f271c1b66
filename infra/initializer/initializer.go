// Package initializer assembles the application dependencies: logging,
// metrics, the rate cache, and the provider registry with its resilience
// policies.
package initializer

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	infracache "github.com/amirasaad/currency-converter/infra/cache"
	"github.com/amirasaad/currency-converter/infra/metrics"
	infraprovider "github.com/amirasaad/currency-converter/infra/provider"
	"github.com/amirasaad/currency-converter/infra/resilience"
	"github.com/amirasaad/currency-converter/pkg/app"
	"github.com/amirasaad/currency-converter/pkg/config"
	"github.com/amirasaad/currency-converter/pkg/provider"
)

// InitializeDependencies initializes all the application dependencies.
func InitializeDependencies(cfg *config.App) (*app.Deps, error) {
	deps := &app.Deps{Config: cfg}

	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	prom := prometheus.NewRegistry()
	prom.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Prom = prom
	deps.Metrics = metrics.New(prom)

	deps.Cache = infracache.NewMemoryCache()

	frankfurterPolicy := resilience.New(
		infraprovider.FrankfurterName,
		resilience.Config{
			MaxRetries:      cfg.Resilience.MaxRetries,
			InitialBackoff:  cfg.Resilience.InitialBackoff,
			BreakerFailures: cfg.Resilience.BreakerFailures,
			BreakerCooldown: cfg.Resilience.BreakerCooldown,
		},
		logger,
		deps.Metrics,
	)
	frankfurter := infraprovider.NewFrankfurter(
		*cfg.Providers.Frankfurter, frankfurterPolicy, logger, deps.Metrics)
	deps.Registry = provider.NewRegistry(frankfurter)

	users, err := config.ParseUsers(cfg.Auth.Users)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configured users: %w", err)
	}
	deps.Users = users

	logger.Info("dependencies initialized",
		"providers", deps.Registry.Names(),
		"users", len(users),
	)
	return deps, nil
}
