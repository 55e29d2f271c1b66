package config

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Load reads the application configuration from the environment, seeded
// from the given .env file paths (first one that loads wins). Missing .env
// files are not an error; the process environment always applies.
func Load(envFilePath ...string) (*App, error) {
	logger := slog.Default()

	loaded := false
	for _, path := range envFilePath {
		if err := godotenv.Load(path); err == nil {
			logger.Info("environment loaded from file", "path", path)
			loaded = true
			break
		}
	}
	if !loaded {
		if err := godotenv.Load(); err != nil {
			logger.Warn("no .env file found, using system environment variables")
		}
	}

	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	logger.Info("app config loaded",
		"env", cfg.Env,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
		"jwt_secret", maskValue(cfg.Auth.Jwt.Secret),
		"jwt_expiry", cfg.Auth.Jwt.Expiry,
		"cache_ttl", cfg.RateCache.TTL,
		"frankfurter_api_url", cfg.Providers.Frankfurter.ApiUrl,
	)
	return &cfg, nil
}

func maskValue(v string) string {
	if len(v) <= 6 {
		return "****"
	}
	return v[:3] + "****" + v[len(v)-3:]
}
