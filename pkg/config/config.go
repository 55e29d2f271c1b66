// Package config holds the typed application configuration, loaded from
// the environment (optionally seeded from a .env file).
package config

import (
	"fmt"
	"strings"
	"time"
)

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// Auth declares the JWT settings and the static user directory. Users is a
// comma-separated list of username:bcrypt-hash:role triplets; there is no
// user store beyond it.
type Auth struct {
	Jwt   *Jwt   `envconfig:"JWT"`
	Users string `envconfig:"USERS"`
}

// User is one entry of the static user directory.
type User struct {
	Username     string
	PasswordHash string
	Role         string
}

// ParseUsers splits the AUTH_USERS value into user entries.
func ParseUsers(s string) ([]User, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var users []User
	for _, item := range strings.Split(s, ",") {
		parts := strings.SplitN(strings.TrimSpace(item), ":", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid user entry %q, want username:hash:role", item)
		}
		users = append(users, User{Username: parts[0], PasswordHash: parts[1], Role: parts[2]})
	}
	return users, nil
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"10"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Frankfurter struct {
	ApiUrl      string        `envconfig:"API_URL" default:"https://api.frankfurter.app"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"10s"`
}

type Providers struct {
	Frankfurter *Frankfurter `envconfig:"FRANKFURTER"`
}

type RateCache struct {
	TTL time.Duration `envconfig:"TTL" default:"30m"`
}

type Resilience struct {
	MaxRetries      uint64        `envconfig:"MAX_RETRIES" default:"3"`
	InitialBackoff  time.Duration `envconfig:"INITIAL_BACKOFF" default:"2s"`
	BreakerFailures uint32        `envconfig:"BREAKER_FAILURES" default:"3"`
	BreakerCooldown time.Duration `envconfig:"BREAKER_COOLDOWN" default:"30s"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[currency-converter]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env        string      `envconfig:"APP_ENV" default:"development"`
	Server     *Server     `envconfig:"SERVER"`
	Log        *Log        `envconfig:"LOG"`
	Auth       *Auth       `envconfig:"AUTH"`
	RateCache  *RateCache  `envconfig:"RATE_CACHE"`
	Providers  *Providers  `envconfig:"PROVIDER"`
	Resilience *Resilience `envconfig:"RESILIENCE"`
	RateLimit  *RateLimit  `envconfig:"RATE_LIMIT"`
}
