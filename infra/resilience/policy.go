// Package resilience wraps outbound upstream calls in a bounded retry with
// exponential backoff and a shared circuit breaker. The breaker sits inside
// the retry loop, so every attempt is individually gated: once it opens
// mid-sequence the remaining attempts fail fast instead of waiting out
// further backoff.
package resilience

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/sony/gobreaker"

	"github.com/amirasaad/currency-converter/infra/metrics"
	"github.com/amirasaad/currency-converter/pkg/domain"
)

// Config tunes the retry and breaker behaviour for one upstream target.
type Config struct {
	MaxRetries      uint64        // additional attempts after the first
	InitialBackoff  time.Duration // delay before the first retry, doubled each attempt
	BreakerFailures uint32        // consecutive transient failures before the breaker opens
	BreakerCooldown time.Duration // how long the breaker stays open
}

// DefaultConfig mirrors the upstream policy constants: 3 retries at
// 2s/4s/8s, breaker opens after 3 consecutive transient failures for 30s.
func DefaultConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialBackoff:  2 * time.Second,
		BreakerFailures: 3,
		BreakerCooldown: 30 * time.Second,
	}
}

// Policy guards all calls to a single upstream target. Breaker state is
// shared across every caller of the same Policy instance, process-wide.
type Policy struct {
	name    string
	cfg     Config
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New builds a policy for the named upstream. metrics may be nil.
func New(name string, cfg Config, logger *slog.Logger, m *metrics.Metrics) *Policy {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Policy{name: name, cfg: cfg, logger: logger, metrics: m}
	p.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1, // a single probe in half-open
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		// Only transient failures count toward tripping; a 4xx or a
		// malformed body says nothing about upstream health.
		IsSuccessful: func(err error) bool {
			return err == nil || !IsTransient(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"upstream", name, "from", from.String(), "to", to.String())
			if m != nil {
				m.BreakerState.WithLabelValues(name).Set(stateValue(to))
			}
		},
	})
	return p
}

// State reports the breaker's current state, for diagnostics and tests.
func (p *Policy) State() gobreaker.State {
	return p.breaker.State()
}

// Do runs op under the retry and breaker policy. Transient failures are
// retried up to cfg.MaxRetries times and surface as ErrUpstreamUnavailable
// when exhausted; a breaker-open failure surfaces immediately as
// ErrCircuitOpen; everything else passes through unmodified.
func (p *Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempt := func() error {
		_, err := p.breaker.Execute(func() (any, error) {
			return nil, op(ctx)
		})
		switch {
		case err == nil:
			return nil
		case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
			return backoff.Permanent(fmt.Errorf("%s: %w", p.name, domain.ErrCircuitOpen))
		case IsTransient(err):
			return err
		default:
			return backoff.Permanent(err)
		}
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.cfg.InitialBackoff
	bo.RandomizationFactor = 0
	bo.Multiplier = 2
	bo.MaxInterval = p.cfg.InitialBackoff << p.cfg.MaxRetries
	bo.MaxElapsedTime = 0

	notify := func(err error, wait time.Duration) {
		p.logger.Warn("retrying upstream call",
			"upstream", p.name, "wait", wait, "error", err)
		if p.metrics != nil {
			p.metrics.UpstreamRetriesTotal.WithLabelValues(p.name).Inc()
		}
	}

	err := backoff.RetryNotify(attempt,
		backoff.WithContext(backoff.WithMaxRetries(bo, p.cfg.MaxRetries), ctx),
		notify)
	if err == nil {
		return nil
	}
	if IsTransient(err) {
		return fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	return err
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
