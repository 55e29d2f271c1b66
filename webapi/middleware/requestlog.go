package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/amirasaad/currency-converter/infra/metrics"
	"github.com/amirasaad/currency-converter/pkg/correlation"
)

// RequestLogger assigns every request a correlation ID, exposes it on the
// response and the request context, and writes one structured log line per
// request with the status and the elapsed time. metrics may be nil.
func RequestLogger(logger *slog.Logger, m *metrics.Metrics) fiber.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(c *fiber.Ctx) error {
		started := time.Now()

		correlationID := c.Get(correlation.Header)
		if correlationID == "" {
			correlationID = uuid.NewString()
		}
		c.Set(correlation.Header, correlationID)
		c.SetUserContext(correlation.With(c.UserContext(), correlationID))

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		elapsed := time.Since(started)

		logger.Info("request completed",
			"correlation_id", correlationID,
			"client_ip", c.IP(),
			"client_id", TokenUsername(c),
			"method", c.Method(),
			"path", c.Path(),
			"status", status,
			"elapsed_ms", elapsed.Milliseconds(),
		)

		if m != nil {
			m.HTTPRequestsTotal.WithLabelValues(c.Path(), c.Method(), strconv.Itoa(status)).Inc()
			m.HTTPRequestDuration.WithLabelValues(c.Path(), c.Method()).Observe(elapsed.Seconds())
		}
		return err
	}
}
