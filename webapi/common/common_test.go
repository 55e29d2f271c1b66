package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/amirasaad/currency-converter/pkg/domain"
)

func TestErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "provider not found", err: domain.ErrProviderNotFound, want: fiber.StatusNotFound},
		{name: "currency not supported", err: domain.ErrCurrencyNotSupported, want: fiber.StatusBadRequest},
		{name: "no rates found", err: domain.ErrNoRatesFound, want: fiber.StatusNotFound},
		{name: "no historical data", err: domain.ErrNoHistoricalDataFound, want: fiber.StatusNotFound},
		{name: "upstream unavailable", err: domain.ErrUpstreamUnavailable, want: fiber.StatusServiceUnavailable},
		{name: "circuit open maps like unavailable", err: domain.ErrCircuitOpen, want: fiber.StatusServiceUnavailable},
		{name: "upstream request invalid", err: domain.ErrUpstreamRequestInvalid, want: fiber.StatusBadRequest},
		{name: "upstream response malformed", err: domain.ErrUpstreamResponseMalformed, want: fiber.StatusBadGateway},
		{name: "wrapped error keeps its kind", err: fmt.Errorf("context: %w", domain.ErrNoRatesFound), want: fiber.StatusNotFound},
		{name: "unknown error", err: errors.New("boom"), want: fiber.StatusInternalServerError},
		{name: "nil error", err: nil, want: fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorToStatusCode(tt.err))
		})
	}
}
