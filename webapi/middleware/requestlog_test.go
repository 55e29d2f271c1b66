package middleware

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amirasaad/currency-converter/pkg/correlation"
)

func newLoggedApp() (*fiber.App, *string) {
	var seen string
	app := fiber.New()
	app.Use(RequestLogger(nil, nil))
	app.Get("/ping", func(c *fiber.Ctx) error {
		seen = correlation.From(c.UserContext())
		return c.SendString("pong")
	})
	return app, &seen
}

func TestRequestLogger_AssignsCorrelationID(t *testing.T) {
	app, seen := newLoggedApp()

	req, err := http.NewRequest(http.MethodGet, "/ping", nil)
	require.NoError(t, err)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	id := resp.Header.Get(correlation.Header)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, *seen, "handler context carries the same ID as the response header")
}

func TestRequestLogger_ReusesInboundCorrelationID(t *testing.T) {
	app, seen := newLoggedApp()

	req, err := http.NewRequest(http.MethodGet, "/ping", nil)
	require.NoError(t, err)
	req.Header.Set(correlation.Header, "client-supplied-id")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	assert.Equal(t, "client-supplied-id", resp.Header.Get(correlation.Header))
	assert.Equal(t, "client-supplied-id", *seen)
}
