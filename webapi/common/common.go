// Package common holds the shared HTTP response envelope, the RFC 9457
// problem-details error body and the request binding helpers.
package common

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/amirasaad/currency-converter/pkg/domain"
)

var validate = validator.New()

// Response defines the standard API response structure for success cases.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// ProblemDetails follows RFC 9457 Problem Details for HTTP APIs.
type ProblemDetails struct {
	Type     string `json:"type,omitempty"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
	Errors   any    `json:"errors,omitempty"`
}

// SuccessResponseJSON writes the success envelope.
func SuccessResponseJSON(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(Response{
		Status:  status,
		Message: message,
		Data:    data,
	})
}

// ProblemDetailsJSON writes a problem+json response. opts may carry a
// detail string and/or an explicit status int, in any order; without an
// explicit status the error is mapped through ErrorToStatusCode.
func ProblemDetailsJSON(c *fiber.Ctx, title string, err error, opts ...any) error {
	status := 0
	detail := ""
	for _, opt := range opts {
		switch v := opt.(type) {
		case int:
			status = v
		case string:
			detail = v
		}
	}
	if status == 0 {
		status = ErrorToStatusCode(err)
	}
	if detail == "" && err != nil {
		detail = err.Error()
	}

	pd := ProblemDetails{
		Type:     "about:blank",
		Title:    title,
		Status:   status,
		Detail:   detail,
		Instance: c.OriginalURL(),
	}
	c.Set(fiber.HeaderContentType, "application/problem+json")
	return c.Status(status).JSON(pd)
}

// ErrorToStatusCode maps domain errors to HTTP status codes: not-found,
// bad-request and service-unavailable kinds per the error taxonomy.
func ErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrProviderNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrCurrencyNotSupported):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNoRatesFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrNoHistoricalDataFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrUpstreamRequestInvalid):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUpstreamResponseMalformed):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// BindAndValidate parses the request body into T and validates it.
// On failure the problem response has already been written and the
// returned pointer is nil.
func BindAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.BodyParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid request body", err, fiber.StatusBadRequest)
	}
	if err := validate.Struct(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return &input, nil
}

// BindQueryAndValidate parses the query string into T and validates it.
func BindQueryAndValidate[T any](c *fiber.Ctx) (*T, error) {
	var input T
	if err := c.QueryParser(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Invalid query parameters", err, fiber.StatusBadRequest)
	}
	if err := validate.Struct(&input); err != nil {
		return nil, ProblemDetailsJSON(c, "Validation failed", err, fiber.StatusBadRequest)
	}
	return &input, nil
}
