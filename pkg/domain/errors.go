package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrProviderNotFound indicates the requested provider name is not
	// registered. Resolution fails before any cache or network access.
	ErrProviderNotFound = errors.New("exchange rate provider not found")

	// ErrCurrencyNotSupported indicates a deny-listed currency was used in
	// a conversion request.
	ErrCurrencyNotSupported = errors.New("currency not supported")

	// ErrNoRatesFound indicates the upstream answered but carried no rate
	// mapping.
	ErrNoRatesFound = errors.New("no exchange rates found")

	// ErrNoHistoricalDataFound indicates an empty historical series for the
	// requested date range.
	ErrNoHistoricalDataFound = errors.New("no historical rates found")

	// ErrUpstreamUnavailable indicates the upstream could not be reached:
	// either the retry budget was exhausted or the circuit breaker is open.
	ErrUpstreamUnavailable = errors.New("upstream provider unavailable")

	// ErrCircuitOpen is the circuit-open flavour of ErrUpstreamUnavailable.
	// errors.Is(err, ErrUpstreamUnavailable) holds for it as well.
	ErrCircuitOpen = fmt.Errorf("%w: circuit open", ErrUpstreamUnavailable)

	// ErrUpstreamRequestInvalid indicates a non-retryable 4xx answer.
	ErrUpstreamRequestInvalid = errors.New("upstream rejected the request")

	// ErrUpstreamResponseMalformed indicates an undecodable upstream body.
	ErrUpstreamResponseMalformed = errors.New("upstream response malformed")
)
