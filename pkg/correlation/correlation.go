// Package correlation carries the per-request correlation identifier
// through the call chain explicitly, via context.Context. Absence of an ID
// is legal everywhere; consumers must treat an empty string as "none".
package correlation

import "context"

// Header is the HTTP header used to carry the correlation ID, both on
// responses and on outbound upstream calls.
const Header = "X-Correlation-Id"

type ctxKey struct{}

// With returns a context carrying the given correlation ID.
func With(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// From returns the correlation ID carried by ctx, or "" when there is none.
func From(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
