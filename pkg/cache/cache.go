// Package cache defines the memoization port the currency service reads and
// writes through. Keys are built by the caller from the operation name, the
// provider name and the normalized request parameters, so equal request
// shapes always land on the same entry.
package cache

import "time"

// RateCache memoizes provider responses for a fixed time-to-live. Both
// operations must be safe under concurrent use and must not block the
// caller beyond the internal lock. An expired entry behaves exactly like a
// miss; Get never returns stale data.
type RateCache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
}
