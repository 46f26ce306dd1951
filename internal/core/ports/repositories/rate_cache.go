package repositories

import (
	"context"
	"time"
)

// RateCache defines a TTL-bounded key/value store used both for raw provider
// rate snapshots and for previously computed conversion results. Values are
// opaque serialized payloads; the store guarantees nothing beyond individual
// get/set atomicity.
type RateCache interface {
	// Get retrieves the value stored under key. A miss (absent or expired)
	// returns (nil, nil).
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the given time-to-live.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a single key.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry. Invalidation is all-or-nothing; there is no
	// partial invalidation by currency.
	Clear(ctx context.Context) error
}
