package session

import (
	"context"
	"time"
)

// NonceStore records redirect-flow state nonces so each one is accepted at
// most once. Implementations must be safe across service instances.
type NonceStore interface {
	// Consume marks nonce as used for ttl. It reports false if the nonce
	// had already been consumed.
	Consume(ctx context.Context, nonce string, ttl time.Duration) (bool, error)
}
