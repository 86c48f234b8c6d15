package ports

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with TTLs. Implementations must
// report a missing or expired key as (nil, false, nil); errors are reserved
// for the store being unreachable.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// DeleteByPrefix removes every key starting with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error
}
