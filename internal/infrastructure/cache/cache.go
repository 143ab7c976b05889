package cache

import (
	"context"
	"time"
)

// LockStore hands out short-lived advisory locks. The processing pipeline
// takes one per session so concurrent /process calls conflict instead of
// racing each other.
type LockStore interface {
	// AcquireLock takes the lock if it is free, returning false when another
	// holder already has it. The lock self-expires after ttl.
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// ReleaseLock frees the lock early.
	ReleaseLock(ctx context.Context, key string) error

	// Close releases backing resources.
	Close() error
}
