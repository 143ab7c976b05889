package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process LockStore for development setups without
// Redis. Locks do not survive a restart and are not shared across replicas.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]time.Time
}

// NewMemoryStore creates a new in-memory lock store
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]time.Time),
	}

	// Cleanup goroutine removes expired locks so the map does not grow
	go store.cleanupExpired()

	return store
}

// AcquireLock takes the lock unless an unexpired holder exists
func (ms *MemoryStore) AcquireLock(_ context.Context, key string, ttl time.Duration) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if expiry, exists := ms.items[key]; exists && time.Now().Before(expiry) {
		return false, nil
	}

	ms.items[key] = time.Now().Add(ttl)
	return true, nil
}

// ReleaseLock frees the lock early
func (ms *MemoryStore) ReleaseLock(_ context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
	return nil
}

// Close is a no-op for the in-memory store
func (ms *MemoryStore) Close() error {
	return nil
}

// cleanupExpired periodically removes expired locks
func (ms *MemoryStore) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ms.mu.Lock()
		now := time.Now()
		for key, expiry := range ms.items {
			if now.After(expiry) {
				delete(ms.items, key)
			}
		}
		ms.mu.Unlock()
	}
}
