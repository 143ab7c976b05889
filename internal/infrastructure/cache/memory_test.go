package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreAcquireRelease(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	ok, err := ms.AcquireLock(ctx, "process:abc", time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected first acquire to succeed, ok=%v err=%v", ok, err)
	}

	ok, err = ms.AcquireLock(ctx, "process:abc", time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected second acquire to fail while lock held")
	}

	if err := ms.ReleaseLock(ctx, "process:abc"); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	ok, _ = ms.AcquireLock(ctx, "process:abc", time.Minute)
	if !ok {
		t.Fatalf("expected acquire to succeed after release")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ms := NewMemoryStore()
	ctx := context.Background()

	ok, _ := ms.AcquireLock(ctx, "process:xyz", 10*time.Millisecond)
	if !ok {
		t.Fatalf("expected acquire to succeed")
	}

	time.Sleep(20 * time.Millisecond)

	ok, _ = ms.AcquireLock(ctx, "process:xyz", time.Minute)
	if !ok {
		t.Fatalf("expected acquire to succeed after ttl expiry")
	}
}
