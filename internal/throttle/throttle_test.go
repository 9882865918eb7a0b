package throttle

import (
	"context"
	"testing"
	"time"
)

func TestThrottlerDeniesBeyondQuota(t *testing.T) {
	store := NewMemoryStore()
	defer store.Stop()

	th := New(store)
	th.SetQuota(ScopeReviewCreate, 3, time.Minute)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		ok, err := th.Allow(ctx, ScopeReviewCreate, "user:1")
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatalf("request %d should be within quota", i+1)
		}
	}
	ok, err := th.Allow(ctx, ScopeReviewCreate, "user:1")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("fourth request should exceed the quota")
	}
}

func TestThrottlerKeysAreIndependentPerCallerAndScope(t *testing.T) {
	store := NewMemoryStore()
	defer store.Stop()

	th := New(store)
	th.SetQuota(ScopeReviewCreate, 1, time.Minute)
	th.SetQuota(ScopeReviewDetail, 1, time.Minute)

	ctx := context.Background()
	if ok, _ := th.Allow(ctx, ScopeReviewCreate, "user:1"); !ok {
		t.Fatal("first create for user 1 should be allowed")
	}
	if ok, _ := th.Allow(ctx, ScopeReviewCreate, "user:1"); ok {
		t.Error("second create for user 1 should be denied")
	}
	// A different caller and a different scope both have fresh counters.
	if ok, _ := th.Allow(ctx, ScopeReviewCreate, "user:2"); !ok {
		t.Error("user 2 should not share user 1's counter")
	}
	if ok, _ := th.Allow(ctx, ScopeReviewDetail, "user:1"); !ok {
		t.Error("detail scope should not share the create scope's counter")
	}
}

func TestThrottlerUnconfiguredScopeIsUnlimited(t *testing.T) {
	store := NewMemoryStore()
	defer store.Stop()

	th := New(store)

	for i := 0; i < 100; i++ {
		ok, err := th.Allow(context.Background(), ScopeReviewList, "user:1")
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatal("scope without a quota should never deny")
		}
	}
}

func TestMemoryStoreWindowExpiryResetsCounter(t *testing.T) {
	store := NewMemoryStore()
	defer store.Stop()

	ctx := context.Background()
	if ok, _ := store.Allow(ctx, "k", 1, 30*time.Millisecond); !ok {
		t.Fatal("first request should be allowed")
	}
	if ok, _ := store.Allow(ctx, "k", 1, 30*time.Millisecond); ok {
		t.Fatal("second request in the same window should be denied")
	}

	time.Sleep(60 * time.Millisecond)

	if ok, _ := store.Allow(ctx, "k", 1, 30*time.Millisecond); !ok {
		t.Error("counter should reset after the window expires")
	}
}

func TestMemoryStoreDoesNotExtendWindowOnHit(t *testing.T) {
	store := NewMemoryStore()
	defer store.Stop()

	ctx := context.Background()
	window := 50 * time.Millisecond
	store.Allow(ctx, "k", 1, window)

	// Keep hitting the counter past the original window. If hits extended
	// the TTL this would deny forever.
	deadline := time.Now().Add(120 * time.Millisecond)
	allowed := false
	for time.Now().Before(deadline) {
		if ok, _ := store.Allow(ctx, "k", 1, window); ok {
			allowed = true
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if !allowed {
		t.Error("window should expire at its original deadline despite hits")
	}
}
