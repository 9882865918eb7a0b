// Package throttle implements fixed-window request quotas keyed by caller
// and scope. Counters live behind the Store interface so the in-memory
// store can be swapped for Redis without touching callers.
package throttle

import (
	"context"
	"time"
)

// Scope names an independently limited group of operations. Each scope has
// its own quota window and its own counter per caller.
type Scope string

const (
	ScopeReviewCreate   Scope = "review-create"
	ScopeReviewList     Scope = "review-list"
	ScopeReviewListAnon Scope = "review-list-anon"
	ScopeReviewDetail   Scope = "review-detail"
)

// Quota is a request budget per window. Counters reset when the window
// expires.
type Quota struct {
	Requests int
	Window   time.Duration
}

// Store counts requests per key within a fixed window. Allow records one
// request against key and reports whether the count stays at or under limit.
type Store interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// Throttler checks callers against per-scope quotas. It never mutates
// application state; denial happens before any business logic runs.
type Throttler struct {
	store  Store
	quotas map[Scope]Quota
}

// New creates a Throttler backed by store. Quotas are registered with
// SetQuota at startup; a scope without a quota is unlimited.
func New(store Store) *Throttler {
	return &Throttler{
		store:  store,
		quotas: make(map[Scope]Quota),
	}
}

// SetQuota registers the quota for a scope. Not safe for concurrent use with
// Allow; call during startup only.
func (t *Throttler) SetQuota(scope Scope, requests int, window time.Duration) {
	t.quotas[scope] = Quota{Requests: requests, Window: window}
}

// Allow reports whether the principal (a user id or client IP) may perform
// another action in the given scope now.
func (t *Throttler) Allow(ctx context.Context, scope Scope, principal string) (bool, error) {
	quota, ok := t.quotas[scope]
	if !ok || quota.Requests <= 0 {
		return true, nil
	}
	return t.store.Allow(ctx, string(scope)+":"+principal, quota.Requests, quota.Window)
}
