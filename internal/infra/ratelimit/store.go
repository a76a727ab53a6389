// Package ratelimit counts requests per client over a rolling window.
//
// A request is admitted when the client had fewer than Limit admitted
// requests during the window that ends at the request. Rejected requests are
// not counted, and a client idle for a whole window starts afresh. Stores are
// safe for concurrent use.
package ratelimit

import (
	"context"
	"time"
)

// Result is the outcome of a single admission check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetAt is when the oldest counted request leaves the window.
	ResetAt time.Time
}

// Store records requests and decides admission.
type Store interface {
	// Allow counts one request for key at now, unless the key already has
	// limit requests in the window ending at now.
	Allow(ctx context.Context, key string, now time.Time) (Result, error)
}

func allowed(limit, count int, resetAt time.Time) Result {
	return Result{Allowed: true, Limit: limit, Remaining: max(limit-count, 0), ResetAt: resetAt}
}

func rejected(limit int, resetAt time.Time) Result {
	return Result{Allowed: false, Limit: limit, Remaining: 0, ResetAt: resetAt}
}
