// Package ratelimit provides a minimum-inter-request-interval limiter for
// shared public geodata services.
// This is part of the platform layer and contains no business logic.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Limiter gates sequential calls to an external service. Wait blocks until
// the next call is allowed or the context is done.
type Limiter interface {
	Wait(ctx context.Context) error
}

// IntervalLimiter enforces a minimum interval between consecutive calls.
// It is safe for concurrent use; callers that require strict ordering
// (border detection, POI enrichment) must still serialize their own calls.
type IntervalLimiter struct {
	limiter *rate.Limiter
}

// NewIntervalLimiter creates a limiter allowing one call per interval.
// A non-positive interval yields an unlimited limiter, which keeps tests
// free of sleeps.
func NewIntervalLimiter(interval time.Duration) *IntervalLimiter {
	if interval <= 0 {
		return &IntervalLimiter{limiter: rate.NewLimiter(rate.Inf, 1)}
	}
	return &IntervalLimiter{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// Wait blocks until the next call is permitted.
func (l *IntervalLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}

var _ Limiter = (*IntervalLimiter)(nil)
