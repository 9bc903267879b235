package worker

import (
	"context"

	"golang.org/x/time/rate"
)

// Limiter throttles how fast batch jobs start. Documents are local files, but
// downstream consumers of the reports (and optional review-brief endpoints)
// can be rate-sensitive, so batch mode supports a global cap.
type Limiter struct {
	limiter *rate.Limiter
}

// NewLimiter creates a limiter allowing docsPerSecond with the given burst.
// A non-positive rate disables throttling.
func NewLimiter(docsPerSecond float64, burst int) *Limiter {
	if docsPerSecond <= 0 {
		return &Limiter{}
	}
	if burst <= 0 {
		burst = 1
	}
	return &Limiter{limiter: rate.NewLimiter(rate.Limit(docsPerSecond), burst)}
}

// Wait blocks until the next job may start or the context is done
func (l *Limiter) Wait(ctx context.Context) error {
	if l.limiter == nil {
		return nil
	}
	return l.limiter.Wait(ctx)
}

// Allow reports whether a job may start without waiting
func (l *Limiter) Allow() bool {
	if l.limiter == nil {
		return true
	}
	return l.limiter.Allow()
}
