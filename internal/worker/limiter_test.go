package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_DisabledWhenRateZero(t *testing.T) {
	limiter := NewLimiter(0, 5)

	if err := limiter.Wait(context.Background()); err != nil {
		t.Errorf("wait failed: %v", err)
	}
	for i := 0; i < 100; i++ {
		if !limiter.Allow() {
			t.Fatal("expected disabled limiter to always allow")
		}
	}
}

func TestLimiter_BurstThenThrottle(t *testing.T) {
	limiter := NewLimiter(1, 1) // 1 doc/s, burst 1

	if !limiter.Allow() {
		t.Error("first job should pass on burst")
	}
	if limiter.Allow() {
		t.Error("second immediate job should be throttled")
	}
}

func TestLimiter_WaitRespectsContext(t *testing.T) {
	limiter := NewLimiter(0.1, 1) // one doc per ten seconds
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	// Burst token
	if err := limiter.Wait(ctx); err != nil {
		t.Fatalf("first wait failed: %v", err)
	}

	// Next wait cannot be satisfied before the deadline
	if err := limiter.Wait(ctx); err == nil {
		t.Error("expected context deadline error")
	}
}

func TestLimiter_DefaultBurst(t *testing.T) {
	limiter := NewLimiter(10, -1)
	if !limiter.Allow() {
		t.Error("expected at least one token with defaulted burst")
	}
}
