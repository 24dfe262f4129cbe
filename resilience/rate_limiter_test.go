package resilience

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiter_BurstThenReject(t *testing.T) {
	rl := NewRateLimiter(10, 3)
	now := time.Now()
	for i := range 3 {
		if !rl.allowAt(now) {
			t.Fatalf("request %d should be allowed", i)
		}
	}
	if rl.allowAt(now) {
		t.Error("request over burst should be rejected")
	}
	if !rl.allowAt(now.Add(100 * time.Millisecond)) {
		t.Error("one token should refill after 100ms at 10/s")
	}
}

func TestRateLimiter_DefaultBurst(t *testing.T) {
	if got := NewRateLimiter(2.5, 0).Tokens(); got != 3 {
		t.Errorf("burst = %v, want 3", got)
	}
	if got := NewRateLimiter(0.1, 0).Tokens(); got != 1 {
		t.Errorf("burst = %v, want 1", got)
	}
}

func TestRateLimiter_WaitBlocks(t *testing.T) {
	rl := NewRateLimiter(20, 1)
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	start := time.Now()
	if err := rl.Wait(context.Background()); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("second Wait returned after %v, expected ~50ms", elapsed)
	}
}

func TestRateLimiter_WaitExceedsDeadline(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	if !rl.Allow() {
		t.Fatal("first token should be available")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	start := time.Now()
	if err := rl.Wait(ctx); err == nil {
		t.Error("expected Wait to fail when the token is due after the deadline")
	}
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Errorf("Wait blocked for %v", elapsed)
	}
}
