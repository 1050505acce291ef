package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_FirstCallImmediate(t *testing.T) {
	limiter := NewLimiter(time.Hour)

	start := time.Now()
	if err := limiter.Wait(context.Background(), "judge"); err != nil {
		t.Fatalf("wait failed: %v", err)
	}
	if time.Since(start) > 100*time.Millisecond {
		t.Error("first call should not wait")
	}
}

func TestLimiter_Spacing(t *testing.T) {
	limiter := NewLimiter(50 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := limiter.Wait(ctx, "judge"); err != nil {
			t.Fatalf("wait %d failed: %v", i, err)
		}
	}

	// two gaps of 50ms
	if d := time.Since(start); d < 90*time.Millisecond {
		t.Errorf("expected calls spaced by delay, took only %v", d)
	}
}

func TestLimiter_KeysIndependent(t *testing.T) {
	limiter := NewLimiter(time.Hour)

	if !limiter.Allow("judge") {
		t.Error("first judge call should pass")
	}
	if limiter.Allow("judge") {
		t.Error("second judge call should be paced")
	}
	if !limiter.Allow("generate") {
		t.Error("other key should pass")
	}
}

func TestLimiter_ZeroDelay(t *testing.T) {
	limiter := NewLimiter(0)
	for i := 0; i < 5; i++ {
		if !limiter.Allow("judge") {
			t.Fatalf("call %d should not be paced", i)
		}
	}
}

func TestLimiter_SetDelay(t *testing.T) {
	limiter := NewLimiter(0)
	limiter.SetDelay("slow", time.Hour)

	if !limiter.Allow("slow") {
		t.Error("first request should pass")
	}
	if limiter.Allow("slow") {
		t.Error("second request should fail")
	}
	if !limiter.Allow("fast") {
		t.Error("default key should pass")
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	limiter := NewLimiter(time.Hour)
	limiter.Allow("judge")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := limiter.Wait(ctx, "judge"); err == nil {
		t.Error("expected error from cancelled context")
	}
}
