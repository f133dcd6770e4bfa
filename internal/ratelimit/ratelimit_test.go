package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAcquire_BudgetEnforced(t *testing.T) {
	l := New(0, 2)
	ctx := context.Background()

	if err := l.Acquire(ctx, "gemini/flash"); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if err := l.Acquire(ctx, "gemini/flash"); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if err := l.Acquire(ctx, "gemini/flash"); err == nil {
		t.Fatal("third call should exceed the budget")
	}
	// Other backends keep their own budget.
	if err := l.Acquire(ctx, "openai/mini"); err != nil {
		t.Fatalf("other backend: %v", err)
	}
}

func TestAcquire_WaitsOutInterval(t *testing.T) {
	l := New(3*time.Second, 0)
	var slept time.Duration
	l.sleep = func(_ context.Context, d time.Duration) error {
		slept += d
		return nil
	}

	ctx := context.Background()
	if err := l.Acquire(ctx, "gemini/flash"); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if slept != 0 {
		t.Errorf("first call must not wait, slept %v", slept)
	}
	if err := l.Acquire(ctx, "gemini/flash"); err != nil {
		t.Fatalf("second call: %v", err)
	}
	if slept <= 0 {
		t.Error("second call within the interval must wait")
	}
}

func TestAcquire_CancelledContext(t *testing.T) {
	l := New(time.Minute, 0)
	ctx, cancel := context.WithCancel(context.Background())

	if err := l.Acquire(ctx, "x"); err != nil {
		t.Fatalf("first call: %v", err)
	}
	cancel()
	if err := l.Acquire(ctx, "x"); err == nil {
		t.Fatal("cancelled context should abort the wait")
	}
}

func TestUsed(t *testing.T) {
	l := New(0, 0)
	ctx := context.Background()
	l.Acquire(ctx, "a")
	l.Acquire(ctx, "a")

	if got := l.Used("a"); got != 2 {
		t.Errorf("Used = %d, want 2", got)
	}
	if got := l.Used("b"); got != 0 {
		t.Errorf("Used for untouched backend = %d, want 0", got)
	}
}
