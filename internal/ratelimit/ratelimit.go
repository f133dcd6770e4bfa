// Package ratelimit enforces per-backend call budgets and the mandatory
// delay between successive calls to the same generation backend.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/autodiario/diario/internal/logger"
)

// Limiter tracks usage per backend name. A zero budget means unlimited.
type Limiter struct {
	mu       sync.Mutex
	interval time.Duration
	budget   int
	used     map[string]int
	last     map[string]time.Time

	// sleep is replaceable in tests
	sleep func(ctx context.Context, d time.Duration) error
}

func New(interval time.Duration, budget int) *Limiter {
	return &Limiter{
		interval: interval,
		budget:   budget,
		used:     make(map[string]int),
		last:     make(map[string]time.Time),
		sleep:    sleepCtx,
	}
}

// Acquire blocks until the inter-call interval for backend has elapsed, then
// consumes one call from its budget. Returns an error when the budget is
// spent or ctx is cancelled.
func (l *Limiter) Acquire(ctx context.Context, backend string) error {
	l.mu.Lock()
	if l.budget > 0 && l.used[backend] >= l.budget {
		used := l.used[backend]
		l.mu.Unlock()
		return fmt.Errorf("backend %s call budget exceeded (%d/%d)", backend, used, l.budget)
	}
	wait := time.Duration(0)
	if prev, ok := l.last[backend]; ok {
		if elapsed := time.Since(prev); elapsed < l.interval {
			wait = l.interval - elapsed
		}
	}
	l.mu.Unlock()

	if wait > 0 {
		logger.Debug("throttling backend call", "backend", backend, "wait", wait)
		if err := l.sleep(ctx, wait); err != nil {
			return err
		}
	}

	l.mu.Lock()
	l.used[backend]++
	l.last[backend] = time.Now()
	l.mu.Unlock()
	return nil
}

// Used reports how many calls backend has consumed.
func (l *Limiter) Used(backend string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.used[backend]
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
