package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/biblia"
	"golang.org/x/sync/semaphore"
)

var _ biblia.RateLimiter = (*Window)(nil)

// Window is a sliding-window limiter: a call is admitted only when fewer
// than limit calls were admitted during the trailing window.
// Blocked callers are admitted in arrival order.
type Window struct {
	limit  int
	window time.Duration
	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error

	// turn serializes waiters; semaphore.Weighted grants in FIFO order.
	turn *semaphore.Weighted

	mu    sync.Mutex
	calls []time.Time // admission times within the window, oldest first
}

// WindowOption configures a Window.
type WindowOption func(*Window)

// WithClock replaces the time source and the sleep function. Used by tests.
func WithClock(now func() time.Time, sleep func(ctx context.Context, d time.Duration) error) WindowOption {
	return func(w *Window) {
		w.now = now
		w.sleep = sleep
	}
}

// NewWindow creates a limiter admitting at most limit calls per window.
func NewWindow(limit int, window time.Duration, opts ...WindowOption) *Window {
	if limit < 1 {
		limit = 1
	}
	w := &Window{
		limit:  limit,
		window: window,
		now:    time.Now,
		sleep:  sleepContext,
		turn:   semaphore.NewWeighted(1),
		calls:  make([]time.Time, 0, limit),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Wait blocks until the call fits in the window, then records it.
// Returns an error if the context is canceled before the call is admitted.
func (w *Window) Wait(ctx context.Context) error {
	if err := w.turn.Acquire(ctx, 1); err != nil {
		return err
	}
	defer w.turn.Release(1)

	for {
		d := w.reserve()
		if d <= 0 {
			return nil
		}
		if err := w.sleep(ctx, d); err != nil {
			return err
		}
	}
}

// reserve records a call and returns 0 if there is room, otherwise the time
// until the oldest recorded call leaves the window.
func (w *Window) reserve() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	w.prune(now)
	if len(w.calls) < w.limit {
		w.calls = append(w.calls, now)
		return 0
	}
	return w.calls[0].Add(w.window).Sub(now)
}

func (w *Window) prune(now time.Time) {
	i := 0
	for i < len(w.calls) && now.Sub(w.calls[i]) >= w.window {
		i++
	}
	if i > 0 {
		w.calls = append(w.calls[:0], w.calls[i:]...)
	}
}

// InFlight returns the number of calls recorded in the current window.
func (w *Window) InFlight() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.prune(w.now())
	return len(w.calls)
}
