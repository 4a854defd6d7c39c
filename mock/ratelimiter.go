package mock

import (
	"context"

	"github.com/fwojciec/biblia"
)

var _ biblia.RateLimiter = (*RateLimiter)(nil)

// RateLimiter is a mock implementation of biblia.RateLimiter.
type RateLimiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *RateLimiter) Wait(ctx context.Context) error {
	return l.WaitFn(ctx)
}
