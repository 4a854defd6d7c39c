package ratelimit

import (
	"context"
	"time"

	"github.com/fwojciec/biblia"
	"golang.org/x/time/rate"
)

var _ biblia.RateLimiter = (*Bucket)(nil)

// Bucket is a token-bucket limiter refilling limit tokens per window,
// allowing a burst of up to limit calls.
type Bucket struct {
	limiter *rate.Limiter
}

// NewBucket creates a token-bucket limiter for limit calls per window.
func NewBucket(limit int, window time.Duration) *Bucket {
	if limit < 1 {
		limit = 1
	}
	every := window / time.Duration(limit)
	return &Bucket{
		limiter: rate.NewLimiter(rate.Every(every), limit),
	}
}

// Wait blocks until a token is available.
// Returns an error if the context is canceled before the wait completes.
func (b *Bucket) Wait(ctx context.Context) error {
	return b.limiter.Wait(ctx)
}
