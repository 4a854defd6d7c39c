// Package ratelimit provides process-wide limits on outbound provider calls.
package ratelimit

import (
	"context"
	"time"
)

// Default limits: 20 calls in any trailing 60-second window.
const (
	DefaultLimit  = 20
	DefaultWindow = 60 * time.Second
)

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
