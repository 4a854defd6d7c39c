// Package slog provides structured logging decorators for biblia services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/biblia"
)

// Ensure LoggingClient implements biblia.RemoteClient.
var _ biblia.RemoteClient = (*LoggingClient)(nil)

// LoggingClient wraps a RemoteClient with logging of every provider request.
type LoggingClient struct {
	next   biblia.RemoteClient
	logger *slog.Logger
}

// NewLoggingClient creates a new LoggingClient.
func NewLoggingClient(next biblia.RemoteClient, logger *slog.Logger) *LoggingClient {
	return &LoggingClient{next: next, logger: logger}
}

// Fetch delegates to the wrapped client and logs the outcome.
func (c *LoggingClient) Fetch(ctx context.Context, url string) (resp *biblia.Response, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"duration", time.Since(begin),
		}
		if resp != nil {
			attrs = append(attrs, "status", resp.StatusCode, "bytes", len(resp.Body))
		}
		if err != nil {
			attrs = append(attrs, "err", err)
		}
		c.logger.Debug("provider request", attrs...)
	}(time.Now())
	return c.next.Fetch(ctx, url)
}
