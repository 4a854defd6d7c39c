package mock

import (
	"context"

	"github.com/fwojciec/biblia"
)

var _ biblia.RemoteClient = (*RemoteClient)(nil)

// RemoteClient is a mock implementation of biblia.RemoteClient.
type RemoteClient struct {
	FetchFn func(ctx context.Context, url string) (*biblia.Response, error)
}

func (c *RemoteClient) Fetch(ctx context.Context, url string) (*biblia.Response, error) {
	return c.FetchFn(ctx, url)
}
