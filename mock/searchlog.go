package mock

import (
	"context"

	"github.com/fwojciec/biblia"
)

var _ biblia.SearchLog = (*SearchLog)(nil)

// SearchLog is a mock implementation of biblia.SearchLog.
type SearchLog struct {
	RecordSearchFn func(ctx context.Context, rec *biblia.SearchRecord) error
	FindSearchesFn func(ctx context.Context, filter biblia.SearchFilter) ([]*biblia.SearchRecord, error)
}

func (l *SearchLog) RecordSearch(ctx context.Context, rec *biblia.SearchRecord) error {
	return l.RecordSearchFn(ctx, rec)
}

func (l *SearchLog) FindSearches(ctx context.Context, filter biblia.SearchFilter) ([]*biblia.SearchRecord, error) {
	return l.FindSearchesFn(ctx, filter)
}
