package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/biblia"
)

// Ensure LoggingSearcher implements biblia.BookSearcher.
var _ biblia.BookSearcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a BookSearcher with logging.
type LoggingSearcher struct {
	next   biblia.BookSearcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next biblia.BookSearcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// SearchBook delegates to the wrapped searcher and logs the operation.
func (s *LoggingSearcher) SearchBook(ctx context.Context, book, word string, r biblia.Reporter) (results []biblia.SearchResult) {
	defer func(begin time.Time) {
		s.logger.Info("search book",
			"book", book,
			"word", word,
			"results", len(results),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return s.next.SearchBook(ctx, book, word, r)
}
