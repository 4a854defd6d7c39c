package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/biblia"
)

// Ensure LoggingFetcher implements biblia.ChapterFetcher.
var _ biblia.ChapterFetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a ChapterFetcher with logging.
type LoggingFetcher struct {
	next   biblia.ChapterFetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next biblia.ChapterFetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// FetchChapter delegates to the wrapped fetcher and logs the chapter, the
// verse count and any notices reported on the way.
func (f *LoggingFetcher) FetchChapter(ctx context.Context, book string, chapter int, r biblia.Reporter) (verses []biblia.Verse) {
	tee := biblia.ReporterFunc(func(n biblia.Notice) {
		f.logger.Warn("chapter notice",
			"book", book,
			"chapter", chapter,
			"code", n.Code,
			"message", n.Message,
		)
		biblia.Report(r, n)
	})

	defer func(begin time.Time) {
		f.logger.Info("fetch chapter",
			"book", book,
			"chapter", chapter,
			"verses", len(verses),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return f.next.FetchChapter(ctx, book, chapter, tee)
}
