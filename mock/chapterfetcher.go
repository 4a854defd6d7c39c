package mock

import (
	"context"

	"github.com/fwojciec/biblia"
)

var _ biblia.ChapterFetcher = (*ChapterFetcher)(nil)

// ChapterFetcher is a mock implementation of biblia.ChapterFetcher.
type ChapterFetcher struct {
	FetchChapterFn func(ctx context.Context, book string, chapter int, r biblia.Reporter) []biblia.Verse
}

func (f *ChapterFetcher) FetchChapter(ctx context.Context, book string, chapter int, r biblia.Reporter) []biblia.Verse {
	return f.FetchChapterFn(ctx, book, chapter, r)
}
