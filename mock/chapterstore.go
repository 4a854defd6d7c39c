package mock

import (
	"context"

	"github.com/fwojciec/biblia"
)

var _ biblia.ChapterStore = (*ChapterStore)(nil)

// ChapterStore is a mock implementation of biblia.ChapterStore.
type ChapterStore struct {
	FindChapterFn func(ctx context.Context, key biblia.ChapterKey) (*biblia.StoredChapter, error)
	SaveChapterFn func(ctx context.Context, ch *biblia.StoredChapter) error
}

func (s *ChapterStore) FindChapter(ctx context.Context, key biblia.ChapterKey) (*biblia.StoredChapter, error) {
	return s.FindChapterFn(ctx, key)
}

func (s *ChapterStore) SaveChapter(ctx context.Context, ch *biblia.StoredChapter) error {
	return s.SaveChapterFn(ctx, ch)
}
