package mock

import (
	"context"

	"github.com/fwojciec/biblia"
)

var _ biblia.BookSearcher = (*BookSearcher)(nil)

// BookSearcher is a mock implementation of biblia.BookSearcher.
type BookSearcher struct {
	SearchBookFn func(ctx context.Context, book, word string, r biblia.Reporter) []biblia.SearchResult
}

func (s *BookSearcher) SearchBook(ctx context.Context, book, word string, r biblia.Reporter) []biblia.SearchResult {
	return s.SearchBookFn(ctx, book, word, r)
}
