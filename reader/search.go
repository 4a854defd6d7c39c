package reader

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/biblia"
	"golang.org/x/text/cases"
)

// Search defaults.
const (
	DefaultSearchBudget  = 50
	DefaultMinWordLength = 3
)

var _ biblia.BookSearcher = (*Searcher)(nil)

// Summary describes how a book search ended.
type Summary struct {
	Matches int
	// Calls is the number of FetchChapter invocations made.
	Calls int
	// Truncated is set when the request budget stopped the scan.
	Truncated bool
}

// Searcher scans a book chapter by chapter for a word.
//
// Chapters are fetched sequentially from 1 up to the catalog's chapter
// count. The scan stops at the first chapter that comes back empty, which
// is read as the end of the book, or when Budget fetches have been made.
type Searcher struct {
	Fetcher biblia.ChapterFetcher
	Catalog *biblia.Catalog

	// Budget caps FetchChapter calls per search. Defaults to 50.
	Budget int

	// MinWordLength is the shortest accepted search word, in characters. Defaults to 3.
	MinWordLength int

	// History, if set, records every search that passed validation.
	History biblia.SearchLog

	Logger *slog.Logger
}

// NewSearcher returns a Searcher with default budget and word length.
func NewSearcher(fetcher biblia.ChapterFetcher, catalog *biblia.Catalog) *Searcher {
	return &Searcher{
		Fetcher:       fetcher,
		Catalog:       catalog,
		Budget:        DefaultSearchBudget,
		MinWordLength: DefaultMinWordLength,
	}
}

// SearchBook returns every verse of book containing word, ignoring case.
func (s *Searcher) SearchBook(ctx context.Context, book, word string, r biblia.Reporter) []biblia.SearchResult {
	var results []biblia.SearchResult
	s.Walk(ctx, book, word, r, func(res biblia.SearchResult) {
		results = append(results, res)
	})
	return results
}

// ValidateWord returns an EINVALID error if word is too short to search for.
func (s *Searcher) ValidateWord(word string) error {
	minLen := s.MinWordLength
	if minLen <= 0 {
		minLen = DefaultMinWordLength
	}
	word = strings.TrimSpace(word)
	if word == "" {
		return biblia.Errorf(biblia.EINVALID, "enter a word to search for")
	}
	if utf8.RuneCountInString(word) < minLen {
		return biblia.Errorf(biblia.EINVALID, "search word must be at least %d characters", minLen)
	}
	return nil
}

// Walk scans book for word and calls fn for each match as it is found.
func (s *Searcher) Walk(ctx context.Context, book, word string, r biblia.Reporter, fn func(biblia.SearchResult)) Summary {
	var sum Summary

	if err := s.ValidateWord(word); err != nil {
		biblia.Report(r, biblia.NoticeFromError(biblia.LevelWarning, err))
		return sum
	}
	word = strings.TrimSpace(word)

	entry, ok := s.Catalog.Lookup(book)
	if !ok {
		err := biblia.Errorf(biblia.ENOTFOUND, "unknown book %q", book)
		biblia.Report(r, biblia.NoticeFromError(biblia.LevelWarning, err))
		return sum
	}

	budget := s.Budget
	if budget <= 0 {
		budget = DefaultSearchBudget
	}

	fold := cases.Fold()
	needle := fold.String(word)
	begin := time.Now()

	// failed is set once a fetch reports an error, which also ends the scan.
	failed := false
	tee := biblia.ReporterFunc(func(n biblia.Notice) {
		if n.Level == biblia.LevelError {
			failed = true
		}
		biblia.Report(r, n)
	})

	for chapter := 1; chapter <= entry.Chapters; chapter++ {
		if ctx.Err() != nil {
			break
		}

		if sum.Calls >= budget {
			sum.Truncated = true
			err := biblia.Errorf(biblia.EBUDGET, "search limit of %d chapter requests reached; showing partial results", budget)
			biblia.Report(r, biblia.NoticeFromError(biblia.LevelWarning, err))
			break
		}

		verses := s.Fetcher.FetchChapter(ctx, book, chapter, tee)
		sum.Calls++
		if len(verses) == 0 {
			break
		}

		for _, v := range verses {
			if !strings.Contains(fold.String(v.Text), needle) {
				continue
			}
			sum.Matches++
			fn(biblia.SearchResult{Book: book, Chapter: v.Chapter, Verse: v.Verse, Text: v.Text})
		}
	}

	if ctx.Err() != nil {
		loggerOrDiscard(s.Logger).Debug("book scan canceled", "book", book, "matches", sum.Matches, "calls", sum.Calls)
		return sum
	}

	// A failed fetch or the budget already explain an empty result.
	if sum.Matches == 0 && !failed && !sum.Truncated {
		err := biblia.Errorf(biblia.ENOTFOUND, "nothing found for %q in %s", word, book)
		biblia.Report(r, biblia.NoticeFromError(biblia.LevelInfo, err))
	}

	loggerOrDiscard(s.Logger).Debug("book scanned",
		"book", book,
		"matches", sum.Matches,
		"calls", sum.Calls,
		"truncated", sum.Truncated,
		"duration", time.Since(begin),
	)

	s.record(ctx, book, word, sum)
	return sum
}

func (s *Searcher) record(ctx context.Context, book, word string, sum Summary) {
	if s.History == nil {
		return
	}
	rec := &biblia.SearchRecord{
		Book:      book,
		Word:      word,
		Matches:   sum.Matches,
		Calls:     sum.Calls,
		Truncated: sum.Truncated,
	}
	if err := s.History.RecordSearch(context.WithoutCancel(ctx), rec); err != nil {
		loggerOrDiscard(s.Logger).Warn("search history write failed", "book", book, "err", err)
	}
}
