package reader

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/biblia"
)

var _ biblia.ChapterFetcher = (*CachingFetcher)(nil)

// CachingFetcher serves chapters from a VerseCache and, optionally, a
// persistent ChapterStore, delegating to Next only on a miss. Only
// non-empty results are cached, so an unavailable chapter is retried on
// the next call.
type CachingFetcher struct {
	Next  biblia.ChapterFetcher
	Cache biblia.VerseCache

	// Store, if set, is consulted after a cache miss and written through
	// after a successful fetch. Stored chapters older than StoreTTL are ignored.
	Store    biblia.ChapterStore
	StoreTTL time.Duration

	Now    func() time.Time
	Logger *slog.Logger
}

// NewCachingFetcher wraps next with cache.
func NewCachingFetcher(next biblia.ChapterFetcher, cache biblia.VerseCache) *CachingFetcher {
	return &CachingFetcher{Next: next, Cache: cache}
}

// FetchChapter returns the cached verses of a chapter or fetches them.
func (f *CachingFetcher) FetchChapter(ctx context.Context, book string, chapter int, r biblia.Reporter) []biblia.Verse {
	key := biblia.ChapterKey{Book: book, Chapter: chapter}

	if verses, ok := f.Cache.Get(key); ok {
		return verses
	}

	if verses := f.fromStore(ctx, key); len(verses) > 0 {
		f.Cache.Put(key, verses)
		return verses
	}

	verses := f.Next.FetchChapter(ctx, book, chapter, r)
	if len(verses) == 0 {
		return verses
	}

	f.Cache.Put(key, verses)
	f.toStore(ctx, key, verses)
	return verses
}

func (f *CachingFetcher) now() time.Time {
	if f.Now != nil {
		return f.Now()
	}
	return time.Now()
}

func (f *CachingFetcher) fromStore(ctx context.Context, key biblia.ChapterKey) []biblia.Verse {
	if f.Store == nil {
		return nil
	}

	ch, err := f.Store.FindChapter(ctx, key)
	if err != nil {
		if biblia.ErrorCode(err) != biblia.ENOTFOUND {
			loggerOrDiscard(f.Logger).Warn("chapter store lookup failed", "chapter", key.String(), "err", err)
		}
		return nil
	}

	if f.StoreTTL > 0 && f.now().Sub(ch.FetchedAt) >= f.StoreTTL {
		return nil
	}
	return ch.Verses
}

func (f *CachingFetcher) toStore(ctx context.Context, key biblia.ChapterKey, verses []biblia.Verse) {
	if f.Store == nil {
		return
	}

	err := f.Store.SaveChapter(ctx, &biblia.StoredChapter{
		Book:      key.Book,
		Chapter:   key.Chapter,
		Verses:    verses,
		FetchedAt: f.now().UTC(),
	})
	if err != nil {
		loggerOrDiscard(f.Logger).Warn("chapter store save failed", "chapter", key.String(), "err", err)
	}
}
