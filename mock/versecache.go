package mock

import "github.com/fwojciec/biblia"

var _ biblia.VerseCache = (*VerseCache)(nil)

// VerseCache is a mock implementation of biblia.VerseCache.
type VerseCache struct {
	GetFn func(key biblia.ChapterKey) ([]biblia.Verse, bool)
	PutFn func(key biblia.ChapterKey, verses []biblia.Verse)
}

func (c *VerseCache) Get(key biblia.ChapterKey) ([]biblia.Verse, bool) {
	return c.GetFn(key)
}

func (c *VerseCache) Put(key biblia.ChapterKey, verses []biblia.Verse) {
	c.PutFn(key, verses)
}
