// Package cache provides an in-memory, time- and size-bounded chapter cache.
package cache

import (
	"container/list"
	"slices"
	"sync"
	"time"

	"github.com/fwojciec/biblia"
)

// Default limits: entries live for one hour; at most 500 chapters are kept.
const (
	DefaultTTL     = time.Hour
	DefaultMaxSize = 500
)

var _ biblia.VerseCache = (*VerseCache)(nil)

// Stats contains cache statistics.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
	Expired   int64
	Size      int
	MaxSize   int
}

// Config contains cache configuration options.
type Config struct {
	// MaxSize is the maximum number of chapters kept.
	MaxSize int

	// TTL is how long a chapter stays valid after it was stored.
	TTL time.Duration

	// Now is the time source. Defaults to time.Now.
	Now func() time.Time
}

// DefaultConfig returns the default cache configuration.
func DefaultConfig() Config {
	return Config{
		MaxSize: DefaultMaxSize,
		TTL:     DefaultTTL,
	}
}

type entry struct {
	key      biblia.ChapterKey
	verses   []biblia.Verse
	storedAt time.Time
}

// VerseCache is a thread-safe LRU cache of chapter verses with a fixed TTL.
type VerseCache struct {
	mu        sync.Mutex
	config    Config
	entries   map[biblia.ChapterKey]*list.Element
	evictList *list.List // front is most recently used
	stats     Stats
}

// New creates a VerseCache. Non-positive MaxSize or TTL fall back to defaults.
func New(config Config) *VerseCache {
	if config.MaxSize <= 0 {
		config.MaxSize = DefaultMaxSize
	}
	if config.TTL <= 0 {
		config.TTL = DefaultTTL
	}
	if config.Now == nil {
		config.Now = time.Now
	}
	return &VerseCache{
		config:    config,
		entries:   make(map[biblia.ChapterKey]*list.Element),
		evictList: list.New(),
	}
}

// Get returns a copy of the verses stored for key and marks it recently
// used. Expired entries are removed and reported as absent.
func (c *VerseCache) Get(key biblia.ChapterKey) ([]biblia.Verse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}

	e := el.Value.(*entry)
	if c.expired(e) {
		c.removeElement(el)
		c.stats.Expired++
		c.stats.Misses++
		return nil, false
	}

	c.evictList.MoveToFront(el)
	c.stats.Hits++
	return slices.Clone(e.verses), true
}

// Put stores a copy of verses for key with a fresh timestamp. When the cache is full
// the least recently used entry is evicted first.
func (c *VerseCache) Put(key biblia.ChapterKey, verses []biblia.Verse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.config.Now()
	verses = slices.Clone(verses)
	if el, ok := c.entries[key]; ok {
		e := el.Value.(*entry)
		e.verses = verses
		e.storedAt = now
		c.evictList.MoveToFront(el)
		return
	}

	if c.evictList.Len() >= c.config.MaxSize {
		c.removeOldest()
	}

	el := c.evictList.PushFront(&entry{key: key, verses: verses, storedAt: now})
	c.entries[key] = el
}

// Remove drops key from the cache.
func (c *VerseCache) Remove(key biblia.ChapterKey) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.removeElement(el)
	}
}

// Clear removes all entries.
func (c *VerseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[biblia.ChapterKey]*list.Element)
	c.evictList.Init()
}

// Len returns the number of entries, including expired ones not yet looked up.
func (c *VerseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Stats returns cache statistics.
func (c *VerseCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Size = c.evictList.Len()
	s.MaxSize = c.config.MaxSize
	return s
}

func (c *VerseCache) expired(e *entry) bool {
	return c.config.Now().Sub(e.storedAt) >= c.config.TTL
}

func (c *VerseCache) removeOldest() {
	if el := c.evictList.Back(); el != nil {
		c.removeElement(el)
		c.stats.Evictions++
	}
}

func (c *VerseCache) removeElement(el *list.Element) {
	c.evictList.Remove(el)
	delete(c.entries, el.Value.(*entry).key)
}
