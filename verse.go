package biblia

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Verse is the smallest addressable unit of text within a chapter.
type Verse struct {
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

// Validate returns an error if the verse cannot be addressed or has no text.
func (v Verse) Validate() error {
	if v.Chapter < 1 {
		return Errorf(EINVALID, "verse chapter must be positive")
	}
	if v.Verse < 1 {
		return Errorf(EINVALID, "verse number must be positive")
	}
	if strings.TrimSpace(v.Text) == "" {
		return Errorf(EINVALID, "verse text required")
	}
	return nil
}

// ChapterKey addresses a single chapter of a book.
// It is comparable and used directly as a cache key.
type ChapterKey struct {
	Book    string
	Chapter int
}

// String returns the human form of the key, e.g. "Salmos 23".
func (k ChapterKey) String() string {
	return fmt.Sprintf("%s %d", k.Book, k.Chapter)
}

// SearchResult is a verse annotated with the book it was found in.
type SearchResult struct {
	Book    string `json:"book"`
	Chapter int    `json:"chapter"`
	Verse   int    `json:"verse"`
	Text    string `json:"text"`
}

// Reference renders the result as "Book chapter:verse".
func (r SearchResult) Reference() string {
	return fmt.Sprintf("%s %d:%d", r.Book, r.Chapter, r.Verse)
}

// Response is the raw outcome of a single provider request.
// The body is not interpreted by the client that produced it.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the response has a 2xx status.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Provider describes the remote content API.
type Provider struct {
	BaseURL     string
	Translation string
}

// Default provider settings.
const (
	DefaultProviderURL = "https://bible-api.com"
	DefaultTranslation = "almeida"
)

// DefaultProvider returns the public bible-api.com provider with the Almeida translation.
func DefaultProvider() Provider {
	return Provider{BaseURL: DefaultProviderURL, Translation: DefaultTranslation}
}

// ChapterURL returns the provider URL for a chapter, e.g.
// https://bible-api.com/Salmos%2023?translation=almeida.
func (p Provider) ChapterURL(book string, chapter int) string {
	ref := url.PathEscape(book + " " + strconv.Itoa(chapter))
	u := strings.TrimRight(p.BaseURL, "/") + "/" + ref
	if p.Translation != "" {
		u += "?translation=" + url.QueryEscape(p.Translation)
	}
	return u
}

// RemoteClient issues single GET requests against the content provider.
type RemoteClient interface {
	// Fetch performs a GET on url. Non-2xx statuses are returned as a
	// Response, not an error. Errors signal transport failures only.
	Fetch(ctx context.Context, url string) (*Response, error)
}

// RateLimiter caps the number of outbound calls issued by the process.
type RateLimiter interface {
	// Wait blocks until a call is allowed and records it.
	// Returns an error only if the context is canceled first.
	Wait(ctx context.Context) error
}

// VerseCache memoizes chapter contents for a bounded time.
type VerseCache interface {
	// Get returns the verses stored for key. It reports false if the key
	// was never stored, has expired, or was evicted.
	Get(key ChapterKey) ([]Verse, bool)

	// Put stores verses for key with a fresh timestamp.
	Put(key ChapterKey, verses []Verse)
}

// ChapterFetcher produces the verse list for one chapter.
type ChapterFetcher interface {
	// FetchChapter returns the verses of a chapter. An empty result means the
	// chapter is unavailable; failures are reported through r, never returned.
	FetchChapter(ctx context.Context, book string, chapter int, r Reporter) []Verse
}

// BookSearcher searches every chapter of a book for a word.
type BookSearcher interface {
	// SearchBook returns the verses of book containing word, ignoring case,
	// in chapter then verse order. Warnings are reported through r.
	SearchBook(ctx context.Context, book, word string, r Reporter) []SearchResult
}
