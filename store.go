package biblia

import (
	"context"
	"time"
)

// StoredChapter is a chapter persisted by a ChapterStore.
type StoredChapter struct {
	Book        string    `json:"book"`
	Chapter     int       `json:"chapter"`
	Translation string    `json:"translation"`
	Verses      []Verse   `json:"verses"`
	ContentHash string    `json:"contentHash"`
	FetchedAt   time.Time `json:"fetchedAt"`
}

// ChapterStore persists fetched chapters across process restarts.
type ChapterStore interface {
	// FindChapter returns the stored chapter for key.
	// Returns ENOTFOUND if the chapter was never stored.
	FindChapter(ctx context.Context, key ChapterKey) (*StoredChapter, error)

	// SaveChapter inserts or replaces a chapter.
	SaveChapter(ctx context.Context, ch *StoredChapter) error
}

// SearchRecord describes one completed book search.
type SearchRecord struct {
	ID        string    `json:"id"`
	Book      string    `json:"book"`
	Word      string    `json:"word"`
	Matches   int       `json:"matches"`
	Calls     int       `json:"calls"`
	Truncated bool      `json:"truncated"`
	CreatedAt time.Time `json:"createdAt"`
}

// Validate returns an error if the record contains invalid fields.
func (r *SearchRecord) Validate() error {
	if r.Book == "" {
		return Errorf(EINVALID, "search book required")
	}
	if r.Word == "" {
		return Errorf(EINVALID, "search word required")
	}
	return nil
}

// SearchLog records completed searches.
type SearchLog interface {
	// RecordSearch stores a search, assigning its ID and timestamp.
	RecordSearch(ctx context.Context, rec *SearchRecord) error

	// FindSearches returns searches matching the filter, newest first.
	FindSearches(ctx context.Context, filter SearchFilter) ([]*SearchRecord, error)
}

// SearchFilter represents a filter for FindSearches.
type SearchFilter struct {
	Book *string `json:"book"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
