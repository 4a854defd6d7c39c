package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/biblia"
	gojson "github.com/goccy/go-json"
)

// Compile-time interface verification.
var _ biblia.ChapterStore = (*ChapterStore)(nil)

// ChapterStore implements biblia.ChapterStore using SQLite.
// Each store is bound to one provider translation.
type ChapterStore struct {
	db          *DB
	translation string
}

// NewChapterStore creates a new ChapterStore for translation.
func NewChapterStore(db *DB, translation string) *ChapterStore {
	return &ChapterStore{db: db, translation: translation}
}

// FindChapter retrieves a stored chapter.
func (s *ChapterStore) FindChapter(ctx context.Context, key biblia.ChapterKey) (*biblia.StoredChapter, error) {
	var versesJSON, fetchedAt string
	ch := biblia.StoredChapter{Book: key.Book, Chapter: key.Chapter, Translation: s.translation}

	err := s.db.QueryRowContext(ctx, `
		SELECT verses, content_hash, fetched_at
		FROM chapters
		WHERE book = ? AND chapter = ? AND translation = ?
	`, key.Book, key.Chapter, s.translation).Scan(&versesJSON, &ch.ContentHash, &fetchedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, biblia.Errorf(biblia.ENOTFOUND, "chapter %s not stored", key)
	}
	if err != nil {
		return nil, err
	}

	if err := gojson.Unmarshal([]byte(versesJSON), &ch.Verses); err != nil {
		return nil, fmt.Errorf("failed to decode verses of %s: %w", key, err)
	}
	if ch.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}

	return &ch, nil
}

// SaveChapter inserts or replaces a chapter. The translation and content
// hash are set by the store; a zero FetchedAt is set to the current time.
func (s *ChapterStore) SaveChapter(ctx context.Context, ch *biblia.StoredChapter) error {
	if ch.Book == "" {
		return biblia.Errorf(biblia.EINVALID, "chapter book required")
	}
	if ch.Chapter < 1 {
		return biblia.Errorf(biblia.EINVALID, "chapter number must be positive")
	}
	if len(ch.Verses) == 0 {
		return biblia.Errorf(biblia.EINVALID, "chapter %s has no verses", biblia.ChapterKey{Book: ch.Book, Chapter: ch.Chapter})
	}

	versesJSON, err := gojson.Marshal(ch.Verses)
	if err != nil {
		return fmt.Errorf("failed to encode verses: %w", err)
	}

	ch.Translation = s.translation
	ch.ContentHash = HashContent(versesJSON)
	if ch.FetchedAt.IsZero() {
		ch.FetchedAt = time.Now().UTC()
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO chapters (book, chapter, translation, verses, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (book, chapter, translation) DO UPDATE SET
			verses = excluded.verses,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, ch.Book, ch.Chapter, ch.Translation, string(versesJSON), ch.ContentHash,
		ch.FetchedAt.UTC().Format(time.RFC3339))

	return err
}
