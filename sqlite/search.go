package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/biblia"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ biblia.SearchLog = (*SearchLog)(nil)

// SearchLog implements biblia.SearchLog using SQLite.
type SearchLog struct {
	db *DB
}

// NewSearchLog creates a new SearchLog.
func NewSearchLog(db *DB) *SearchLog {
	return &SearchLog{db: db}
}

// RecordSearch stores a completed search.
func (s *SearchLog) RecordSearch(ctx context.Context, rec *biblia.SearchRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	rec.ID = uuid.New().String()
	rec.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO searches (id, book, word, matches, calls, truncated, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Book, rec.Word, rec.Matches, rec.Calls, rec.Truncated,
		rec.CreatedAt.Format(sortableTime))

	return err
}

// FindSearches retrieves searches matching the filter, newest first.
func (s *SearchLog) FindSearches(ctx context.Context, filter biblia.SearchFilter) ([]*biblia.SearchRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, book, word, matches, calls, truncated, created_at FROM searches WHERE 1=1")

	if filter.Book != nil {
		query.WriteString(" AND book = ?")
		args = append(args, *filter.Book)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*biblia.SearchRecord
	for rows.Next() {
		var rec biblia.SearchRecord
		var createdAt string

		if err := rows.Scan(&rec.ID, &rec.Book, &rec.Word, &rec.Matches, &rec.Calls, &rec.Truncated, &createdAt); err != nil {
			return nil, err
		}

		if rec.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}
