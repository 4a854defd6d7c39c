// Package sqlite provides SQLite-based storage for fetched chapters and search history.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB holds the chapter store and search history over a single connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB returns a DB for path. ":memory:" gives a throwaway database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// pragmas run on every open. File databases also switch to WAL.
var pragmas = []string{
	"PRAGMA busy_timeout = 5000",
}

// Open connects to the database and creates the chapters and searches
// tables if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	stmts := pragmas
	if db.path != ":memory:" {
		stmts = append(stmts[:len(stmts):len(stmts)], "PRAGMA journal_mode = WAL")
	}
	for _, stmt := range stmts {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			return fmt.Errorf("failed to run %q: %w", stmt, err)
		}
	}

	db.db = conn
	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the chapters table, keyed by book, chapter and
// translation, and the searches history table.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS chapters (
			book TEXT NOT NULL,
			chapter INTEGER NOT NULL,
			translation TEXT NOT NULL DEFAULT '',
			verses TEXT NOT NULL,
			content_hash TEXT NOT NULL DEFAULT '',
			fetched_at TEXT NOT NULL,
			PRIMARY KEY (book, chapter, translation)
		);

		CREATE TABLE IF NOT EXISTS searches (
			id TEXT PRIMARY KEY,
			book TEXT NOT NULL,
			word TEXT NOT NULL,
			matches INTEGER NOT NULL DEFAULT 0,
			calls INTEGER NOT NULL DEFAULT 0,
			truncated INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_searches_book ON searches(book);
		CREATE INDEX IF NOT EXISTS idx_searches_created_at ON searches(created_at);
	`

	_, err := db.db.Exec(schema)
	return err
}
