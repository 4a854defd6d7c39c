package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/biblia"
	"github.com/fwojciec/biblia/api"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Catalog  *biblia.Catalog
	Fetcher  biblia.ChapterFetcher
	Searcher biblia.BookSearcher
	Walker   api.Walker
	History  biblia.SearchLog
	Registry *prometheus.Registry
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB           string        `env:"BIBLIA_DB" default:"${default_db}" help:"SQLite database path"`
	ProviderURL  string        `name:"provider-url" env:"BIBLIA_PROVIDER_URL" default:"https://bible-api.com" help:"Base URL of the Bible API"`
	Translation  string        `env:"BIBLIA_TRANSLATION" default:"almeida" help:"Translation code sent to the provider"`
	Catalog      string        `env:"BIBLIA_CATALOG" help:"JSON file listing books and chapter counts"`
	RateLimit    int           `name:"rate-limit" default:"20" help:"Provider requests allowed per window"`
	RateWindow   time.Duration `name:"rate-window" default:"60s" help:"Rate limit window"`
	Limiter      string        `enum:"window,bucket" default:"window" help:"Rate limiter: sliding window or token bucket"`
	CacheSize    int           `name:"cache-size" default:"500" help:"Chapters kept in memory"`
	CacheTTL     time.Duration `name:"cache-ttl" default:"1h" help:"How long a fetched chapter stays fresh"`
	SearchBudget int           `name:"search-budget" default:"50" help:"Chapter requests allowed per search"`
	LogLevel     string        `name:"log-level" env:"BIBLIA_LOG_LEVEL" enum:"debug,info,warn,error" default:"warn" help:"Log level"`

	Books   BooksCmd   `cmd:"" help:"List the books of the catalog"`
	Read    ReadCmd    `cmd:"" help:"Read a chapter"`
	Search  SearchCmd  `cmd:"" help:"Search a book for a word"`
	History HistoryCmd `cmd:"" help:"Show recent searches"`
	Serve   ServeCmd   `cmd:"" help:"Serve the HTTP API"`
}

// BooksCmd is the "books" subcommand.
type BooksCmd struct{}

// ReadCmd is the "read" subcommand.
type ReadCmd struct {
	Book    string `arg:"" help:"Book name, e.g. Gênesis"`
	Chapter int    `arg:"" help:"Chapter number"`
	Page    int    `short:"p" default:"1" help:"Page of verses to show"`
	PerPage int    `name:"per-page" default:"10" help:"Verses per page"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Book string `arg:"" help:"Book name"`
	Word string `arg:"" help:"Word to search for (at least 3 characters)"`
}

// HistoryCmd is the "history" subcommand.
type HistoryCmd struct {
	Book  string `short:"b" help:"Only show searches in this book"`
	Limit int    `short:"n" default:"20" help:"Number of searches to show"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr    string   `default:"127.0.0.1:8080" env:"BIBLIA_ADDR" help:"Listen address"`
	Origins []string `name:"allow-origin" help:"Origin allowed to call the API from a browser (repeatable, * for any)"`
}
