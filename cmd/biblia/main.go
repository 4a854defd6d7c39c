package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/biblia"
	"github.com/fwojciec/biblia/cache"
	bibliahttp "github.com/fwojciec/biblia/http"
	bprom "github.com/fwojciec/biblia/prometheus"
	"github.com/fwojciec/biblia/ratelimit"
	"github.com/fwojciec/biblia/reader"
	bslog "github.com/fwojciec/biblia/slog"
	"github.com/fwojciec/biblia/sqlite"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("biblia"),
		kong.Description("Read and search the Bible from the command line."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"default_db": defaultDBPath()},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'biblia --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = kongCtx.Command()

	deps.Logger = newLogger(stderr, cli.LogLevel, strings.HasPrefix(cmd, "serve"))

	catalog, err := loadCatalog(cli.Catalog)
	if err != nil {
		fmt.Fprintf(stderr, "Hint: the catalog file must be a JSON list of {\"name\", \"chapters\"} objects\n")
		return err
	}
	deps.Catalog = catalog

	if err := os.MkdirAll(filepath.Dir(cli.DB), 0755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}
	m.DB = sqlite.NewDB(cli.DB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set BIBLIA_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
	}
	defer m.Close()

	history := sqlite.NewSearchLog(m.DB)
	deps.History = history

	// Metrics are only exposed by the server.
	var metrics *bprom.Metrics
	if strings.HasPrefix(cmd, "serve") {
		registry := prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics = bprom.NewMetrics(registry)
		deps.Registry = registry
	}

	provider := biblia.Provider{BaseURL: cli.ProviderURL, Translation: cli.Translation}

	var client biblia.RemoteClient = bslog.NewLoggingClient(bibliahttp.NewClient(), deps.Logger)
	if metrics != nil {
		client = metrics.InstrumentClient(client)
	}

	var verses biblia.VerseCache = cache.New(cache.Config{MaxSize: cli.CacheSize, TTL: cli.CacheTTL})
	if metrics != nil {
		verses = metrics.InstrumentCache(verses)
	}

	retrier := reader.NewRetrier(client, newLimiter(cli), provider)
	retrier.Logger = deps.Logger

	cached := reader.NewCachingFetcher(retrier, verses)
	cached.Store = sqlite.NewChapterStore(m.DB, cli.Translation)
	cached.StoreTTL = cli.CacheTTL
	cached.Logger = deps.Logger
	deps.Fetcher = bslog.NewLoggingFetcher(cached, deps.Logger)

	searcher := reader.NewSearcher(deps.Fetcher, catalog)
	searcher.Budget = cli.SearchBudget
	searcher.History = history
	searcher.Logger = deps.Logger
	deps.Walker = searcher

	var books biblia.BookSearcher = bslog.NewLoggingSearcher(searcher, deps.Logger)
	if metrics != nil {
		books = metrics.InstrumentSearcher(books)
	}
	deps.Searcher = books

	return kongCtx.Run(deps)
}

func newLimiter(cli *CLI) biblia.RateLimiter {
	if cli.Limiter == "bucket" {
		return ratelimit.NewBucket(cli.RateLimit, cli.RateWindow)
	}
	return ratelimit.NewWindow(cli.RateLimit, cli.RateWindow)
}

// newLogger writes text logs to w, or JSON logs when serving.
func newLogger(w io.Writer, level string, asJSON bool) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelWarn
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loadCatalog reads a catalog file, or returns the built-in catalog when
// path is empty.
func loadCatalog(path string) (*biblia.Catalog, error) {
	if path == "" {
		return biblia.DefaultCatalog(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	var books []biblia.Book
	if err := json.Unmarshal(b, &books); err != nil {
		return nil, fmt.Errorf("failed to parse catalog %q: %w", path, err)
	}
	return biblia.NewCatalog(books)
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "biblia.db"
	}
	return filepath.Join(home, ".biblia", "biblia.db")
}
