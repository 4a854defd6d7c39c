// Package api serves the catalog, chapters and book search over HTTP.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/biblia"
	"github.com/fwojciec/biblia/reader"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// DefaultRequestTimeout bounds non-streaming requests. A worst-case book
// search waits on the limiter for most of its budget, so it is generous.
const DefaultRequestTimeout = 5 * time.Minute

// Walker streams search matches as they are found.
type Walker interface {
	Walk(ctx context.Context, book, word string, r biblia.Reporter, fn func(biblia.SearchResult)) reader.Summary
}

var _ Walker = (*reader.Searcher)(nil)

// Server holds the services behind the HTTP handlers.
type Server struct {
	Catalog  *biblia.Catalog
	Fetcher  biblia.ChapterFetcher
	Searcher biblia.BookSearcher
	Walker   Walker

	// Metrics, if set, is mounted at /metrics.
	Metrics http.Handler

	// AllowedOrigins lists origins accepted for CORS and WebSocket
	// upgrades. "*" allows any origin. Empty allows same-origin only.
	AllowedOrigins []string

	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// Handler returns the router for s.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	if len(s.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodOptions},
			AllowedHeaders: []string{"Accept", "If-None-Match"},
			ExposedHeaders: []string{"ETag"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", s.handleHealth)
	if s.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.Metrics)
	}

	r.Route("/api/books", func(r chi.Router) {
		// The stream endpoint outlives any request timeout.
		r.Get("/{book}/search/stream", s.handleSearchStream)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(s.requestTimeout()))
			r.Get("/", s.handleBooks)
			r.Get("/{book}/chapters/{chapter}", s.handleChapter)
			r.Get("/{book}/search", s.handleSearch)
		})
	})

	return r
}

func (s *Server) requestTimeout() time.Duration {
	if s.RequestTimeout > 0 {
		return s.RequestTimeout
	}
	return DefaultRequestTimeout
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		begin := time.Now()
		next.ServeHTTP(ww, r)
		s.logger().Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(begin),
		)
	})
}

// originAllowed reports whether origin may open a WebSocket.
func (s *Server) originAllowed(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, o := range s.AllowedOrigins {
		if o == "*" || strings.EqualFold(o, origin) {
			return true
		}
	}
	// Same-origin requests are always accepted.
	host := origin
	if i := strings.Index(host, "://"); i >= 0 {
		host = host[i+3:]
	}
	return strings.EqualFold(host, r.Host)
}
