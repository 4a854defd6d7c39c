package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/biblia"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
)

// errorResponse is the body of every non-2xx JSON reply.
type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// chapterResponse is one page of a chapter plus any notices raised reading it.
type chapterResponse struct {
	Book    string          `json:"book"`
	Chapter int             `json:"chapter"`
	Page    int             `json:"page"`
	Pages   int             `json:"pages"`
	Verses  []biblia.Verse  `json:"verses"`
	Notices []biblia.Notice `json:"notices"`
}

// searchResponse carries the matches and notices of a book search.
type searchResponse struct {
	Book    string                `json:"book"`
	Word    string                `json:"word"`
	Results []biblia.SearchResult `json:"results"`
	Notices []biblia.Notice       `json:"notices"`
}

// statusCodes maps application error codes to HTTP statuses.
var statusCodes = map[string]int{
	biblia.ECONFLICT:    http.StatusConflict,
	biblia.EINVALID:     http.StatusBadRequest,
	biblia.ENOTFOUND:    http.StatusNotFound,
	biblia.EUNAVAILABLE: http.StatusBadGateway,
	biblia.ERATELIMITED: http.StatusTooManyRequests,
	biblia.EINTERNAL:    http.StatusInternalServerError,
}

func errorStatusCode(code string) int {
	if s, ok := statusCodes[code]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := biblia.ErrorCode(err)
	if code == biblia.EINTERNAL {
		s.logger().Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, errorStatusCode(code), errorResponse{
		Error: errorBody{Code: code, Message: biblia.ErrorMessage(err)},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBooks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Catalog.Entries())
}

// lookupBook resolves the {book} URL parameter against the catalog.
func (s *Server) lookupBook(r *http.Request) (biblia.Book, error) {
	name := chi.URLParam(r, "book")
	// chi routes on the raw path when the client escaped unusually.
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	book, ok := s.Catalog.Lookup(name)
	if !ok {
		return biblia.Book{}, biblia.Errorf(biblia.ENOTFOUND, "unknown book %q", name)
	}
	return book, nil
}

// queryInt parses an optional positive integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, biblia.Errorf(biblia.EINVALID, "%s must be a positive integer", name)
	}
	return n, nil
}

func (s *Server) handleChapter(w http.ResponseWriter, r *http.Request) {
	book, err := s.lookupBook(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	chapter, err := strconv.Atoi(chi.URLParam(r, "chapter"))
	if err != nil || chapter < 1 || chapter > book.Chapters {
		s.writeError(w, r, biblia.Errorf(biblia.EINVALID, "chapter must be between 1 and %d", book.Chapters))
		return
	}

	page, err := queryInt(r, "page")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	perPage, err := queryInt(r, "per_page")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := &biblia.NoticeRecorder{}
	verses := s.Fetcher.FetchChapter(r.Context(), book.Name, chapter, rec)

	if len(verses) > 0 {
		tag := etag(verses)
		w.Header().Set("ETag", tag)
		if matchesETag(r.Header.Get("If-None-Match"), tag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	p := biblia.Paginate(verses, page, perPage)
	writeJSON(w, http.StatusOK, chapterResponse{
		Book:    book.Name,
		Chapter: chapter,
		Page:    p.Page,
		Pages:   p.Pages,
		Verses:  p.Verses,
		Notices: nonNil(rec.Notices()),
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	book, err := s.lookupBook(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	word := r.URL.Query().Get("q")
	rec := &biblia.NoticeRecorder{}
	results := s.Searcher.SearchBook(r.Context(), book.Name, word, rec)
	if results == nil {
		results = []biblia.SearchResult{}
	}

	writeJSON(w, http.StatusOK, searchResponse{
		Book:    book.Name,
		Word:    strings.TrimSpace(word),
		Results: results,
		Notices: nonNil(rec.Notices()),
	})
}

// etag returns a strong entity tag over the chapter's full verse list.
func etag(verses []biblia.Verse) string {
	b, err := json.Marshal(verses)
	if err != nil {
		return ""
	}
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64(b))
}

func matchesETag(header, tag string) bool {
	if header == "" || tag == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || candidate == tag {
			return true
		}
	}
	return false
}

func nonNil(notices []biblia.Notice) []biblia.Notice {
	if notices == nil {
		return []biblia.Notice{}
	}
	return notices
}
