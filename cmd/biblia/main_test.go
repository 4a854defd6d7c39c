package main_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	main "github.com/fwojciec/biblia/cmd/biblia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// provider serves Rute 1 to 4 and an empty verse list for later chapters.
type provider struct {
	*httptest.Server
	requests atomic.Int32
	fail     atomic.Bool
}

func newProvider(t *testing.T) *provider {
	t.Helper()
	p := &provider{}
	p.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.requests.Add(1)
		if p.fail.Load() {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		ref := strings.TrimPrefix(r.URL.Path, "/")
		i := strings.LastIndex(ref, " ")
		chapter, _ := strconv.Atoi(ref[i+1:])
		w.Header().Set("Content-Type", "application/json")
		if ref[:i] != "Rute" || chapter > 4 {
			fmt.Fprint(w, `{"verses":[]}`)
			return
		}
		fmt.Fprintf(w, `{"verses":[
			{"chapter":%[1]d,"verse":1,"text":"E disse Noemi a suas noras"},
			{"chapter":%[1]d,"verse":2,"text":"Porém Rute respondeu"}
		]}`, chapter)
	}))
	t.Cleanup(p.Close)
	return p
}

// run executes the CLI against the given provider and database.
func run(t *testing.T, p *provider, db string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	args = append(args, "--db", db, "--provider-url", p.URL)
	err = main.NewMain().Run(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestMain_Books(t *testing.T) {
	t.Parallel()

	p := newProvider(t)
	db := filepath.Join(t.TempDir(), "biblia.db")

	stdout, _, err := run(t, p, db, "books")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Gênesis")
	assert.Contains(t, stdout, "150 chapters")
	assert.Contains(t, stdout, "Apocalipse")
	assert.Equal(t, 66, strings.Count(stdout, "\n"))
	assert.Zero(t, p.requests.Load())
}

func TestMain_Read(t *testing.T) {
	t.Parallel()

	t.Run("prints a chapter", func(t *testing.T) {
		t.Parallel()

		p := newProvider(t)
		db := filepath.Join(t.TempDir(), "biblia.db")

		stdout, stderr, err := run(t, p, db, "read", "Rute", "2")

		require.NoError(t, err)
		assert.Contains(t, stdout, "Rute 2 (page 1 of 1)")
		assert.Contains(t, stdout, "1. E disse Noemi a suas noras")
		assert.Contains(t, stdout, "2. Porém Rute respondeu")
		assert.Empty(t, stderr)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		p := newProvider(t)
		db := filepath.Join(t.TempDir(), "biblia.db")

		stdout, _, err := run(t, p, db, "read", "Rute", "1", "--page", "2", "--per-page", "1")

		require.NoError(t, err)
		assert.Contains(t, stdout, "page 2 of 2")
		assert.NotContains(t, stdout, "Noemi")
		assert.Contains(t, stdout, "Porém Rute respondeu")
	})

	t.Run("serves a stored chapter after restart", func(t *testing.T) {
		t.Parallel()

		p := newProvider(t)
		db := filepath.Join(t.TempDir(), "biblia.db")

		_, _, err := run(t, p, db, "read", "Rute", "1")
		require.NoError(t, err)
		require.Equal(t, int32(1), p.requests.Load())

		p.fail.Store(true)
		stdout, _, err := run(t, p, db, "read", "Rute", "1")

		require.NoError(t, err)
		assert.Contains(t, stdout, "Noemi")
		assert.Equal(t, int32(1), p.requests.Load())
	})

	t.Run("reports an unreachable chapter", func(t *testing.T) {
		t.Parallel()

		p := newProvider(t)
		p.fail.Store(true)
		db := filepath.Join(t.TempDir(), "biblia.db")

		stdout, stderr, err := run(t, p, db, "read", "Rute", "3")

		require.NoError(t, err)
		assert.Contains(t, stdout, "No verses found for Rute 3")
		assert.Contains(t, stderr, "could not fetch chapter Rute 3")
	})

	t.Run("rejects unknown book", func(t *testing.T) {
		t.Parallel()

		p := newProvider(t)
		db := filepath.Join(t.TempDir(), "biblia.db")

		_, stderr, err := run(t, p, db, "read", "Tobias", "1")

		require.Error(t, err)
		assert.Contains(t, stderr, "biblia books")
		assert.Zero(t, p.requests.Load())
	})
}

func TestMain_SearchAndHistory(t *testing.T) {
	t.Parallel()

	p := newProvider(t)
	db := filepath.Join(t.TempDir(), "biblia.db")

	stdout, _, err := run(t, p, db, "search", "Rute", "noemi")

	require.NoError(t, err)
	assert.Contains(t, stdout, "Rute 1:1  E disse Noemi a suas noras")
	assert.Contains(t, stdout, "Rute 4:1")
	assert.Contains(t, stdout, "4 verses found")
	// Chapters 1 to 4 plus the empty chapter 5 that ends the scan.
	assert.Equal(t, int32(5), p.requests.Load())

	_, stderr, err := run(t, p, db, "search", "Rute", "ab")
	require.NoError(t, err)
	assert.Contains(t, stderr, "at least 3 characters")

	stdout, _, err = run(t, p, db, "history")

	require.NoError(t, err)
	assert.Contains(t, stdout, `"noemi"`)
	assert.Contains(t, stdout, "4 matches in 5 chapters")
	assert.NotContains(t, stdout, `"ab"`)
}

func TestMain_History_Empty(t *testing.T) {
	t.Parallel()

	p := newProvider(t)
	db := filepath.Join(t.TempDir(), "biblia.db")

	stdout, _, err := run(t, p, db, "history")

	require.NoError(t, err)
	assert.Contains(t, stdout, "No searches yet")
}

func TestMain_Catalog(t *testing.T) {
	t.Parallel()

	t.Run("loads a catalog file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Rute","chapters":4},{"name":"Jonas","chapters":4}]`), 0o644))
		p := newProvider(t)

		stdout, _, err := run(t, p, filepath.Join(dir, "biblia.db"), "books", "--catalog", path)

		require.NoError(t, err)
		assert.Contains(t, stdout, "Jonas")
		assert.NotContains(t, stdout, "Gênesis")
	})

	t.Run("bounds the search by the catalog", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Rute","chapters":2}]`), 0o644))
		p := newProvider(t)

		stdout, _, err := run(t, p, filepath.Join(dir, "biblia.db"), "search", "Rute", "noemi", "--catalog", path)

		require.NoError(t, err)
		assert.Contains(t, stdout, "2 verses found")
		assert.Equal(t, int32(2), p.requests.Load())
	})

	t.Run("rejects an invalid catalog", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "catalog.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"name":"Rute","chapters":0}]`), 0o644))
		p := newProvider(t)

		_, stderr, err := run(t, p, filepath.Join(dir, "biblia.db"), "books", "--catalog", path)

		require.Error(t, err)
		assert.Contains(t, stderr, "Hint:")
	})
}
