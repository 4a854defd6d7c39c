package prometheus_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/biblia"
	"github.com/fwojciec/biblia/cache"
	"github.com/fwojciec/biblia/mock"
	bprom "github.com/fwojciec/biblia/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) *bprom.Metrics {
	t.Helper()
	return bprom.NewMetrics(prometheus.NewRegistry())
}

func TestInstrumentedClient(t *testing.T) {
	t.Parallel()

	m := newTestMetrics(t)
	statuses := []int{200, 429, 503}
	i := 0
	client := m.InstrumentClient(&mock.RemoteClient{
		FetchFn: func(ctx context.Context, url string) (*biblia.Response, error) {
			if i == len(statuses) {
				return nil, errors.New("connection refused")
			}
			s := statuses[i]
			i++
			return &biblia.Response{StatusCode: s}, nil
		},
	})

	for range 4 {
		_, _ = client.Fetch(context.Background(), "https://bible-api.com/Rute%201")
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("429")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("5xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("error")))
}

func TestInstrumentedCache(t *testing.T) {
	t.Parallel()

	m := newTestMetrics(t)
	c := m.InstrumentCache(cache.New(cache.DefaultConfig()))
	key := biblia.ChapterKey{Book: "Rute", Chapter: 1}

	_, ok := c.Get(key)
	require.False(t, ok)
	c.Put(key, []biblia.Verse{{Chapter: 1, Verse: 1, Text: "x"}})
	_, ok = c.Get(key)
	require.True(t, ok)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheLookups.WithLabelValues("miss")))
}

func TestInstrumentedSearcher(t *testing.T) {
	t.Parallel()

	m := newTestMetrics(t)
	searcher := m.InstrumentSearcher(&mock.BookSearcher{
		SearchBookFn: func(_ context.Context, book, word string, r biblia.Reporter) []biblia.SearchResult {
			switch word {
			case "ab":
				biblia.Report(r, biblia.Notice{Level: biblia.LevelWarning, Code: biblia.EINVALID})
				return nil
			case "none":
				biblia.Report(r, biblia.Notice{Level: biblia.LevelInfo, Code: biblia.ENOTFOUND})
				return nil
			}
			return []biblia.SearchResult{{Book: book, Chapter: 1, Verse: 1, Text: word}}
		},
	})
	rec := &biblia.NoticeRecorder{}

	searcher.SearchBook(context.Background(), "Rute", "ab", rec)
	searcher.SearchBook(context.Background(), "Rute", "none", rec)
	searcher.SearchBook(context.Background(), "Rute", "graça", rec)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Searches.WithLabelValues(biblia.EINVALID)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Searches.WithLabelValues("empty")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Searches.WithLabelValues("ok")))
	assert.Len(t, rec.Notices(), 2, "notices are forwarded")
}
