// Package prometheus instruments biblia services with Prometheus metrics.
package prometheus

import (
	"context"
	"strconv"
	"time"

	"github.com/fwojciec/biblia"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors shared by the instrumented services.
type Metrics struct {
	Requests       *prometheus.CounterVec
	RequestLatency prometheus.Histogram
	CacheLookups   *prometheus.CounterVec
	Searches       *prometheus.CounterVec
	SearchLatency  prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "biblia_provider_requests_total",
			Help: "Provider requests by status class",
		}, []string{"status"}),
		RequestLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "biblia_provider_request_duration_seconds",
			Help:    "Latency of provider requests, including transport retries",
			Buckets: prometheus.DefBuckets,
		}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "biblia_cache_lookups_total",
			Help: "Verse cache lookups by result",
		}, []string{"result"}),
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "biblia_searches_total",
			Help: "Book searches by outcome",
		}, []string{"outcome"}),
		SearchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "biblia_search_duration_seconds",
			Help:    "Duration of book searches",
			Buckets: []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		}),
	}

	reg.MustRegister(m.Requests, m.RequestLatency, m.CacheLookups, m.Searches, m.SearchLatency)
	return m
}

// statusClass returns "2xx", "4xx", ... or "error" for transport failures.
func statusClass(resp *biblia.Response, err error) string {
	if err != nil || resp == nil {
		return "error"
	}
	if resp.StatusCode == 429 {
		return "429"
	}
	return strconv.Itoa(resp.StatusCode/100) + "xx"
}

var _ biblia.RemoteClient = (*InstrumentedClient)(nil)

// InstrumentedClient counts provider requests by status class.
type InstrumentedClient struct {
	next    biblia.RemoteClient
	metrics *Metrics
}

// InstrumentClient wraps next with request metrics.
func (m *Metrics) InstrumentClient(next biblia.RemoteClient) *InstrumentedClient {
	return &InstrumentedClient{next: next, metrics: m}
}

// Fetch delegates to the wrapped client and records the outcome.
func (c *InstrumentedClient) Fetch(ctx context.Context, url string) (*biblia.Response, error) {
	begin := time.Now()
	resp, err := c.next.Fetch(ctx, url)
	c.metrics.RequestLatency.Observe(time.Since(begin).Seconds())
	c.metrics.Requests.WithLabelValues(statusClass(resp, err)).Inc()
	return resp, err
}

var _ biblia.VerseCache = (*InstrumentedCache)(nil)

// InstrumentedCache counts cache hits and misses.
type InstrumentedCache struct {
	next    biblia.VerseCache
	metrics *Metrics
}

// InstrumentCache wraps next with lookup metrics.
func (m *Metrics) InstrumentCache(next biblia.VerseCache) *InstrumentedCache {
	return &InstrumentedCache{next: next, metrics: m}
}

// Get delegates to the wrapped cache and records a hit or a miss.
func (c *InstrumentedCache) Get(key biblia.ChapterKey) ([]biblia.Verse, bool) {
	verses, ok := c.next.Get(key)
	result := "miss"
	if ok {
		result = "hit"
	}
	c.metrics.CacheLookups.WithLabelValues(result).Inc()
	return verses, ok
}

// Put delegates to the wrapped cache.
func (c *InstrumentedCache) Put(key biblia.ChapterKey, verses []biblia.Verse) {
	c.next.Put(key, verses)
}

var _ biblia.BookSearcher = (*InstrumentedSearcher)(nil)

// InstrumentedSearcher times searches and counts them by outcome.
type InstrumentedSearcher struct {
	next    biblia.BookSearcher
	metrics *Metrics
}

// InstrumentSearcher wraps next with search metrics.
func (m *Metrics) InstrumentSearcher(next biblia.BookSearcher) *InstrumentedSearcher {
	return &InstrumentedSearcher{next: next, metrics: m}
}

// SearchBook delegates to the wrapped searcher. The outcome label is the
// code of the first warning or error notice, "ok" with matches, or "empty".
func (s *InstrumentedSearcher) SearchBook(ctx context.Context, book, word string, r biblia.Reporter) []biblia.SearchResult {
	outcome := ""
	tee := biblia.ReporterFunc(func(n biblia.Notice) {
		if outcome == "" && n.Level != biblia.LevelInfo {
			outcome = n.Code
		}
		biblia.Report(r, n)
	})

	begin := time.Now()
	results := s.next.SearchBook(ctx, book, word, tee)
	s.metrics.SearchLatency.Observe(time.Since(begin).Seconds())

	if outcome == "" {
		outcome = "empty"
		if len(results) > 0 {
			outcome = "ok"
		}
	}
	s.metrics.Searches.WithLabelValues(outcome).Inc()
	return results
}
