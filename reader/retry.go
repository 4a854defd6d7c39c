package reader

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/biblia"
)

var _ biblia.ChapterFetcher = (*Retrier)(nil)

// DefaultRetryDelays returns the waits after a rate-limited attempt:
// 2s, 4s, 8s, 16s, allowing 5 attempts in total.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second, 16 * time.Second}
}

// Retrier fetches one chapter from the provider, retrying failed attempts.
// Every attempt first waits on the rate limiter. A 429 response sleeps for
// the next delay before retrying; any other failure retries immediately.
// After the last failed attempt one EUNAVAILABLE notice is reported.
type Retrier struct {
	Client   biblia.RemoteClient
	Limiter  biblia.RateLimiter
	Provider biblia.Provider

	// RetryDelays holds the backoff after each rate-limited attempt.
	// The number of attempts is len(RetryDelays)+1.
	RetryDelays []time.Duration

	// Sleep waits between rate-limited attempts. Defaults to a timer.
	Sleep func(ctx context.Context, d time.Duration) error

	Logger *slog.Logger
}

// NewRetrier returns a Retrier with the default retry schedule.
func NewRetrier(client biblia.RemoteClient, limiter biblia.RateLimiter, provider biblia.Provider) *Retrier {
	return &Retrier{
		Client:      client,
		Limiter:     limiter,
		Provider:    provider,
		RetryDelays: DefaultRetryDelays(),
	}
}

// FetchChapter returns the verses of chapter, or an empty list if every
// attempt failed or the context was canceled.
func (f *Retrier) FetchChapter(ctx context.Context, book string, chapter int, r biblia.Reporter) []biblia.Verse {
	logger := loggerOrDiscard(f.Logger)
	sleep := f.Sleep
	if sleep == nil {
		sleep = sleepContext
	}

	key := biblia.ChapterKey{Book: book, Chapter: chapter}
	url := f.Provider.ChapterURL(book, chapter)
	maxAttempts := len(f.RetryDelays) + 1

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		last := attempt == maxAttempts

		if f.Limiter != nil {
			if err := f.Limiter.Wait(ctx); err != nil {
				return nil
			}
		}

		resp, err := f.Client.Fetch(ctx, url)
		switch {
		case err != nil:
			if ctx.Err() != nil {
				return nil
			}
			logger.Debug("chapter fetch failed", "chapter", key.String(), "attempt", attempt, "err", err)
			if last {
				f.reportUnavailable(r, key)
				return nil
			}

		case resp.StatusCode == http.StatusTooManyRequests:
			logger.Debug("provider rate limited", "chapter", key.String(), "attempt", attempt)
			if last {
				logger.Warn("rate limited on every attempt", "chapter", key.String(), "attempts", attempt)
				return nil
			}
			if err := sleep(ctx, f.RetryDelays[attempt-1]); err != nil {
				return nil
			}

		case !resp.OK():
			logger.Debug("chapter fetch failed", "chapter", key.String(), "attempt", attempt, "status", resp.StatusCode)
			if last {
				f.reportUnavailable(r, key)
				return nil
			}

		default:
			return ParseVerses(resp.Body)
		}
	}

	return nil
}

func (f *Retrier) reportUnavailable(r biblia.Reporter, key biblia.ChapterKey) {
	err := biblia.Errorf(biblia.EUNAVAILABLE, "could not fetch chapter %s", key)
	biblia.Report(r, biblia.NoticeFromError(biblia.LevelError, err))
}
