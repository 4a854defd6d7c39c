// Package reader fetches chapters from the provider and searches books.
// It composes a retry layer, a cache layer and a book searcher on top of
// the biblia.RemoteClient, biblia.RateLimiter and biblia.VerseCache services.
package reader

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/biblia"
	gojson "github.com/goccy/go-json"
)

// payload is the provider's chapter response body.
type payload struct {
	Verses []biblia.Verse `json:"verses"`
}

// ParseVerses decodes a provider response body. A malformed body or a
// missing "verses" field yields an empty list. Verses without a positive
// chapter and verse number or without text are dropped.
func ParseVerses(body []byte) []biblia.Verse {
	var p payload
	if err := gojson.Unmarshal(body, &p); err != nil {
		return nil
	}

	verses := make([]biblia.Verse, 0, len(p.Verses))
	for _, v := range p.Verses {
		v.Text = strings.TrimSpace(v.Text)
		if v.Validate() != nil {
			continue
		}
		verses = append(verses, v)
	}
	return verses
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func loggerOrDiscard(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
