package sqlite_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/fwojciec/biblia"
	"github.com/fwojciec/biblia/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkSaveChapter measures write-through cost of persisting chapters,
// simulating a full scan of the longest book.
func BenchmarkSaveChapter(b *testing.B) {
	const chaptersPerScan = 150

	db := sqlite.NewDB(filepath.Join(b.TempDir(), "bench.db"))
	require.NoError(b, db.Open())
	defer db.Close()

	store := sqlite.NewChapterStore(db, "almeida")
	ctx := context.Background()

	verses := make([]biblia.Verse, 20)
	for i := range verses {
		verses[i] = biblia.Verse{Chapter: 1, Verse: i + 1, Text: fmt.Sprintf("Verse %d with some realistic length of text to store and hash.", i+1)}
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		ch := &biblia.StoredChapter{Book: "Salmos", Chapter: i%chaptersPerScan + 1, Verses: verses}
		if err := store.SaveChapter(ctx, ch); err != nil {
			b.Fatal(err)
		}
	}
}
