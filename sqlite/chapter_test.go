package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/biblia"
	"github.com/fwojciec/biblia/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

var psalm117 = []biblia.Verse{
	{Chapter: 117, Verse: 1, Text: "Louvai ao Senhor todas as nações, louvai-o todos os povos."},
	{Chapter: 117, Verse: 2, Text: "Porque a sua benignidade é grande para conosco."},
}

func TestChapterStore_SaveChapter(t *testing.T) {
	t.Parallel()

	t.Run("stores verses with hash and translation", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewChapterStore(setupTestDB(t), "almeida")
		ctx := context.Background()
		fetchedAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

		ch := &biblia.StoredChapter{Book: "Salmos", Chapter: 117, Verses: psalm117, FetchedAt: fetchedAt}
		require.NoError(t, store.SaveChapter(ctx, ch))

		assert.Equal(t, "almeida", ch.Translation)
		assert.Len(t, ch.ContentHash, 16)

		found, err := store.FindChapter(ctx, biblia.ChapterKey{Book: "Salmos", Chapter: 117})
		require.NoError(t, err)
		assert.Equal(t, psalm117, found.Verses)
		assert.Equal(t, ch.ContentHash, found.ContentHash)
		assert.Equal(t, fetchedAt, found.FetchedAt)
		assert.Equal(t, "almeida", found.Translation)
	})

	t.Run("replaces an existing chapter", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewChapterStore(setupTestDB(t), "almeida")
		ctx := context.Background()
		key := biblia.ChapterKey{Book: "Salmos", Chapter: 117}

		require.NoError(t, store.SaveChapter(ctx, &biblia.StoredChapter{Book: key.Book, Chapter: key.Chapter, Verses: psalm117[:1]}))
		require.NoError(t, store.SaveChapter(ctx, &biblia.StoredChapter{Book: key.Book, Chapter: key.Chapter, Verses: psalm117}))

		found, err := store.FindChapter(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, psalm117, found.Verses)
		assert.False(t, found.FetchedAt.IsZero())
	})

	t.Run("rejects invalid chapters", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewChapterStore(setupTestDB(t), "almeida")
		ctx := context.Background()

		for _, ch := range []*biblia.StoredChapter{
			{Chapter: 1, Verses: psalm117},
			{Book: "Salmos", Verses: psalm117},
			{Book: "Salmos", Chapter: 1},
		} {
			err := store.SaveChapter(ctx, ch)
			require.Error(t, err)
			assert.Equal(t, biblia.EINVALID, biblia.ErrorCode(err))
		}
	})
}

func TestChapterStore_FindChapter(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND when not stored", func(t *testing.T) {
		t.Parallel()

		store := sqlite.NewChapterStore(setupTestDB(t), "almeida")

		_, err := store.FindChapter(context.Background(), biblia.ChapterKey{Book: "Rute", Chapter: 1})
		require.Error(t, err)
		assert.Equal(t, biblia.ENOTFOUND, biblia.ErrorCode(err))
	})

	t.Run("keeps translations apart", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		ctx := context.Background()
		key := biblia.ChapterKey{Book: "Salmos", Chapter: 117}

		require.NoError(t, sqlite.NewChapterStore(db, "almeida").SaveChapter(ctx,
			&biblia.StoredChapter{Book: key.Book, Chapter: key.Chapter, Verses: psalm117}))

		_, err := sqlite.NewChapterStore(db, "kjv").FindChapter(ctx, key)
		assert.Equal(t, biblia.ENOTFOUND, biblia.ErrorCode(err))
	})
}

func TestHashContent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, sqlite.HashContent([]byte("a")), sqlite.HashContent([]byte("a")))
	assert.NotEqual(t, sqlite.HashContent([]byte("a")), sqlite.HashContent([]byte("b")))
	assert.Len(t, sqlite.HashContent(nil), 16)
}
