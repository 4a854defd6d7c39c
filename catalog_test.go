package biblia_test

import (
	"testing"

	"github.com/fwojciec/biblia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	t.Parallel()

	c := biblia.DefaultCatalog()
	books := c.Books()

	require.Len(t, books, 66)
	assert.Equal(t, "Gênesis", books[0])
	assert.Equal(t, "Apocalipse", books[65])
	assert.Equal(t, 150, c.ChapterCount("Salmos"))
	assert.Equal(t, 22, c.ChapterCount("Apocalipse"))
	assert.Equal(t, 30, c.ChapterCount("Gênesis"))
	assert.Equal(t, 30, c.ChapterCount("Judas"))
	assert.Zero(t, c.ChapterCount("Tobias"))
}

func TestCatalog_Lookup(t *testing.T) {
	t.Parallel()

	c := biblia.DefaultCatalog()

	b, ok := c.Lookup("1 João")
	require.True(t, ok)
	assert.Equal(t, biblia.Book{Name: "1 João", Chapters: 30}, b)

	_, ok = c.Lookup("1 joão")
	assert.False(t, ok, "lookup is exact")
}

func TestCatalog_EntriesIsACopy(t *testing.T) {
	t.Parallel()

	c := biblia.DefaultCatalog()
	entries := c.Entries()
	entries[0].Chapters = 1

	assert.Equal(t, 30, c.ChapterCount("Gênesis"))
}

func TestNewCatalog(t *testing.T) {
	t.Parallel()

	t.Run("keeps order", func(t *testing.T) {
		t.Parallel()

		c, err := biblia.NewCatalog([]biblia.Book{{Name: "Jonas", Chapters: 4}, {Name: "Rute", Chapters: 4}})

		require.NoError(t, err)
		assert.Equal(t, []string{"Jonas", "Rute"}, c.Books())
		assert.Equal(t, 2, c.Len())
	})

	tests := []struct {
		name  string
		books []biblia.Book
		code  string
	}{
		{"empty", nil, biblia.EINVALID},
		{"unnamed", []biblia.Book{{Chapters: 3}}, biblia.EINVALID},
		{"no chapters", []biblia.Book{{Name: "Rute"}}, biblia.EINVALID},
		{"duplicate", []biblia.Book{{Name: "Rute", Chapters: 4}, {Name: "Rute", Chapters: 4}}, biblia.ECONFLICT},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := biblia.NewCatalog(tt.books)

			require.Error(t, err)
			assert.Equal(t, tt.code, biblia.ErrorCode(err))
		})
	}
}
