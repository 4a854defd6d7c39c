package biblia_test

import (
	"testing"

	"github.com/fwojciec/biblia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func verses(n int) []biblia.Verse {
	vs := make([]biblia.Verse, n)
	for i := range vs {
		vs[i] = biblia.Verse{Chapter: 1, Verse: i + 1, Text: "texto"}
	}
	return vs
}

func TestPaginate(t *testing.T) {
	t.Parallel()

	t.Run("defaults to ten per page", func(t *testing.T) {
		t.Parallel()

		p := biblia.Paginate(verses(25), 1, 0)

		assert.Equal(t, 3, p.Pages)
		assert.Len(t, p.Verses, 10)
	})

	t.Run("last page holds the remainder", func(t *testing.T) {
		t.Parallel()

		p := biblia.Paginate(verses(25), 3, 10)

		require.Len(t, p.Verses, 5)
		assert.Equal(t, 21, p.Verses[0].Verse)
		assert.Equal(t, 3, p.Page)
	})

	t.Run("clamps out of range pages", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, 3, biblia.Paginate(verses(25), 7, 10).Page)
		assert.Equal(t, 1, biblia.Paginate(verses(25), -2, 10).Page)
	})

	t.Run("empty input yields one empty page", func(t *testing.T) {
		t.Parallel()

		p := biblia.Paginate(nil, 4, 10)

		assert.Equal(t, biblia.Page{Verses: []biblia.Verse{}, Page: 1, Pages: 1}, p)
	})
}
