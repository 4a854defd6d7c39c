package main

import (
	"fmt"

	"github.com/fwojciec/biblia"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	rec := &biblia.NoticeRecorder{}
	results := deps.Searcher.SearchBook(deps.Ctx, c.Book, c.Word, rec)

	for _, r := range results {
		fmt.Fprintf(deps.Stdout, "%s  %s\n", r.Reference(), r.Text)
	}
	printNotices(deps.Stderr, rec.Notices())

	if len(results) > 0 {
		fmt.Fprintf(deps.Stdout, "\n%d verses found\n", len(results))
	}
	return nil
}
