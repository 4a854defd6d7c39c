package main

import (
	"fmt"

	"github.com/fwojciec/biblia"
)

// Run executes the read command.
func (c *ReadCmd) Run(deps *Dependencies) error {
	book, ok := deps.Catalog.Lookup(c.Book)
	if !ok {
		fmt.Fprintf(deps.Stderr, "error: unknown book %q. Use 'biblia books' to see available books.\n", c.Book)
		return biblia.Errorf(biblia.ENOTFOUND, "unknown book %q", c.Book)
	}
	if c.Chapter < 1 || c.Chapter > book.Chapters {
		fmt.Fprintf(deps.Stderr, "error: %s has chapters 1 to %d\n", book.Name, book.Chapters)
		return biblia.Errorf(biblia.EINVALID, "chapter must be between 1 and %d", book.Chapters)
	}

	rec := &biblia.NoticeRecorder{}
	verses := deps.Fetcher.FetchChapter(deps.Ctx, book.Name, c.Chapter, rec)
	printNotices(deps.Stderr, rec.Notices())

	if len(verses) == 0 {
		fmt.Fprintf(deps.Stdout, "No verses found for %s %d.\n", book.Name, c.Chapter)
		return nil
	}

	p := biblia.Paginate(verses, c.Page, c.PerPage)
	fmt.Fprintf(deps.Stdout, "%s %d (page %d of %d)\n\n", book.Name, c.Chapter, p.Page, p.Pages)
	for _, v := range p.Verses {
		fmt.Fprintf(deps.Stdout, "%d. %s\n", v.Verse, v.Text)
	}
	return nil
}
