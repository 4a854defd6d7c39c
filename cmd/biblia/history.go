package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/biblia"
)

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	filter := biblia.SearchFilter{Limit: c.Limit}
	if c.Book != "" {
		filter.Book = &c.Book
	}

	records, err := deps.History.FindSearches(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", biblia.ErrorMessage(err))
		return err
	}

	if len(records) == 0 {
		fmt.Fprintln(deps.Stdout, "No searches yet. Use 'biblia search' to run one.")
		return nil
	}

	for _, r := range records {
		note := ""
		if r.Truncated {
			note = " (partial)"
		}
		fmt.Fprintf(deps.Stdout, "%s  %-16s %-20q %d matches in %d chapters%s\n",
			r.CreatedAt.Local().Format(time.DateTime), r.Book, r.Word, r.Matches, r.Calls, note)
	}
	return nil
}
