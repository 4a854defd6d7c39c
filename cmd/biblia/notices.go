package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/biblia"
)

// printNotices writes each notice on its own line, prefixed by its level.
func printNotices(w io.Writer, notices []biblia.Notice) {
	for _, n := range notices {
		fmt.Fprintf(w, "%s: %s\n", n.Level, n.Message)
	}
}
