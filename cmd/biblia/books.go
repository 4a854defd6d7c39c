package main

import "fmt"

// Run executes the books command.
func (c *BooksCmd) Run(deps *Dependencies) error {
	for i, b := range deps.Catalog.Entries() {
		fmt.Fprintf(deps.Stdout, "%2d. %-16s %3d chapters\n", i+1, b.Name, b.Chapters)
	}
	return nil
}
