package biblia

// DefaultPerPage is the number of verses shown per page.
const DefaultPerPage = 10

// Page is one page of a chapter's verses.
type Page struct {
	Verses []Verse `json:"verses"`
	Page   int     `json:"page"`
	Pages  int     `json:"pages"`
}

// Paginate returns page number page of verses, perPage verses at a time.
// The page is clamped to [1, pages]; perPage <= 0 means DefaultPerPage.
// An empty input yields a single empty page.
func Paginate(verses []Verse, page, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	pages := (len(verses) + perPage - 1) / perPage
	if pages == 0 {
		return Page{Verses: []Verse{}, Page: 1, Pages: 1}
	}
	page = max(1, min(page, pages))

	start := (page - 1) * perPage
	end := min(start+perPage, len(verses))
	return Page{Verses: verses[start:end], Page: page, Pages: pages}
}
