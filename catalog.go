package biblia

// Book is a catalog entry: a book identifier and its configured chapter count.
type Book struct {
	Name     string `json:"name"`
	Chapters int    `json:"chapters"`
}

// Chapter counts of the default catalog. They are a simplification carried
// over as data, not a versification table: most books do not have 30 chapters.
const (
	DefaultChapterCount = 30
	PsalmsChapterCount  = 150
	RevelationChapters  = 22
)

// defaultBookNames lists the 66 books in canonical order, named as the
// provider's Almeida translation expects them.
var defaultBookNames = []string{
	"Gênesis", "Êxodo", "Levítico", "Números", "Deuteronômio", "Josué", "Juízes", "Rute",
	"1 Samuel", "2 Samuel", "1 Reis", "2 Reis", "1 Crônicas", "2 Crônicas", "Esdras",
	"Neemias", "Ester", "Jó", "Salmos", "Provérbios", "Eclesiastes", "Cantares de Salomão",
	"Isaías", "Jeremias", "Lamentações", "Ezequiel", "Daniel", "Oséias", "Joel", "Amós",
	"Obadias", "Jonas", "Miquéias", "Naum", "Habacuque", "Sofonias", "Ageu", "Zacarias", "Malaquias",
	"Mateus", "Marcos", "Lucas", "João", "Atos", "Romanos", "1 Coríntios", "2 Coríntios",
	"Gálatas", "Efésios", "Filipenses", "Colossenses", "1 Tessalonicenses", "2 Tessalonicenses",
	"1 Timóteo", "2 Timóteo", "Tito", "Filemom", "Hebreus", "Tiago", "1 Pedro", "2 Pedro",
	"1 João", "2 João", "3 João", "Judas", "Apocalipse",
}

// Catalog is a fixed, ordered sequence of books.
type Catalog struct {
	books []Book
	index map[string]int
}

// NewCatalog returns a catalog of the given books in order.
// Names must be unique and non-empty and chapter counts positive.
func NewCatalog(books []Book) (*Catalog, error) {
	if len(books) == 0 {
		return nil, Errorf(EINVALID, "catalog must contain at least one book")
	}
	c := &Catalog{
		books: make([]Book, len(books)),
		index: make(map[string]int, len(books)),
	}
	for i, b := range books {
		if b.Name == "" {
			return nil, Errorf(EINVALID, "catalog entry %d has no name", i+1)
		}
		if b.Chapters < 1 {
			return nil, Errorf(EINVALID, "book %q must have at least one chapter", b.Name)
		}
		if _, ok := c.index[b.Name]; ok {
			return nil, Errorf(ECONFLICT, "book %q listed twice", b.Name)
		}
		c.books[i] = b
		c.index[b.Name] = i
	}
	return c, nil
}

// DefaultCatalog returns the built-in 66-book catalog.
func DefaultCatalog() *Catalog {
	books := make([]Book, len(defaultBookNames))
	for i, name := range defaultBookNames {
		books[i] = Book{Name: name, Chapters: defaultChapterCount(name)}
	}
	c, err := NewCatalog(books)
	if err != nil {
		panic(err)
	}
	return c
}

func defaultChapterCount(name string) int {
	switch name {
	case "Salmos":
		return PsalmsChapterCount
	case "Apocalipse":
		return RevelationChapters
	default:
		return DefaultChapterCount
	}
}

// Books returns the book identifiers in catalog order.
func (c *Catalog) Books() []string {
	names := make([]string, len(c.books))
	for i, b := range c.books {
		names[i] = b.Name
	}
	return names
}

// Entries returns a copy of the catalog entries in order.
func (c *Catalog) Entries() []Book {
	return append([]Book(nil), c.books...)
}

// Lookup returns the catalog entry for name.
func (c *Catalog) Lookup(name string) (Book, bool) {
	i, ok := c.index[name]
	if !ok {
		return Book{}, false
	}
	return c.books[i], true
}

// ChapterCount returns the configured number of chapters of book,
// or 0 if the book is not in the catalog.
func (c *Catalog) ChapterCount(book string) int {
	b, _ := c.Lookup(book)
	return b.Chapters
}

// Len returns the number of books.
func (c *Catalog) Len() int {
	return len(c.books)
}
