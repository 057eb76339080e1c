package ledger

import (
	"fmt"

	"go.uber.org/zap"
)

// Catalog owns the books on offer. Duplicates are detected on (title, author);
// Remove, Edit and Find look books up by title alone and act on the first match.
type Catalog struct {
	books []*Book
	log   *zap.Logger
}

// NewCatalog returns an empty catalog. A nil logger discards notices.
func NewCatalog(log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{log: log.Named("catalog")}
}

// Add appends a new book, failing with ErrDuplicateKey if a book with the
// same title and author is already listed.
func (c *Catalog) Add(title string, year int, author, genre string, cost, salePrice float64) error {
	if c.indexOf(title, author) >= 0 {
		return fmt.Errorf("book %q by %s already exists: %w", title, author, ErrDuplicateKey)
	}
	c.books = append(c.books, &Book{
		Title:     title,
		Year:      year,
		Author:    author,
		Genre:     genre,
		Cost:      cost,
		SalePrice: salePrice,
	})
	return nil
}

// Remove deletes the first book titled title. A missing title is logged and
// otherwise ignored.
func (c *Catalog) Remove(title string) bool {
	for i, b := range c.books {
		if b.Title == title {
			c.books = append(c.books[:i:i], c.books[i+1:]...)
			return true
		}
	}
	c.log.Warn("book not found, nothing removed", zap.String("title", title))
	return false
}

// Edit overwrites the provided fields of the first book titled title.
func (c *Catalog) Edit(title string, upd BookUpdate) (*Book, error) {
	b, ok := c.Find(title)
	if !ok {
		return nil, fmt.Errorf("edit %q: %w", title, ErrBookNotFound)
	}
	if upd.Author != nil && *upd.Author != b.Author && c.indexOf(b.Title, *upd.Author) >= 0 {
		return nil, fmt.Errorf("edit %q: author %s: %w", title, *upd.Author, ErrDuplicateKey)
	}

	if upd.Year != nil {
		b.Year = *upd.Year
	}
	if upd.Author != nil {
		b.Author = *upd.Author
	}
	if upd.Genre != nil {
		b.Genre = *upd.Genre
	}
	if upd.Cost != nil {
		b.Cost = *upd.Cost
	}
	if upd.SalePrice != nil {
		b.SalePrice = *upd.SalePrice
	}
	return b, nil
}

func (c *Catalog) Find(title string) (*Book, bool) {
	for _, b := range c.books {
		if b.Title == title {
			return b, true
		}
	}
	return nil, false
}

// List returns the live, insertion-ordered slice of books.
func (c *Catalog) List() []*Book { return c.books }

func (c *Catalog) Len() int { return len(c.books) }

func (c *Catalog) indexOf(title, author string) int {
	for i, b := range c.books {
		if b.Title == title && b.Author == author {
			return i
		}
	}
	return -1
}
