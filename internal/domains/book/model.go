package book

import (
	"time"

	"github.com/google/uuid"

	"book-catalog-api/internal/domains/author"
)

const (
	MinPages = 1
	MaxPages = 1000
)

type Publisher struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

// Book is returned with its author expanded. Author is nil when the book
// has none or the referenced author was deleted.
type Book struct {
	ID        uuid.UUID      `json:"id"`
	Title     string         `json:"title"`
	Author    *author.Author `json:"author"`
	Pages     *int           `json:"pages,omitempty"`
	Publisher *Publisher     `json:"publisher,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Record is a book as stored, holding the author reference by id
type Record struct {
	ID        uuid.UUID
	Title     string
	AuthorID  *uuid.UUID
	Pages     *int
	Publisher *Publisher
}

// BookPatch carries the columns an update touches; nil means unchanged.
// A non-nil Publisher replaces both publisher fields.
type BookPatch struct {
	Title     *string
	AuthorID  *uuid.UUID
	Pages     *int
	Publisher *Publisher
}

func (p BookPatch) IsEmpty() bool {
	return p.Title == nil && p.AuthorID == nil && p.Pages == nil && p.Publisher == nil
}
