package book

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the book store. Every read expands the author reference.
// Lookups that match nothing return ErrBookNotFound; a reference to a
// missing author returns ErrUnknownAuthor.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Book, error)

	// FindByTitle matches the title exactly; no match is an empty slice
	FindByTitle(ctx context.Context, title string) ([]Book, error)

	Insert(ctx context.Context, rec Record) (*Book, error)
	UpdateByID(ctx context.Context, id uuid.UUID, patch BookPatch) (*Book, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (*Book, error)

	// List returns books in insertion order
	List(ctx context.Context, offset, limit int) ([]Book, error)
	Count(ctx context.Context) (int64, error)
}
