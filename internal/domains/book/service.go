package book

import (
	"context"

	"github.com/google/uuid"

	"book-catalog-api/internal/shared/pagination"
)

// Service holds the book use cases
type Service interface {
	List(ctx context.Context, params pagination.Params) (*pagination.Page[Book], error)
	GetByID(ctx context.Context, id uuid.UUID) (*Book, error)
	GetByTitle(ctx context.Context, title string) ([]Book, error)
	Create(ctx context.Context, req CreateBookRequest) (*Book, error)
	Update(ctx context.Context, id uuid.UUID, req UpdateBookRequest) (*Book, error)
	Delete(ctx context.Context, id uuid.UUID) (*Book, error)
}
