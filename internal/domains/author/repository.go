package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the author store. Lookups that match nothing return
// ErrAuthorNotFound; unique violations surface as apperror.DuplicateKeyError.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// FindByEmailWithCredential is the only read that loads the password hash
	FindByEmailWithCredential(ctx context.Context, email string) (*AuthorWithCredential, error)

	Insert(ctx context.Context, a *AuthorWithCredential) (*Author, error)

	// UpdateByID applies patch and returns the updated record
	UpdateByID(ctx context.Context, id uuid.UUID, patch AuthorPatch) (*Author, error)

	// DeleteByID removes the record and returns it as it was
	DeleteByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// List returns authors in insertion order
	List(ctx context.Context, offset, limit int) ([]Author, error)

	Count(ctx context.Context) (int64, error)
}
