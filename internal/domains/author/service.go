package author

import (
	"context"

	"github.com/google/uuid"

	"book-catalog-api/internal/shared/pagination"
)

// Service holds the author use cases
type Service interface {
	List(ctx context.Context, params pagination.Params) (*pagination.Page[Author], error)
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// Create hashes the password before insert. Validation failures are
	// returned as apperror.ValidationError.
	Create(ctx context.Context, req CreateAuthorRequest) (*Author, error)

	// Update re-hashes the password only when the request carries one
	Update(ctx context.Context, id uuid.UUID, req UpdateAuthorRequest) (*Author, error)

	Delete(ctx context.Context, id uuid.UUID) (*Author, error)

	// Login returns a signed access token. Unknown email and wrong password
	// both yield ErrInvalidCredentials.
	Login(ctx context.Context, req LoginRequest) (string, error)

	// UploadImage stores the file and points the author's image at it.
	// The stored file is removed again when the author does not exist.
	UploadImage(ctx context.Context, authorID string, fileName string, data []byte) (*Author, error)
}
