// Package authortest provides in-memory author stores for tests.
package authortest

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"book-catalog-api/internal/domains/author"
	"book-catalog-api/internal/infrastructure/storage"
	"book-catalog-api/internal/shared/apperror"
)

// MemoryRepository is an author.Repository kept in insertion order
type MemoryRepository struct {
	mu      sync.Mutex
	order   []uuid.UUID
	records map[uuid.UUID]author.AuthorWithCredential
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		records: make(map[uuid.UUID]author.AuthorWithCredential),
		now:     time.Now,
	}
}

// PasswordHash exposes the stored hash for assertions
func (r *MemoryRepository) PasswordHash(id uuid.UUID) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.records[id].PasswordHash
}

func (r *MemoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	a := rec.Author
	return &a, nil
}

func (r *MemoryRepository) FindByEmailWithCredential(ctx context.Context, email string) (*author.AuthorWithCredential, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.records {
		if rec.Email == email {
			found := rec
			return &found, nil
		}
	}
	return nil, author.ErrAuthorNotFound
}

func (r *MemoryRepository) Insert(ctx context.Context, a *author.AuthorWithCredential) (*author.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.emailTaken(a.Email, uuid.Nil) {
		return nil, duplicateEmail()
	}

	rec := *a
	rec.CreatedAt = r.now()
	rec.UpdatedAt = rec.CreatedAt
	r.records[rec.ID] = rec
	r.order = append(r.order, rec.ID)

	created := rec.Author
	return &created, nil
}

func (r *MemoryRepository) UpdateByID(ctx context.Context, id uuid.UUID, patch author.AuthorPatch) (*author.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	if patch.Email != nil && r.emailTaken(*patch.Email, id) {
		return nil, duplicateEmail()
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&rec.Email, patch.Email)
	apply(&rec.PasswordHash, patch.PasswordHash)
	apply(&rec.Name, patch.Name)
	apply(&rec.Country, patch.Country)
	apply(&rec.Image, patch.Image)
	rec.UpdatedAt = r.now()
	r.records[id] = rec

	updated := rec.Author
	return &updated, nil
}

func (r *MemoryRepository) DeleteByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, author.ErrAuthorNotFound
	}
	delete(r.records, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	deleted := rec.Author
	return &deleted, nil
}

func (r *MemoryRepository) List(ctx context.Context, offset, limit int) ([]author.Author, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	authors := []author.Author{}
	for i := offset; i < len(r.order) && len(authors) < limit; i++ {
		authors = append(authors, r.records[r.order[i]].Author)
	}
	return authors, nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.order)), nil
}

func (r *MemoryRepository) emailTaken(email string, except uuid.UUID) bool {
	for id, rec := range r.records {
		if id != except && rec.Email == email {
			return true
		}
	}
	return false
}

func duplicateEmail() error {
	return &apperror.DuplicateKeyError{
		Message: `duplicate key value violates unique constraint "authors_email_key"`,
	}
}

// MemoryStorage is a storage.Storage holding files in a map
type MemoryStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{files: make(map[string][]byte)}
}

func (s *MemoryStorage) Save(ctx context.Context, originalName string, data []byte) (*storage.StoredFile, error) {
	if len(data) == 0 {
		return nil, storage.ErrEmptyFile
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	key := uuid.NewString() + "_" + originalName
	s.files[key] = append([]byte(nil), data...)
	return &storage.StoredFile{
		Key:         key,
		Location:    "public/" + key,
		ContentType: "application/octet-stream",
		Size:        int64(len(data)),
	}, nil
}

func (s *MemoryStorage) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.files, key)
	return nil
}

// Len is the number of files currently stored
func (s *MemoryStorage) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.files)
}
