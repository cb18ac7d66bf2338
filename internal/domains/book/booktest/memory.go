// Package booktest provides an in-memory book store for tests.
package booktest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"book-catalog-api/internal/domains/author"
	"book-catalog-api/internal/domains/book"
)

type storedBook struct {
	book.Record
	createdAt time.Time
	updatedAt time.Time
}

// MemoryRepository is a book.Repository that expands authors from an
// author.Repository, mirroring the LEFT JOIN of the postgres store
type MemoryRepository struct {
	mu      sync.Mutex
	order   []uuid.UUID
	records map[uuid.UUID]storedBook
	authors author.Repository
}

func NewMemoryRepository(authors author.Repository) *MemoryRepository {
	return &MemoryRepository{
		records: make(map[uuid.UUID]storedBook),
		authors: authors,
	}
}

func (r *MemoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return r.expand(ctx, rec)
}

func (r *MemoryRepository) FindByTitle(ctx context.Context, title string) ([]book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	books := []book.Book{}
	for _, id := range r.order {
		rec := r.records[id]
		if rec.Title != title {
			continue
		}
		b, err := r.expand(ctx, rec)
		if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	return books, nil
}

func (r *MemoryRepository) Insert(ctx context.Context, rec book.Record) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkAuthor(ctx, rec.AuthorID); err != nil {
		return nil, err
	}

	now := time.Now()
	stored := storedBook{Record: rec, createdAt: now, updatedAt: now}
	r.records[rec.ID] = stored
	r.order = append(r.order, rec.ID)
	return r.expand(ctx, stored)
}

func (r *MemoryRepository) UpdateByID(ctx context.Context, id uuid.UUID, patch book.BookPatch) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	if err := r.checkAuthor(ctx, patch.AuthorID); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		stored.Title = *patch.Title
	}
	if patch.AuthorID != nil {
		stored.AuthorID = patch.AuthorID
	}
	if patch.Pages != nil {
		stored.Pages = patch.Pages
	}
	if patch.Publisher != nil {
		stored.Publisher = patch.Publisher
	}
	stored.updatedAt = time.Now()
	r.records[id] = stored
	return r.expand(ctx, stored)
}

func (r *MemoryRepository) DeleteByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.records[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	delete(r.records, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return r.expand(ctx, stored)
}

func (r *MemoryRepository) List(ctx context.Context, offset, limit int) ([]book.Book, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	books := []book.Book{}
	for i := offset; i < len(r.order) && len(books) < limit; i++ {
		b, err := r.expand(ctx, r.records[r.order[i]])
		if err != nil {
			return nil, err
		}
		books = append(books, *b)
	}
	return books, nil
}

func (r *MemoryRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.order)), nil
}

func (r *MemoryRepository) checkAuthor(ctx context.Context, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	if _, err := r.authors.FindByID(ctx, *id); err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return book.ErrUnknownAuthor
		}
		return err
	}
	return nil
}

func (r *MemoryRepository) expand(ctx context.Context, stored storedBook) (*book.Book, error) {
	b := &book.Book{
		ID:        stored.ID,
		Title:     stored.Title,
		Pages:     stored.Pages,
		Publisher: stored.Publisher,
		CreatedAt: stored.createdAt,
		UpdatedAt: stored.updatedAt,
	}
	if stored.AuthorID == nil {
		return b, nil
	}

	a, err := r.authors.FindByID(ctx, *stored.AuthorID)
	switch {
	case errors.Is(err, author.ErrAuthorNotFound):
		// dangling reference reads as no author
	case err != nil:
		return nil, err
	default:
		b.Author = a
	}
	return b, nil
}
