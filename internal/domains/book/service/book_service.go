package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"book-catalog-api/internal/domains/book"
	"book-catalog-api/internal/shared/apperror"
	"book-catalog-api/internal/shared/pagination"
)

// bookService implements book.Service
type bookService struct {
	repo book.Repository
}

func NewBookService(repo book.Repository) book.Service {
	return &bookService{repo: repo}
}

func (s *bookService) List(ctx context.Context, params pagination.Params) (*pagination.Page[book.Book], error) {
	books, err := s.repo.List(ctx, params.Offset(), params.Limit)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	page := pagination.NewPage(params, total, books)
	return &page, nil
}

func (s *bookService) GetByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByTitle returns every book whose title matches exactly; ErrBookNotFound when none do
func (s *bookService) GetByTitle(ctx context.Context, title string) ([]book.Book, error) {
	books, err := s.repo.FindByTitle(ctx, title)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, book.ErrBookNotFound
	}
	return books, nil
}

func (s *bookService) Create(ctx context.Context, req book.CreateBookRequest) (*book.Book, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidationError(err)
	}

	created, err := s.repo.Insert(ctx, req.Record())
	return created, unknownAuthor(err)
}

func (s *bookService) Update(ctx context.Context, id uuid.UUID, req book.UpdateBookRequest) (*book.Book, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidationError(err)
	}

	patch := req.Patch()
	if patch.IsEmpty() {
		return s.repo.FindByID(ctx, id)
	}

	updated, err := s.repo.UpdateByID(ctx, id, patch)
	return updated, unknownAuthor(err)
}

func (s *bookService) Delete(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	return s.repo.DeleteByID(ctx, id)
}

// unknownAuthor reports a dangling author reference as a validation failure
func unknownAuthor(err error) error {
	if errors.Is(err, book.ErrUnknownAuthor) {
		return apperror.NewValidationError(book.UnknownAuthorError())
	}
	return err
}
