package service

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"book-catalog-api/internal/domains/author"
	"book-catalog-api/internal/infrastructure/storage"
	"book-catalog-api/internal/shared/apperror"
	"book-catalog-api/internal/shared/pagination"
	"book-catalog-api/pkg/password"
)

// TokenIssuer is satisfied by *jwt.Manager
type TokenIssuer interface {
	GenerateAccessToken(authorID, email string) (string, error)
}

// authorService implements author.Service
type authorService struct {
	repo    author.Repository
	hasher  password.Hasher
	tokens  TokenIssuer
	uploads storage.Storage
}

func NewAuthorService(
	repo author.Repository,
	hasher password.Hasher,
	tokens TokenIssuer,
	uploads storage.Storage,
) author.Service {
	return &authorService{
		repo:    repo,
		hasher:  hasher,
		tokens:  tokens,
		uploads: uploads,
	}
}

func (s *authorService) List(ctx context.Context, params pagination.Params) (*pagination.Page[author.Author], error) {
	authors, err := s.repo.List(ctx, params.Offset(), params.Limit)
	if err != nil {
		return nil, err
	}

	// separate query, may drift from the page under concurrent writes
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}

	page := pagination.NewPage(params, total, authors)
	return &page, nil
}

func (s *authorService) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *authorService) Create(ctx context.Context, req author.CreateAuthorRequest) (*author.Author, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidationError(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	return s.repo.Insert(ctx, &author.AuthorWithCredential{
		Author: author.Author{
			ID:      uuid.New(),
			Email:   req.Email,
			Name:    req.Name,
			Country: req.Country,
			Image:   req.Image,
		},
		PasswordHash: hash,
	})
}

func (s *authorService) Update(ctx context.Context, id uuid.UUID, req author.UpdateAuthorRequest) (*author.Author, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperror.NewValidationError(err)
	}

	patch := author.AuthorPatch{
		Email:   req.Email,
		Name:    req.Name,
		Country: req.Country,
		Image:   req.Image,
	}
	if req.Password != nil {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	if patch.IsEmpty() {
		return s.repo.FindByID(ctx, id)
	}
	return s.repo.UpdateByID(ctx, id, patch)
}

func (s *authorService) Delete(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	return s.repo.DeleteByID(ctx, id)
}

func (s *authorService) Login(ctx context.Context, req author.LoginRequest) (string, error) {
	req.Normalize()
	if !req.Complete() {
		return "", author.ErrMissingCredentials
	}

	a, err := s.repo.FindByEmailWithCredential(ctx, req.Email)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			return "", author.ErrInvalidCredentials
		}
		return "", err
	}

	if !s.hasher.Verify(req.Password, a.PasswordHash) {
		return "", author.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(a.ID.String(), a.Email)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return token, nil
}

func (s *authorService) UploadImage(ctx context.Context, authorID string, fileName string, data []byte) (*author.Author, error) {
	file, err := s.uploads.Save(ctx, fileName, data)
	if err != nil {
		if errors.Is(err, storage.ErrEmptyFile) {
			return nil, imageRequired()
		}
		return nil, fmt.Errorf("store image: %w", err)
	}

	id, err := uuid.Parse(authorID)
	if err != nil {
		s.discard(ctx, file)
		return nil, author.ErrAuthorNotFound
	}

	image := file.Location
	updated, err := s.repo.UpdateByID(ctx, id, author.AuthorPatch{Image: &image})
	if err != nil {
		s.discard(ctx, file)
		return nil, err
	}

	log.Info().
		Str("author_id", updated.ID.String()).
		Str("image", image).
		Str("content_type", file.ContentType).
		Msg("Author image updated")

	return updated, nil
}

func (s *authorService) discard(ctx context.Context, file *storage.StoredFile) {
	if err := s.uploads.Delete(ctx, file.Key); err != nil {
		log.Warn().Err(err).Str("key", file.Key).Msg("Failed to remove orphaned upload")
	}
}

func imageRequired() error {
	return apperror.NewValidationError(validation.Errors{
		"image": author.ErrImageRequired,
	})
}
