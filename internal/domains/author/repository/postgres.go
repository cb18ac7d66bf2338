package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"book-catalog-api/internal/domains/author"
	"book-catalog-api/internal/shared/apperror"
	"book-catalog-api/pkg/cache"
)

const (
	authorCacheKeyPrefix = "author:"
	defaultCacheTTL      = 15 * time.Minute
)

const authorColumns = `id, email, name, country, image, created_at, updated_at`

// postgresRepository implements author.Repository on PostgreSQL with
// cache-aside reads by id
type postgresRepository struct {
	pool     *pgxpool.Pool
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewPostgresRepository creates the author store. A zero ttl uses the default.
func NewPostgresRepository(pool *pgxpool.Pool, c cache.Cache, ttl time.Duration) author.Repository {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &postgresRepository{
		pool:     pool,
		cache:    c,
		cacheTTL: ttl,
	}
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var a author.Author
	if found, err := r.cache.Get(ctx, cacheKey, &a); err == nil && found {
		return &a, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`
	found, err := scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, found, r.cacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to cache author")
	}
	return found, nil
}

func (r *postgresRepository) FindByEmailWithCredential(ctx context.Context, email string) (*author.AuthorWithCredential, error) {
	query := `SELECT ` + authorColumns + `, password_hash FROM authors WHERE email = $1`

	var a author.AuthorWithCredential
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&a.ID,
		&a.Email,
		&a.Name,
		&a.Country,
		&a.Image,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("find author by email: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) Insert(ctx context.Context, a *author.AuthorWithCredential) (*author.Author, error) {
	query := `
		INSERT INTO authors (id, email, password_hash, name, country, image)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + authorColumns

	created, err := scanAuthor(r.pool.QueryRow(ctx, query,
		a.ID,
		a.Email,
		a.PasswordHash,
		a.Name,
		a.Country,
		a.Image,
	))
	if err != nil {
		return nil, fmt.Errorf("insert author: %w", apperror.FromStore(err))
	}
	return created, nil
}

func (r *postgresRepository) UpdateByID(ctx context.Context, id uuid.UUID, patch author.AuthorPatch) (*author.Author, error) {
	query := `
		UPDATE authors SET
			email         = COALESCE($2, email),
			password_hash = COALESCE($3, password_hash),
			name          = COALESCE($4, name),
			country       = COALESCE($5, country),
			image         = COALESCE($6, image),
			updated_at    = NOW()
		WHERE id = $1
		RETURNING ` + authorColumns

	updated, err := scanAuthor(r.pool.QueryRow(ctx, query,
		id,
		patch.Email,
		patch.PasswordHash,
		patch.Name,
		patch.Country,
		patch.Image,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("update author: %w", apperror.FromStore(err))
	}

	r.invalidate(ctx, id)
	return updated, nil
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	query := `DELETE FROM authors WHERE id = $1 RETURNING ` + authorColumns

	deleted, err := scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("delete author: %w", err)
	}

	r.invalidate(ctx, id)
	return deleted, nil
}

func (r *postgresRepository) List(ctx context.Context, offset, limit int) ([]author.Author, error) {
	query := `
		SELECT ` + authorColumns + `
		FROM authors
		ORDER BY created_at, id
		OFFSET $1 LIMIT $2`

	rows, err := r.pool.Query(ctx, query, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list authors: %w", err)
	}

	authors, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (author.Author, error) {
		a, err := scanAuthor(row)
		if err != nil {
			return author.Author{}, err
		}
		return *a, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan authors: %w", err)
	}
	return authors, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count authors: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) invalidate(ctx context.Context, id uuid.UUID) {
	key := authorCacheKeyPrefix + id.String()
	if err := r.cache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("Failed to invalidate author cache")
	}
}

func scanAuthor(row pgx.Row) (*author.Author, error) {
	var a author.Author
	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.Name,
		&a.Country,
		&a.Image,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
