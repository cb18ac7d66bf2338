package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"book-catalog-api/internal/domains/author"
	"book-catalog-api/internal/domains/book"
	"book-catalog-api/internal/shared/apperror"
)

// SQLSTATE foreign_key_violation
const pgForeignKeyViolation = "23503"

// expandedColumns reads a book aliased b joined to its author aliased a
const expandedColumns = `
	b.id, b.title, b.pages, b.publisher_name, b.publisher_country, b.created_at, b.updated_at,
	a.id, a.email, a.name, a.country, a.image, a.created_at, a.updated_at`

// postgresRepository implements book.Repository. Writes run as data-modifying
// CTEs so the returned row carries the expanded author in one round trip.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) book.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) FindByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	query := `
		SELECT ` + expandedColumns + `
		FROM books b
		LEFT JOIN authors a ON a.id = b.author_id
		WHERE b.id = $1`

	b, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("find book: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) FindByTitle(ctx context.Context, title string) ([]book.Book, error) {
	query := `
		SELECT ` + expandedColumns + `
		FROM books b
		LEFT JOIN authors a ON a.id = b.author_id
		WHERE b.title = $1
		ORDER BY b.created_at, b.id`

	return r.queryBooks(ctx, "find books by title", query, title)
}

func (r *postgresRepository) Insert(ctx context.Context, rec book.Record) (*book.Book, error) {
	name, country := publisherColumns(rec.Publisher)
	query := `
		WITH b AS (
			INSERT INTO books (id, title, author_id, pages, publisher_name, publisher_country)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING *
		)
		SELECT ` + expandedColumns + `
		FROM b
		LEFT JOIN authors a ON a.id = b.author_id`

	b, err := scanBook(r.pool.QueryRow(ctx, query,
		rec.ID,
		rec.Title,
		rec.AuthorID,
		rec.Pages,
		name,
		country,
	))
	if err != nil {
		return nil, fmt.Errorf("insert book: %w", storeError(err))
	}
	return b, nil
}

func (r *postgresRepository) UpdateByID(ctx context.Context, id uuid.UUID, patch book.BookPatch) (*book.Book, error) {
	name, country := publisherColumns(patch.Publisher)
	query := `
		WITH b AS (
			UPDATE books SET
				title             = COALESCE($2, title),
				author_id         = COALESCE($3, author_id),
				pages             = COALESCE($4, pages),
				publisher_name    = COALESCE($5, publisher_name),
				publisher_country = COALESCE($6, publisher_country),
				updated_at        = NOW()
			WHERE id = $1
			RETURNING *
		)
		SELECT ` + expandedColumns + `
		FROM b
		LEFT JOIN authors a ON a.id = b.author_id`

	b, err := scanBook(r.pool.QueryRow(ctx, query,
		id,
		patch.Title,
		patch.AuthorID,
		patch.Pages,
		name,
		country,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("update book: %w", storeError(err))
	}
	return b, nil
}

func (r *postgresRepository) DeleteByID(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	query := `
		WITH b AS (
			DELETE FROM books WHERE id = $1
			RETURNING *
		)
		SELECT ` + expandedColumns + `
		FROM b
		LEFT JOIN authors a ON a.id = b.author_id`

	b, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("delete book: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) List(ctx context.Context, offset, limit int) ([]book.Book, error) {
	query := `
		SELECT ` + expandedColumns + `
		FROM books b
		LEFT JOIN authors a ON a.id = b.author_id
		ORDER BY b.created_at, b.id
		OFFSET $1 LIMIT $2`

	return r.queryBooks(ctx, "list books", query, offset, limit)
}

func (r *postgresRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return 0, fmt.Errorf("count books: %w", err)
	}
	return total, nil
}

func (r *postgresRepository) queryBooks(ctx context.Context, op, query string, args ...interface{}) ([]book.Book, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	books, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (book.Book, error) {
		b, err := scanBook(row)
		if err != nil {
			return book.Book{}, err
		}
		return *b, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return books, nil
}

func scanBook(row pgx.Row) (*book.Book, error) {
	var (
		b                book.Book
		publisherName    *string
		publisherCountry *string
		authorID         *uuid.UUID
		authorEmail      *string
		authorName       *string
		authorCountry    *string
		authorImage      *string
		authorCreatedAt  *time.Time
		authorUpdatedAt  *time.Time
	)

	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.Pages,
		&publisherName,
		&publisherCountry,
		&b.CreatedAt,
		&b.UpdatedAt,
		&authorID,
		&authorEmail,
		&authorName,
		&authorCountry,
		&authorImage,
		&authorCreatedAt,
		&authorUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if publisherName != nil && publisherCountry != nil {
		b.Publisher = &book.Publisher{Name: *publisherName, Country: *publisherCountry}
	}
	if authorID != nil {
		b.Author = &author.Author{
			ID:        *authorID,
			Email:     deref(authorEmail),
			Name:      deref(authorName),
			Country:   deref(authorCountry),
			Image:     deref(authorImage),
			CreatedAt: derefTime(authorCreatedAt),
			UpdatedAt: derefTime(authorUpdatedAt),
		}
	}
	return &b, nil
}

func publisherColumns(p *book.Publisher) (*string, *string) {
	if p == nil {
		return nil, nil
	}
	return &p.Name, &p.Country
}

func storeError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return book.ErrUnknownAuthor
	}
	return apperror.FromStore(err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
