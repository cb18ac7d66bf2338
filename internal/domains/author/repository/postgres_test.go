package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-catalog-api/internal/domains/author"
	"book-catalog-api/internal/infrastructure/database"
	"book-catalog-api/internal/shared/apperror"
)

type stubRow struct {
	values []interface{}
	err    error
}

func (r stubRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *uuid.UUID:
			*p = r.values[i].(uuid.UUID)
		case *string:
			*p = r.values[i].(string)
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return errors.New("unexpected scan destination")
		}
	}
	return nil
}

// mapCache is a pkg/cache.Cache kept in memory, JSON-encoded like the Redis one
type mapCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string][]byte{}}
}

func (c *mapCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *mapCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return nil
}

func (c *mapCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

func (c *mapCache) Ping(context.Context) error {
	return nil
}

func (c *mapCache) has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok
}

func TestScanAuthor(t *testing.T) {
	id := uuid.New()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	a, err := scanAuthor(stubRow{values: []interface{}{id, "a@b.com", "Ann", "SPAIN", "", now, now}})
	require.NoError(t, err)
	assert.Equal(t, &author.Author{
		ID:        id,
		Email:     "a@b.com",
		Name:      "Ann",
		Country:   "SPAIN",
		CreatedAt: now,
		UpdatedAt: now,
	}, a)

	_, err = scanAuthor(stubRow{err: pgx.ErrNoRows})
	assert.ErrorIs(t, err, pgx.ErrNoRows)
}

func TestFindByID_CacheHit(t *testing.T) {
	c := newMapCache()
	cached := author.Author{ID: uuid.New(), Email: "a@b.com", Name: "Ann", Country: "SPAIN"}
	require.NoError(t, c.Set(context.Background(), authorCacheKeyPrefix+cached.ID.String(), cached, time.Minute))

	// no pool: a hit never reaches the database
	repo := NewPostgresRepository(nil, c, 0)

	got, err := repo.FindByID(context.Background(), cached.ID)
	require.NoError(t, err)
	assert.Equal(t, cached.ID, got.ID)
	assert.Equal(t, "a@b.com", got.Email)
}

func TestNewPostgresRepository_DefaultTTL(t *testing.T) {
	repo := NewPostgresRepository(nil, newMapCache(), 0).(*postgresRepository)
	assert.Equal(t, defaultCacheTTL, repo.cacheTTL)

	repo = NewPostgresRepository(nil, newMapCache(), time.Minute).(*postgresRepository)
	assert.Equal(t, time.Minute, repo.cacheTTL)
}

// TEST_DATABASE_URL points at a disposable database; its tables are truncated.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, (&database.PostgresDB{Pool: pool}).EnsureSchema(ctx))
	_, err = pool.Exec(ctx, `TRUNCATE books, authors`)
	require.NoError(t, err)
	return pool
}

func insertAuthor(t *testing.T, repo author.Repository, email string) *author.Author {
	t.Helper()
	a, err := repo.Insert(context.Background(), &author.AuthorWithCredential{
		Author:       author.Author{ID: uuid.New(), Email: email, Name: "Ann", Country: "SPAIN"},
		PasswordHash: "hash-" + email,
	})
	require.NoError(t, err)
	return a
}

func TestPostgresRepository_Integration(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	c := newMapCache()
	repo := NewPostgresRepository(pool, c, time.Minute)

	first := insertAuthor(t, repo, "a@b.com")
	second := insertAuthor(t, repo, "c@d.com")

	_, err := repo.Insert(ctx, &author.AuthorWithCredential{
		Author:       author.Author{ID: uuid.New(), Email: "a@b.com", Name: "Bob", Country: "ITALY"},
		PasswordHash: "x",
	})
	var dup *apperror.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Contains(t, dup.Message, "authors_email_key")

	found, err := repo.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", found.Email)
	assert.True(t, c.has(authorCacheKeyPrefix+first.ID.String()))

	name := "Annie"
	updated, err := repo.UpdateByID(ctx, first.ID, author.AuthorPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Annie", updated.Name)
	assert.Equal(t, "a@b.com", updated.Email)
	assert.Equal(t, "SPAIN", updated.Country)
	assert.False(t, c.has(authorCacheKeyPrefix+first.ID.String()))

	cred, err := repo.FindByEmailWithCredential(ctx, "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "hash-a@b.com", cred.PasswordHash)

	_, err = repo.FindByEmailWithCredential(ctx, "nobody@b.com")
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)

	email := "c@d.com"
	_, err = repo.UpdateByID(ctx, first.ID, author.AuthorPatch{Email: &email})
	assert.ErrorAs(t, err, &dup)

	_, err = repo.UpdateByID(ctx, uuid.New(), author.AuthorPatch{Name: &name})
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)

	list, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	list, err = repo.List(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, second.ID, list[0].ID)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	deleted, err := repo.DeleteByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "c@d.com", deleted.Email)

	_, err = repo.FindByID(ctx, second.ID)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)

	_, err = repo.DeleteByID(ctx, second.ID)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}
