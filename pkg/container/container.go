package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"book-catalog-api/internal/config"
	"book-catalog-api/internal/domains/author"
	authorHandler "book-catalog-api/internal/domains/author/handler"
	authorRepo "book-catalog-api/internal/domains/author/repository"
	authorService "book-catalog-api/internal/domains/author/service"
	"book-catalog-api/internal/domains/book"
	bookHandler "book-catalog-api/internal/domains/book/handler"
	bookRepo "book-catalog-api/internal/domains/book/repository"
	bookService "book-catalog-api/internal/domains/book/service"
	infraCache "book-catalog-api/internal/infrastructure/cache"
	"book-catalog-api/internal/infrastructure/database"
	"book-catalog-api/internal/infrastructure/storage"
	"book-catalog-api/internal/shared/pagination"
	"book-catalog-api/pkg/cache"
	"book-catalog-api/pkg/jwt"
	"book-catalog-api/pkg/password"
)

const connectTimeout = 30 * time.Second

// Container holds every long-lived dependency of the API.
// Build order: infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config       *config.Config
	DB           *database.PostgresDB
	Cache        cache.Cache
	JWTManager   *jwt.Manager
	Hasher       password.Hasher
	Uploads      storage.Storage
	LocalUploads *storage.LocalStorage // nil unless STORAGE_DRIVER=local
	Paginator    *pagination.Paginator

	// Repositories
	AuthorRepo author.Repository
	BookRepo   book.Repository

	// Services
	AuthorService author.Service
	BookService   book.Service

	// Handlers
	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.BookHandler
}

// NewContainer connects to the infrastructure described by cfg and wires
// the domains on top of it. On error, anything already opened is closed.
func NewContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Str("env", cfg.App.Environment).Msg("Initializing container")

	c := &Container{Config: cfg}
	if err := c.initInfrastructure(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("Container initialized")
	return c, nil
}

func (c *Container) initInfrastructure(ctx context.Context) error {
	if err := c.initDatabase(ctx); err != nil {
		return err
	}
	c.initCache(ctx)
	if err := c.initStorage(ctx); err != nil {
		return err
	}

	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret, c.Config.AccessTokenLifetime())
	c.Hasher = password.NewBcryptHasher(password.DefaultCost)
	c.Paginator = pagination.New(c.Config.Pagination.DefaultLimit, c.Config.Pagination.MaxLimit)
	return nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	db := database.NewPostgresDB(c.Config.Database)
	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	if err := db.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to prepare schema: %w", err)
	}

	log.Info().Str("host", c.Config.Database.Host).Msg("Database connected")
	return nil
}

// initCache falls back to a no-op cache when Redis is disabled or unreachable;
// the database stays the source of truth either way
func (c *Container) initCache(ctx context.Context) {
	c.Cache = cache.Noop{}
	if !c.Config.Redis.Enabled {
		log.Info().Msg("Redis disabled, caching off")
		return
	}

	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := redisCache.Connect(ctx); err != nil {
		log.Warn().Err(err).Str("host", c.Config.Redis.Host).Msg("Redis connection failed, caching off")
		_ = redisCache.Close()
		return
	}

	c.Cache = redisCache
	log.Info().Str("host", c.Config.Redis.Host).Msg("Redis connected")
}

func (c *Container) initStorage(ctx context.Context) error {
	switch c.Config.Storage.Driver {
	case "minio":
		minioStorage, err := storage.NewMinIOStorage(ctx, c.Config.MinIO)
		if err != nil {
			return fmt.Errorf("failed to init minio storage: %w", err)
		}
		c.Uploads = minioStorage
		log.Info().Str("endpoint", c.Config.MinIO.Endpoint).Str("bucket", c.Config.MinIO.Bucket).Msg("MinIO storage ready")
	default:
		local, err := storage.NewLocalStorage(c.Config.Storage.LocalDir, c.Config.Storage.PublicPath)
		if err != nil {
			return fmt.Errorf("failed to init local storage: %w", err)
		}
		c.Uploads = local
		c.LocalUploads = local
		log.Info().Str("dir", local.Dir()).Msg("Local upload storage ready")
	}
	return nil
}

func (c *Container) initRepositories() {
	c.AuthorRepo = authorRepo.NewPostgresRepository(c.DB.Pool, c.Cache, c.Config.Redis.CacheTTL)
	c.BookRepo = bookRepo.NewPostgresRepository(c.DB.Pool)
}

func (c *Container) initServices() {
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.Hasher, c.JWTManager, c.Uploads)
	c.BookService = bookService.NewBookService(c.BookRepo)
}

func (c *Container) initHandlers() {
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService, c.Paginator, c.Config.Storage.MaxUploadBytes)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService, c.Paginator)
}

// Cleanup releases connections. Safe to call on a partially built container.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		} else {
			log.Info().Msg("Redis connections closed")
		}
	}
}
