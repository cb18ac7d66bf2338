package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"book-catalog-api/internal/infrastructure/database"
)

const defaultJWTSecret = "your-secret-key-change-in-production"

// Config holds the whole application configuration.
// It is populated from environment variables once at start and passed
// explicitly into every component.
type Config struct {
	App        AppConfig
	Database   *database.DBConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Auth       AuthConfig
	Pagination PaginationConfig
	Storage    StorageConfig
	MinIO      MinIOConfig
	CORS       CORSConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	LogLevel    string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type JWTConfig struct {
	Secret            string
	AccessTokenExpiry int // minutes
}

// AuthConfig toggles authorization checks that go beyond "some valid token"
type AuthConfig struct {
	// EnforceOwnership rejects author mutations whose token belongs to another author
	EnforceOwnership bool
	// ProtectBooks puts the auth gate in front of book mutations
	ProtectBooks bool
}

type PaginationConfig struct {
	DefaultLimit int
	MaxLimit     int // 0 = unbounded
}

type StorageConfig struct {
	Driver         string // local, minio
	LocalDir       string
	PublicPath     string
	MaxUploadBytes int64
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads config from environment variables
func Load() (*Config, error) {
	dbConfig, err := LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Database: dbConfig,
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Book Catalog API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "3000"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvBool("REDIS_ENABLED", true),
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			CacheTTL: getEnvDuration("REDIS_CACHE_TTL", 15*time.Minute),
		},
		JWT: JWTConfig{
			Secret:            getEnv("JWT_SECRET", defaultJWTSecret),
			AccessTokenExpiry: getEnvInt("JWT_ACCESS_EXPIRY", 60), // 1 hour
		},
		Auth: AuthConfig{
			EnforceOwnership: getEnvBool("AUTH_ENFORCE_OWNERSHIP", false),
			ProtectBooks:     getEnvBool("AUTH_PROTECT_BOOKS", false),
		},
		Pagination: PaginationConfig{
			DefaultLimit: getEnvInt("PAGINATION_DEFAULT_LIMIT", 10),
			MaxLimit:     getEnvInt("PAGINATION_MAX_LIMIT", 0),
		},
		Storage: StorageConfig{
			Driver:         strings.ToLower(getEnv("STORAGE_DRIVER", "local")),
			LocalDir:       getEnv("STORAGE_LOCAL_DIR", "public"),
			PublicPath:     getEnv("STORAGE_PUBLIC_PATH", "/public"),
			MaxUploadBytes: int64(getEnvInt("STORAGE_MAX_UPLOAD_BYTES", 5*1024*1024)),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "book-catalog"),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the config is usable
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if c.JWT.AccessTokenExpiry <= 0 {
		return fmt.Errorf("JWT_ACCESS_EXPIRY must be positive")
	}
	if c.Pagination.DefaultLimit <= 0 {
		return fmt.Errorf("PAGINATION_DEFAULT_LIMIT must be positive")
	}
	if c.Pagination.MaxLimit < 0 {
		return fmt.Errorf("PAGINATION_MAX_LIMIT must not be negative")
	}

	switch c.Storage.Driver {
	case "local", "minio":
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q (want local or minio)", c.Storage.Driver)
	}

	// Production must not run with development defaults
	if c.App.Environment == "production" {
		if c.JWT.Secret == defaultJWTSecret {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Database == nil || c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}

	return nil
}

// AccessTokenLifetime returns the JWT access token lifetime as a duration
func (c *Config) AccessTokenLifetime() time.Duration {
	return time.Duration(c.JWT.AccessTokenExpiry) * time.Minute
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
