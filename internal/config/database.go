package config

import (
	"fmt"
	"strconv"
	"time"

	"book-catalog-api/internal/infrastructure/database"
)

// LoadDatabaseConfig reads the connection, pool and retry settings.
// A malformed DB_PORT is an error; the tuning knobs fall back to their defaults.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	port, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil || port <= 0 {
		return nil, fmt.Errorf("invalid DB_PORT %q", getEnv("DB_PORT", ""))
	}

	return &database.DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     port,
		Username: getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		DBName:   getEnv("DB_NAME", "book_catalog"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),

		MaxConns:          int32(getEnvInt("DB_MAX_CONNS", 10)),
		MinConns:          int32(getEnvInt("DB_MIN_CONNS", 1)),
		MaxConnLifetime:   getEnvDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
		MaxConnIdleTime:   getEnvDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		HealthCheckPeriod: getEnvDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),

		MaxRetries:     getEnvInt("DB_MAX_RETRIES", 5),
		RetryDelay:     getEnvDuration("DB_RETRY_DELAY", 2*time.Second),
		ConnectTimeout: getEnvDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
	}, nil
}
