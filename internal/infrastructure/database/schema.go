package database

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/rs/zerolog/log"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema creates the tables the repositories rely on.
// Statements are idempotent so this runs on every start.
func (db *PostgresDB) EnsureSchema(ctx context.Context) error {
	if db.Pool == nil {
		return fmt.Errorf("database pool is not initialized")
	}
	if _, err := db.Pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	log.Info().Msg("[DATABASE] Schema ensured")
	return nil
}
