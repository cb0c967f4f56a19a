// Package db defines access to the PostgreSQL database where catalogs
// are published.
package db

import (
	"context"

	"github.com/gnames/virotaxa/pkg/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Operator manages the connection to PostgreSQL. Components that write
// catalogs use Pool for transactions and bulk inserts.
type Operator interface {
	// Connect establishes a connection pool to the database.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close closes the database connection pool.
	Close() error

	// Pool returns the underlying pgxpool.Pool, nil before Connect.
	Pool() *pgxpool.Pool

	// TableExists checks if a table exists in the public schema.
	TableExists(ctx context.Context, tableName string) (bool, error)
}
