// Package lifecycle defines steps of putting a catalog into PostgreSQL.
package lifecycle

import (
	"context"

	"github.com/gnames/virotaxa/pkg/catalog"
)

// SchemaManager creates or updates tables of published catalogs.
// It is idempotent, so it is safe to run before every publish.
type SchemaManager interface {
	// Migrate brings the schema to the latest version using GORM
	// AutoMigrate.
	Migrate(ctx context.Context) error
}

// Publisher loads a catalog into the database.
type Publisher interface {
	// Publish replaces rows of the catalog with the same catalog ID
	// and returns the number of loaded entries.
	Publish(
		ctx context.Context,
		entries []catalog.Entry,
		meta *catalog.Metadata,
	) (int, error)
}
