// Package ioschema implements SchemaManager interface for
// database schema management. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"

	"github.com/gnames/virotaxa/pkg/db"
	"github.com/gnames/virotaxa/pkg/lifecycle"
	"github.com/gnames/virotaxa/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const collationSQL = `ALTER TABLE %s ALTER COLUMN %s ` +
	`TYPE %s COLLATE "C"`

type columnDef struct {
	table, column, colType string
}

// collationColumns are sorted byte-wise regardless of the database
// locale, so virus names and families list the same everywhere.
var collationColumns = []columnDef{
	{"catalog_entries", "name", "TEXT"},
	{"catalog_entries", "family", "VARCHAR(100)"},
	{"catalog_entries", "order_name", "VARCHAR(100)"},
}

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Migrate creates or updates catalog tables and sets collation of
// text columns.
func (m *manager) Migrate(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	sqlDB := stdlib.OpenDBFromPool(pool)

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return GORMConnectionError(err)
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(err)
	}

	return m.setCollation(ctx)
}

func (m *manager) setCollation(ctx context.Context) error {
	pool := m.operator.Pool()
	for _, col := range collationColumns {
		q := formatCollationSQL(collationSQL, col.table,
			col.column, col.colType)
		if _, err := pool.Exec(ctx, q); err != nil {
			return CollationError(col.table, col.column, err)
		}
	}
	return nil
}
