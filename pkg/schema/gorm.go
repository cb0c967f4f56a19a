package schema

import (
	"gorm.io/gorm"
)

// AllModels returns all schema models for GORM AutoMigrate.
func AllModels() []any {
	return []any{
		&Catalog{},
		&CatalogEntry{},
		&CatalogAccession{},
	}
}

// TableNames returns tables of AllModels in dependency order.
func TableNames() []string {
	return []string{
		Catalog{}.TableName(),
		CatalogEntry{}.TableName(),
		CatalogAccession{}.TableName(),
	}
}

// Migrate runs GORM AutoMigrate to create or update schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(AllModels()...)
}
