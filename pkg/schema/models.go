// Package schema provides PostgreSQL models of published catalogs.
// Several catalogs can live in one database, rows of each are keyed by
// the catalog ID from the catalog metadata.
package schema

import "time"

// Catalog is one published catalog.
type Catalog struct {
	// ID is the catalog_id of the metadata sidecar.
	ID string `gorm:"type:uuid;primaryKey"`

	// Mode is the host mode the catalog was built with.
	Mode string `gorm:"type:varchar(20);not null"`

	ExcludeBacteriophages bool

	// PrimateHomologs is none, strict or extended.
	PrimateHomologs string `gorm:"type:varchar(20)"`

	// SourceSHA256 of the VHDB file, empty if it was unknown.
	SourceSHA256 string `gorm:"column:source_sha256;type:varchar(64)"`

	VirotaxaVersion string `gorm:"type:varchar(50)"`
	GeneratedAt     time.Time
	TotalTaxa       int

	// Metadata keeps the whole sidecar document.
	Metadata string `gorm:"type:jsonb"`

	PublishedAt time.Time `gorm:"not null"`
}

// TableName sets the table name of Catalog.
func (Catalog) TableName() string { return "catalogs" }

// CatalogEntry is a virus of a published catalog.
type CatalogEntry struct {
	CatalogID string `gorm:"type:uuid;primaryKey"`
	TaxID     int    `gorm:"column:taxid;primaryKey;autoIncrement:false"`

	// Position keeps the order of the catalog file.
	Position int `gorm:"not null"`

	Name     string `gorm:"type:text;not null"`
	Family   string `gorm:"type:varchar(100);index"`
	Order    string `gorm:"column:order_name;type:varchar(100)"`
	Evidence string `gorm:"type:text"`

	// PMID may hold a comma-separated list of PubMed IDs.
	PMID string `gorm:"column:pmid;type:text"`
}

// TableName sets the table name of CatalogEntry.
func (CatalogEntry) TableName() string { return "catalog_entries" }

// CatalogAccession is a RefSeq accession of a catalog entry.
type CatalogAccession struct {
	CatalogID string `gorm:"type:uuid;primaryKey"`
	TaxID     int    `gorm:"column:taxid;primaryKey;autoIncrement:false"`
	Position  int    `gorm:"primaryKey;autoIncrement:false"`
	Accession string `gorm:"type:varchar(50);not null;index"`
}

// TableName sets the table name of CatalogAccession.
func (CatalogAccession) TableName() string { return "catalog_accessions" }
