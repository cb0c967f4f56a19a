package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError
	FileNotFoundError

	// Logging errors
	CreateLogFileError

	// Parameter errors
	InvalidParameterError
	RulesConfigError

	// VHDB source errors
	DownloadError
	VHDBParseError

	// Catalog errors
	CatalogEmptyError
	CatalogReadError
	CatalogWriteError
	CatalogMetadataError
	CatalogInvalidError

	// Cache errors
	CacheRegistryError
	CacheEntryNotFoundError
	CacheAmbiguousPrefixError

	// Genome fetch errors
	GenomeBatchError
	GenomeWriteError

	// Export errors
	ExportSQLiteError

	// Database errors
	DBConnectionError
	DBNotConnectedError
	DBTableExistsCheckError
	DBPublishError

	// Schema errors
	SchemaGORMConnectionError
	SchemaMigrateError
	SchemaCollationError
)
