// Package config provides configuration management for virotaxa.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid
// - All mutations go through Option functions
// - Invalid options are rejected with gn.Warn(), config stays valid
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - VHDB: url, timeout
//   - Catalog: mode, exclude_bacteriophages, primate_homologs,
//     primate_families
//   - NCBI: base_url, email, api_key, batch_size
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Log: level, format, destination
//
// Runtime-only fields (CLI flags only):
//   - NCBI.Delay (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use VIROTAXA_ prefix with underscores for nesting:
//
//	VIROTAXA_CATALOG_MODE=pandemic
//	VIROTAXA_NCBI_EMAIL=me@example.org
//	VIROTAXA_NCBI_API_KEY=xxxx
//	VIROTAXA_LOG_LEVEL=debug
package config

import "time"

// Config represents the complete virotaxa configuration.
type Config struct {
	// VHDB contains settings for downloading the Virus-Host DB table.
	VHDB VHDBConfig `mapstructure:"vhdb" yaml:"vhdb"`

	// Catalog contains default parameters of catalog builds.
	Catalog CatalogConfig `mapstructure:"catalog" yaml:"catalog"`

	// NCBI contains E-utilities settings used by genome fetch.
	NCBI NCBIConfig `mapstructure:"ncbi" yaml:"ncbi"`

	// Database contains PostgreSQL connection settings used by
	// catalog publish.
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// VHDBConfig describes where the Virus-Host DB is downloaded from.
type VHDBConfig struct {
	// URL of the virushostdb.tsv file.
	URL string `mapstructure:"url" yaml:"url"`

	// Timeout of the download in seconds.
	Timeout int `mapstructure:"timeout" yaml:"timeout"`
}

// CatalogConfig keeps default catalog build parameters.
type CatalogConfig struct {
	// Mode is the host mode: "clinical", "pandemic" or "mammal".
	Mode string `mapstructure:"mode" yaml:"mode"`

	// ExcludeBacteriophages removes phages from the catalog when true.
	// Uses pointer to distinguish between unset (nil) and false.
	ExcludeBacteriophages *bool `mapstructure:"exclude_bacteriophages" yaml:"exclude_bacteriophages"`

	// PrimateHomologs is "none", "strict" or "extended".
	PrimateHomologs string `mapstructure:"primate_homologs" yaml:"primate_homologs"`

	// PrimateFamilies limits primate homologs to given virus families.
	// Empty slice means all families.
	PrimateFamilies []string `mapstructure:"primate_families" yaml:"primate_families"`
}

// NCBIConfig contains NCBI E-utilities settings.
type NCBIConfig struct {
	// BaseURL of E-utilities, ends with a slash.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Email is required by NCBI usage policy.
	Email string `mapstructure:"email" yaml:"email"`

	// APIKey raises NCBI rate limit from 3 to 10 requests per second.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`

	// BatchSize is the number of accessions per request.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`

	// Delay between batches. When zero, it is derived from APIKey.
	Delay time.Duration `mapstructure:"-" yaml:"-"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize is the number of rows sent per CopyFrom call.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), stderr or stdout.
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	exclude := true
	res := &Config{
		VHDB: VHDBConfig{
			URL:     DefaultVHDBURL,
			Timeout: 300,
		},
		Catalog: CatalogConfig{
			Mode:                  "clinical",
			ExcludeBacteriophages: &exclude,
			PrimateHomologs:       "none",
		},
		NCBI: NCBIConfig{
			BaseURL:   DefaultNCBIBaseURL,
			BatchSize: 100,
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "virotaxa",
			SSLMode:   "disable",
			BatchSize: 10_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}

// NCBIDelay returns the pause between E-utilities batches. Without an
// API key NCBI allows 3 requests per second, with a key 10.
func (c *Config) NCBIDelay() time.Duration {
	if c.NCBI.Delay > 0 {
		return c.NCBI.Delay
	}
	if c.NCBI.APIKey != "" {
		return 100 * time.Millisecond
	}
	return 400 * time.Millisecond
}
