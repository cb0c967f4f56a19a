package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptVHDBURL sets the URL of the Virus-Host DB table.
func OptVHDBURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("VHDB URL", s) {
			c.VHDB.URL = s
		}
	}
}

// OptVHDBTimeout sets the download timeout in seconds.
func OptVHDBTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("VHDB Timeout", i) {
			c.VHDB.Timeout = i
		}
	}
}

// OptCatalogMode sets the host mode of catalog builds.
// Valid values: "clinical", "pandemic", "mammal".
func OptCatalogMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Catalog.Mode", s) {
			c.Catalog.Mode = s
		}
	}
}

// OptCatalogExcludeBacteriophages sets whether bacteriophages are removed.
// Uses pointer to distinguish between unset (nil) and false.
func OptCatalogExcludeBacteriophages(b *bool) Option {
	return func(c *Config) {
		if b != nil {
			c.Catalog.ExcludeBacteriophages = b
		}
	}
}

// OptCatalogPrimateHomologs sets how primate-hosted viruses are merged.
// Valid values: "none", "strict", "extended".
func OptCatalogPrimateHomologs(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Catalog.PrimateHomologs", s) {
			c.Catalog.PrimateHomologs = s
		}
	}
}

// OptCatalogPrimateFamilies limits primate homologs to the given families.
func OptCatalogPrimateFamilies(ss []string) Option {
	var res []string
	for _, v := range ss {
		v = strings.TrimSpace(v)
		if v != "" {
			res = append(res, v)
		}
	}
	return func(c *Config) {
		if len(res) > 0 {
			c.Catalog.PrimateFamilies = res
		}
	}
}

// OptNCBIBaseURL sets the E-utilities base URL.
func OptNCBIBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("NCBI Base URL", s) {
			if !strings.HasSuffix(s, "/") {
				s += "/"
			}
			c.NCBI.BaseURL = s
		}
	}
}

// OptNCBIEmail sets the contact email sent to NCBI.
func OptNCBIEmail(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("NCBI Email", s) {
			c.NCBI.Email = s
		}
	}
}

// OptNCBIAPIKey sets the NCBI API key.
func OptNCBIAPIKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("NCBI API Key", s) {
			c.NCBI.APIKey = s
		}
	}
}

// OptNCBIBatchSize sets the number of accessions per E-utilities request.
func OptNCBIBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("NCBI Batch Size", i) {
			c.NCBI.BatchSize = i
		}
	}
}

// OptNCBIDelay overrides the pause between E-utilities batches.
// Runtime-only field - not in ToOptions().
func OptNCBIDelay(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.NCBI.Delay = d
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of rows per CopyFrom call.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
