package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "virotaxa"

	// DefaultVHDBURL is the location of the Virus-Host DB table.
	DefaultVHDBURL = "https://www.genome.jp/ftp/db/virushostdb/virushostdb.tsv"

	// DefaultNCBIBaseURL is the root of NCBI E-utilities.
	DefaultNCBIBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/virotaxa by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/virotaxa by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// VHDBCacheDir returns the directory of cached VHDB versions.
// Returns ~/.cache/virotaxa/vhdb by default.
func VHDBCacheDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "vhdb")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/virotaxa/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/virotaxa/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// RulesFilePath returns the full path to the rules.yaml file.
// Returns ~/.config/virotaxa/rules.yaml by default.
func RulesFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "rules.yaml")
}
