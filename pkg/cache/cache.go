// Package cache describes a registry of VHDB versions kept by their
// content hash. Catalogs built from a cached version can be rebuilt
// later from exactly the same data.
package cache

import "github.com/gnames/virotaxa/pkg/vhdb"

// RegistryVersion is the version of the registry document format.
const RegistryVersion = "1.0"

// MinPrefixLen is the shortest hash prefix accepted by lookups.
const MinPrefixLen = 8

// ShortHashLen is the length of hashes shown to users and used in
// cached file names.
const ShortHashLen = 12

// Entry is one cached VHDB version.
type Entry struct {
	// Hash is SHA-256 of the file, the key of the entry.
	Hash string `json:"-"`

	// Path is the location of the cached file.
	Path string `json:"-"`

	Filename      string `json:"filename"`
	CachedAt      string `json:"cached_at"`
	FileSizeBytes int64  `json:"file_size_bytes"`

	// DownloadMeta is nil for files that were not downloaded by
	// virotaxa.
	DownloadMeta *vhdb.DownloadMeta `json:"download_metadata"`
}

// ShortHash returns the beginning of the hash.
func (e Entry) ShortHash() string {
	return ShortHash(e.Hash)
}

// ShortHash truncates a hash to ShortHashLen.
func ShortHash(hash string) string {
	if len(hash) > ShortHashLen {
		return hash[:ShortHashLen]
	}
	return hash
}

// FileName returns the name of the cached file for a hash.
func FileName(hash string) string {
	return "vhdb_" + ShortHash(hash) + ".tsv"
}

// Registry keeps VHDB files by their content hash.
type Registry interface {
	// Add copies a VHDB file to the cache and registers it. When meta
	// is nil, the download sidecar of the file is used if it exists.
	Add(path string, meta *vhdb.DownloadMeta) (Entry, error)

	// List returns entries with existing files, the most recently
	// cached first.
	List() ([]Entry, error)

	// Get finds an entry with an existing file by a hash prefix of at
	// least MinPrefixLen characters.
	Get(prefix string) (Entry, error)

	// Remove deletes the entry matching a hash prefix and its file.
	Remove(prefix string) (Entry, error)
}
