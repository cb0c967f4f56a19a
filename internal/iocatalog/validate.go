package iocatalog

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gnames/gnfmt"
	"github.com/gnames/virotaxa/internal/iofs"
	"github.com/gnames/virotaxa/pkg/catalog"
)

// sidecar is a lenient view of catalog metadata. Pointers tell apart
// missing values from zero ones.
type sidecar struct {
	Version    *string `json:"_version"`
	Generation *struct {
		Timestamp *string `json:"timestamp"`
		Version   *string `json:"virotaxa_version"`
	} `json:"generation"`
	Source struct {
		FilePath   string  `json:"file_path"`
		FileSHA256 *string `json:"file_sha256"`
	} `json:"source"`
	Parameters *struct {
		Mode                  *string `json:"mode"`
		ExcludeBacteriophages *bool   `json:"exclude_bacteriophages"`
	} `json:"parameters"`
	Statistics struct {
		TotalTaxa      *int `json:"total_taxa"`
		UniqueFamilies *int `json:"unique_families"`
	} `json:"statistics"`
}

const unknown = "unknown"

// Validate checks a catalog file against its metadata sidecar.
// Missing or unreadable files end validation early, count and
// source checks are all performed.
func Validate(path string) catalog.ValidationResult {
	var res catalog.ValidationResult

	if !iofs.Exists(path) {
		res.AddError("Catalog file not found: " + path)
		return res
	}

	metaPath := MetadataPath(path)
	data, err := os.ReadFile(metaPath)
	if err != nil {
		res.AddError("Metadata file not found: " + metaPath)
		return res
	}

	var meta sidecar
	if err = (gnfmt.GNjson{}).Decode(data, &meta); err != nil {
		res.AddError(fmt.Sprintf("Invalid metadata JSON: %v", err))
		return res
	}

	entries, err := Load(path)
	if err != nil {
		res.AddError(fmt.Sprintf("Failed to parse catalog: %v", err))
		return res
	}

	res.AddFact("catalog_rows", strconv.Itoa(len(entries)))
	res.AddFact("metadata_version", deref(meta.Version))

	if exp := meta.Statistics.TotalTaxa; exp != nil {
		if len(entries) != *exp {
			res.AddError(fmt.Sprintf(
				"Taxa count mismatch: catalog has %d, metadata says %d",
				len(entries), *exp,
			))
		} else {
			res.AddFact("taxa_count_verified", "yes")
		}
	}

	if exp := meta.Statistics.UniqueFamilies; exp != nil {
		act := catalog.ComputeStats(entries).UniqueFamilies
		if act != *exp {
			res.AddWarning(
				fmt.Sprintf("Family count mismatch: %d vs %d", act, *exp),
			)
		} else {
			res.AddFact("family_count_verified", "yes")
		}
	}

	checkSource(&res, meta.Source.FilePath, meta.Source.FileSHA256)

	if gen := meta.Generation; gen != nil {
		res.AddFact("generated_at", deref(gen.Timestamp))
		res.AddFact("virotaxa_version", deref(gen.Version))
	}

	if p := meta.Parameters; p != nil {
		res.AddFact("mode", deref(p.Mode))
		exclude := unknown
		if p.ExcludeBacteriophages != nil {
			exclude = strconv.FormatBool(*p.ExcludeBacteriophages)
		}
		res.AddFact("exclude_bacteriophages", exclude)
	}

	return res
}

func checkSource(res *catalog.ValidationResult, path string, hash *string) {
	if path == "" || hash == nil || *hash == "" {
		return
	}

	if !iofs.Exists(path) {
		res.AddWarning("Source VHDB not found: " + path)
		short := *hash
		if len(short) > 16 {
			short = short[:16]
		}
		res.AddFact("recorded_source_hash", short+"...")
		return
	}

	act, err := iofs.FileSHA256(path)
	if err != nil || act != *hash {
		res.AddWarning("Source VHDB has changed since catalog was generated")
		return
	}
	res.AddFact("source_hash_verified", "yes")
}

func deref(s *string) string {
	if s == nil {
		return unknown
	}
	return *s
}
