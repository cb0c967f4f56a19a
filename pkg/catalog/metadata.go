package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gnuuid"
	"github.com/gnames/virotaxa/pkg/provenance"
	"github.com/gnames/virotaxa/pkg/vhdb"
)

// MetadataVersion is the version of the metadata document format.
const MetadataVersion = "1.0"

// TopFamiliesNum is the number of families listed in statistics.
const TopFamiliesNum = 10

// Metadata is the reproducibility sidecar of a catalog.
type Metadata struct {
	Description     string                 `json:"_description"`
	Version         string                 `json:"_version"`
	Generation      Generation             `json:"generation"`
	Environment     provenance.Environment `json:"environment"`
	Source          Source                 `json:"source"`
	Parameters      Parameters             `json:"parameters"`
	FiltersApplied  FiltersApplied         `json:"filters_applied"`
	Statistics      Statistics             `json:"statistics"`
	Reproducibility Reproducibility        `json:"reproducibility"`
}

// Generation tells when and by which version a catalog was made.
type Generation struct {
	Timestamp string `json:"timestamp"`
	Version   string `json:"virotaxa_version"`

	// CatalogID is the same for catalogs built from the same source
	// with the same parameters.
	CatalogID string `json:"catalog_id"`
}

// Source describes the VHDB file a catalog was built from.
type Source struct {
	FilePath string `json:"file_path"`

	// FileSHA256 is nil when the source file was not available.
	FileSHA256 *string `json:"file_sha256"`

	VHDBMetadata *vhdb.DownloadMeta `json:"vhdb_metadata"`
}

// Parameters are build parameters together with the rules in effect.
type Parameters struct {
	Mode                          string   `json:"mode"`
	ModeDescription               string   `json:"mode_description"`
	ExcludeBacteriophages         bool     `json:"exclude_bacteriophages"`
	HumanTaxID                    int      `json:"human_taxid"`
	BacteriophageFamiliesExcluded int      `json:"bacteriophage_families_excluded"`
	PrimateHomologs               string   `json:"primate_homologs"`
	PrimateFamilies               []string `json:"primate_families"`
	RulesSHA256                   string   `json:"rules_sha256,omitempty"`
}

// FiltersApplied summarizes filters of the build.
type FiltersApplied struct {
	HostFilter       string         `json:"host_filter"`
	RequiresRefSeq   bool           `json:"requires_refseq"`
	EvidencePriority map[string]int `json:"evidence_priority"`
}

// Statistics of the saved catalog.
type Statistics struct {
	TotalTaxa            int            `json:"total_taxa"`
	UniqueFamilies       int            `json:"unique_families"`
	TotalRefSeqEntries   int            `json:"total_refseq_entries"`
	PrimateHomologs      int            `json:"primate_homologs"`
	EvidenceDistribution map[string]int `json:"evidence_distribution"`
	TopFamilies          []FamilyCount  `json:"top_families"`
}

// Reproducibility lists commands that recreate the catalog.
type Reproducibility struct {
	Commands     []string `json:"commands"`
	Requirements []string `json:"requirements"`
	Verification string   `json:"verification"`
}

// MetadataInput collects facts about a build that the catalog itself
// does not know.
type MetadataInput struct {
	// SourcePath is the VHDB file used for the build.
	SourcePath string

	// SourceSHA256 is empty if the source file does not exist anymore.
	SourceSHA256 string

	// VHDBMeta is the download sidecar of the source, if any.
	VHDBMeta *vhdb.DownloadMeta

	// OutputPath is the path of the saved catalog.
	OutputPath string

	Rules       vhdb.Rules
	RulesSHA256 string

	Environment provenance.Environment
	Version     string
	Now         time.Time
}

// NewMetadata creates the metadata document of a catalog.
func NewMetadata(cat *Catalog, in MetadataInput) Metadata {
	p := cat.Params
	stats := ComputeStats(cat.Entries)

	var hash *string
	if in.SourceSHA256 != "" {
		h := in.SourceSHA256
		hash = &h
	}

	hostFilter := string(p.Mode)
	if p.Mode == vhdb.Clinical {
		hostFilter = "human_only"
	}

	var phageFams int
	if p.ExcludeBacteriophages {
		phageFams = len(in.Rules.PhageFamilies)
	}

	families := p.PrimateFamilies
	if families == nil {
		families = []string{}
	}

	return Metadata{
		Description: "virotaxa catalog metadata for reproducibility",
		Version:     MetadataVersion,
		Generation: Generation{
			Timestamp: in.Now.UTC().Format(time.RFC3339),
			Version:   in.Version,
			CatalogID: CatalogID(in.SourceSHA256, in.SourcePath, in.RulesSHA256, p),
		},
		Environment: in.Environment,
		Source: Source{
			FilePath:     in.SourcePath,
			FileSHA256:   hash,
			VHDBMetadata: in.VHDBMeta,
		},
		Parameters: Parameters{
			Mode:                          string(p.Mode),
			ModeDescription:               p.Mode.Description(),
			ExcludeBacteriophages:         p.ExcludeBacteriophages,
			HumanTaxID:                    in.Rules.HumanTaxID,
			BacteriophageFamiliesExcluded: phageFams,
			PrimateHomologs:               string(p.PrimateHomologs),
			PrimateFamilies:               families,
			RulesSHA256:                   in.RulesSHA256,
		},
		FiltersApplied: FiltersApplied{
			HostFilter:       hostFilter,
			RequiresRefSeq:   true,
			EvidencePriority: in.Rules.EvidencePriority,
		},
		Statistics: Statistics{
			TotalTaxa:            stats.TotalTaxa,
			UniqueFamilies:       stats.UniqueFamilies,
			TotalRefSeqEntries:   stats.TotalRefSeqEntries,
			PrimateHomologs:      cat.PrimateHomologs,
			EvidenceDistribution: stats.Evidence,
			TopFamilies:          stats.TopFamilies(TopFamiliesNum),
		},
		Reproducibility: Reproducibility{
			Commands:     Commands(in.SourcePath, in.OutputPath, p),
			Requirements: []string{"virotaxa " + in.Version},
			Verification: "virotaxa catalog validate " + in.OutputPath,
		},
	}
}

// CatalogID returns a UUID v5 derived from the source, the rules file
// and parameters. When the source hash is unknown, the source path is used.
func CatalogID(
	sourceSHA256, sourcePath, rulesSHA256 string,
	p Params,
) string {
	src := sourceSHA256
	if src == "" {
		src = sourcePath
	}
	parts := []string{
		src,
		rulesSHA256,
		string(p.Mode),
		strconv.FormatBool(p.ExcludeBacteriophages),
		string(p.PrimateHomologs),
		strings.Join(p.PrimateFamilies, ","),
	}
	return gnuuid.New(strings.Join(parts, "|")).String()
}

// Commands rebuild the command sequence that reproduces a catalog.
func Commands(sourcePath, outputPath string, p Params) []string {
	phages := "--include-bacteriophages"
	if p.ExcludeBacteriophages {
		phages = "--exclude-bacteriophages"
	}
	build := fmt.Sprintf("virotaxa catalog build %s --mode %s %s",
		sourcePath, p.Mode, phages)
	if p.PrimateHomologs != "" && p.PrimateHomologs != vhdb.PrimateNone {
		build += " --primate-homologs " + string(p.PrimateHomologs)
		if len(p.PrimateFamilies) > 0 {
			build += " --primate-families " + strings.Join(p.PrimateFamilies, ",")
		}
	}
	build += " -o " + outputPath

	return []string{
		"virotaxa download -o " + sourcePath,
		build,
	}
}
