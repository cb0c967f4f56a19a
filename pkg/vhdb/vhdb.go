// Package vhdb contains the domain model of the Virus-Host Database and
// pure functions that classify, filter and deduplicate its
// virus-host relationships.
//
// The package has no I/O. Loading the table from disk or network
// belongs to internal/iovhdb.
package vhdb

// Columns lists the fields of the VHDB tab-separated file in order.
var Columns = []string{
	"virus_tax_id",
	"virus_name",
	"virus_lineage",
	"refseq_id",
	"KEGG_GENOME",
	"KEGG_DISEASE",
	"DISEASE",
	"host_tax_id",
	"host_name",
	"host_lineage",
	"pmid",
	"evidence",
	"sample_type",
	"source_organism",
}

// Relationship is one virus-host association reported by VHDB.
// Text fields are empty when absent.
type Relationship struct {
	// VirusTaxID is the NCBI taxonomy ID of the virus.
	VirusTaxID int

	// VirusName is the display name of the virus.
	VirusName string

	// VirusLineage is a semicolon-delimited root-to-leaf classification.
	VirusLineage string

	// RefSeqID keeps RefSeq accessions delimited by comma or semicolon.
	RefSeqID string

	KEGGGenome  string
	KEGGDisease string
	Disease     string

	// HostTaxID is the NCBI taxonomy ID of the host, 0 when absent.
	HostTaxID int

	HostName string

	// HostLineage has the same format as VirusLineage.
	HostLineage string

	// PMID is a PubMed reference, may be empty.
	PMID string

	// Evidence is "Literature", "RefSeq", "UniProt" or other method
	// that established the association.
	Evidence string

	SampleType     string
	SourceOrganism string
}

// HasHost returns true if the host identifier is known.
func (r Relationship) HasHost() bool {
	return r.HostTaxID > 0
}

// DownloadMeta describes a downloaded copy of the VHDB table.
// It is saved as a JSON sidecar next to the file.
type DownloadMeta struct {
	Description       string      `json:"_description"`
	URL               string      `json:"url"`
	DownloadTimestamp string      `json:"download_timestamp"`
	FilePath          string      `json:"file_path"`
	FileSizeBytes     int64       `json:"file_size_bytes"`
	FileSizeMB        float64     `json:"file_size_mb"`
	SHA256            string      `json:"sha256"`
	HTTPHeaders       HTTPHeaders `json:"http_headers"`
}

// HTTPHeaders keeps server headers useful for provenance.
type HTTPHeaders struct {
	LastModified  string `json:"last_modified"`
	ETag          string `json:"etag"`
	ContentLength string `json:"content_length"`
	Date          string `json:"date"`
}
