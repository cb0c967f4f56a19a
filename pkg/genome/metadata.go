package genome

import "time"

// Metadata documents a genome fetch for reproducibility.
type Metadata struct {
	Description      string              `json:"_description"`
	Version          string              `json:"_version"`
	Fetch            FetchInfo           `json:"fetch"`
	Source           Source              `json:"source"`
	Statistics       Statistics          `json:"statistics"`
	FailedAccessions []string            `json:"failed_accessions"`
	Files            map[string]FileInfo `json:"files"`
}

type FetchInfo struct {
	Timestamp string `json:"timestamp"`
	Version   string `json:"virotaxa_version"`
	NCBIEmail string `json:"ncbi_email"`
	RunID     string `json:"run_id"`
}

type Source struct {
	CatalogPath   string  `json:"catalog_path"`
	CatalogSHA256 *string `json:"catalog_sha256"`
}

type Statistics struct {
	TotalTaxa         int `json:"total_taxa"`
	TotalRefSeqIDs    int `json:"total_refseq_ids"`
	SuccessfulFetches int `json:"successful_fetches"`
	FailedFetches     int `json:"failed_fetches"`
	TotalBases        int `json:"total_bases"`
}

// MetadataInput has facts about a fetch not kept in FetchResult.
type MetadataInput struct {
	CatalogPath string

	// CatalogSHA256 is empty when the catalog is not available.
	CatalogSHA256 string

	Email   string
	Version string
	Now     time.Time
}

// NewMetadata creates fetch metadata from a result.
func NewMetadata(res *FetchResult, in MetadataInput) Metadata {
	var hash *string
	if in.CatalogSHA256 != "" {
		h := in.CatalogSHA256
		hash = &h
	}

	failed := res.Failed
	if failed == nil {
		failed = []string{}
	}
	files := res.Files
	if files == nil {
		files = map[string]FileInfo{}
	}

	return Metadata{
		Description: "virotaxa genome fetch metadata",
		Version:     MetadataVersion,
		Fetch: FetchInfo{
			Timestamp: in.Now.UTC().Format(time.RFC3339),
			Version:   in.Version,
			NCBIEmail: in.Email,
			RunID:     res.RunID,
		},
		Source: Source{
			CatalogPath:   in.CatalogPath,
			CatalogSHA256: hash,
		},
		Statistics: Statistics{
			TotalTaxa:         res.TotalTaxa,
			TotalRefSeqIDs:    res.TotalSequences,
			SuccessfulFetches: res.Successful,
			FailedFetches:     len(res.Failed),
			TotalBases:        res.TotalBases(),
		},
		FailedAccessions: failed,
		Files:            files,
	}
}
