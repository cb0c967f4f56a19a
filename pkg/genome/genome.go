// Package genome describes retrieval of RefSeq genome sequences for
// catalog taxa.
package genome

import (
	"context"
	"strings"
)

// MetadataFile is the name of the fetch metadata in the output
// directory.
const MetadataFile = "genomes.metadata.json"

// MetadataVersion is the version of the fetch metadata format.
const MetadataVersion = "1.0"

// DefaultBatchSize is the number of accessions per request.
const DefaultBatchSize = 100

// Fetcher retrieves sequences from a remote sequence database.
type Fetcher interface {
	// FetchFASTA returns sequences of accessions as FASTA text in one
	// request. Accessions unknown to the database are absent from
	// the result.
	FetchFASTA(ctx context.Context, ids []string) (string, error)
}

// FileInfo describes a FASTA file written for one taxon.
type FileInfo struct {
	File      string `json:"file"`
	Sequences int    `json:"sequences"`
	Bases     int    `json:"bases"`
}

// FetchResult summarizes a genome fetch.
type FetchResult struct {
	// RunID identifies the fetch run.
	RunID string

	// TotalTaxa is the number of taxa in the catalog.
	TotalTaxa int

	// TotalSequences is the number of unique accessions requested.
	TotalSequences int

	// Successful is the number of accessions with a sequence.
	Successful int

	// Failed lists accessions without a sequence in request order.
	Failed []string

	OutputDir string

	// Files are keyed by taxon ID.
	Files map[string]FileInfo
}

// TotalBases sums bases of all written files.
func (r *FetchResult) TotalBases() int {
	var res int
	for _, v := range r.Files {
		res += v.Bases
	}
	return res
}

// BaseAccession removes the version suffix from an accession,
// "NC_001802.1" becomes "NC_001802".
func BaseAccession(id string) string {
	id = strings.TrimSpace(id)
	if i := strings.IndexByte(id, '.'); i >= 0 {
		return id[:i]
	}
	return id
}

// Batches splits ids into consecutive slices of at most size elements.
func Batches(ids []string, size int) [][]string {
	if size <= 0 {
		size = DefaultBatchSize
	}
	res := make([][]string, 0, (len(ids)+size-1)/size)
	for i := 0; i < len(ids); i += size {
		res = append(res, ids[i:min(i+size, len(ids))])
	}
	return res
}
