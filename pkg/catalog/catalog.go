// Package catalog assembles a deduplicated list of viral taxa from VHDB
// relationships and describes it with reproducibility metadata.
package catalog

import (
	"strings"

	"github.com/gnames/virotaxa/pkg/vhdb"
)

// Columns of a saved catalog in order.
var Columns = []string{
	"taxid", "name", "family", "order", "refseq_ids", "evidence", "pmid",
}

// Entry is one virus of a catalog.
type Entry struct {
	// TaxID is the NCBI taxonomy ID of the virus, unique in a catalog.
	TaxID int

	Name   string
	Family string
	Order  string

	// RefSeqIDs are RefSeq accessions of the virus genome.
	RefSeqIDs []string

	// Evidence of the virus-host relationship that was kept.
	Evidence string

	// PMID of the kept relationship, may be empty.
	PMID string
}

// Params are parameters of a catalog build.
type Params struct {
	Mode                  vhdb.HostMode
	ExcludeBacteriophages bool
	PrimateHomologs       vhdb.PrimateMode
	PrimateFamilies       []string
}

// Normalize checks enumerated values of parameters and returns a copy
// with modes in their canonical lowercase form.
func (p Params) Normalize() (Params, error) {
	mode, err := vhdb.ParseHostMode(string(p.Mode))
	if err != nil {
		return p, err
	}
	primate, err := vhdb.ParsePrimateMode(string(p.PrimateHomologs))
	if err != nil {
		return p, err
	}
	p.Mode = mode
	p.PrimateHomologs = primate
	return p, nil
}

// Catalog is the result of a build.
type Catalog struct {
	Entries []Entry

	// Params used for the build.
	Params Params

	// PrimateHomologs is the number of entries that came from
	// non-human primate hosts.
	PrimateHomologs int
}

// Build turns VHDB relationships into a catalog with one entry per virus.
//
// Rows are filtered by host, deduplicated with preference to human hosts,
// required to have RefSeq accessions and optionally cleaned from
// bacteriophages. Primate homologs are selected from all rows, because
// host filters of clinical and mammal modes remove primate hosts. They
// never replace viruses that are already in the catalog.
func Build(
	rows []vhdb.Relationship,
	p Params,
	rules vhdb.Rules,
) (*Catalog, error) {
	p, err := p.Normalize()
	if err != nil {
		return nil, err
	}

	picked, err := rules.FilterByHost(rows, p.Mode)
	if err != nil {
		return nil, err
	}
	picked = rules.DeduplicateByEvidence(picked, true)
	picked = vhdb.FilterWithRefSeq(picked)
	if p.ExcludeBacteriophages {
		picked = rules.FilterBacteriophages(picked, true)
	}

	var homologs []vhdb.Relationship
	if p.PrimateHomologs != vhdb.PrimateNone {
		families := rules.PrimateFamilies(p.PrimateFamilies)
		homologs, err = rules.PrimateHomologs(rows, p.PrimateHomologs, families)
		if err != nil {
			return nil, err
		}
		homologs = rules.DeduplicateByEvidence(homologs, false)
		if p.ExcludeBacteriophages {
			homologs = rules.FilterBacteriophages(homologs, true)
		}
	}

	seen := make(map[int]struct{}, len(picked))
	for _, v := range picked {
		seen[v.VirusTaxID] = struct{}{}
	}

	res := &Catalog{
		Params:  p,
		Entries: make([]Entry, 0, len(picked)+len(homologs)),
	}
	for _, v := range picked {
		res.Entries = append(res.Entries, newEntry(v, rules))
	}
	for _, v := range homologs {
		if _, ok := seen[v.VirusTaxID]; ok {
			continue
		}
		seen[v.VirusTaxID] = struct{}{}
		res.Entries = append(res.Entries, newEntry(v, rules))
		res.PrimateHomologs++
	}

	return res, nil
}

func newEntry(row vhdb.Relationship, rules vhdb.Rules) Entry {
	tx := rules.ExtractTaxonomy(row.VirusLineage)
	return Entry{
		TaxID:     row.VirusTaxID,
		Name:      strings.TrimSpace(row.VirusName),
		Family:    tx.Family,
		Order:     tx.Order,
		RefSeqIDs: vhdb.ParseRefSeqIDs(row.RefSeqID),
		Evidence:  row.Evidence,
		PMID:      strings.TrimSpace(row.PMID),
	}
}
