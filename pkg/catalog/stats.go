package catalog

import (
	"cmp"
	"slices"
)

// Stats summarizes catalog entries.
type Stats struct {
	TotalTaxa          int
	UniqueFamilies     int
	TotalRefSeqEntries int
	Evidence           map[string]int
	Families           map[string]int
}

// ComputeStats counts entries, families, accessions and evidence.
// Entries without a family are not counted as a family.
func ComputeStats(entries []Entry) Stats {
	res := Stats{
		TotalTaxa: len(entries),
		Evidence:  make(map[string]int),
		Families:  make(map[string]int),
	}
	for _, e := range entries {
		res.TotalRefSeqEntries += len(e.RefSeqIDs)
		if e.Evidence != "" {
			res.Evidence[e.Evidence]++
		}
		if e.Family != "" {
			res.Families[e.Family]++
		}
	}
	res.UniqueFamilies = len(res.Families)
	return res
}

// FamilyCount is the number of catalog entries of a family.
type FamilyCount struct {
	Family string `json:"family"`
	Count  int    `json:"count"`
}

// TopFamilies returns up to n families with most entries. Families
// with equal counts are sorted by name.
func (s Stats) TopFamilies(n int) []FamilyCount {
	res := make([]FamilyCount, 0, len(s.Families))
	for k, v := range s.Families {
		res = append(res, FamilyCount{Family: k, Count: v})
	}
	slices.SortFunc(res, func(a, b FamilyCount) int {
		return cmp.Or(
			cmp.Compare(b.Count, a.Count),
			cmp.Compare(a.Family, b.Family),
		)
	})
	if n >= 0 && len(res) > n {
		res = res[:n]
	}
	return res
}
