package vhdb

import "cmp"

// DedupKey orders candidate rows of the same virus. Lower keys win.
type DedupKey struct {
	// NonHuman is 0 for human hosts when human hosts are preferred,
	// 1 otherwise.
	NonHuman int
	// EvidenceRank comes from Rules.EvidenceRank.
	EvidenceRank int
}

// Compare orders keys lexicographically.
func (k DedupKey) Compare(o DedupKey) int {
	return cmp.Or(
		cmp.Compare(k.NonHuman, o.NonHuman),
		cmp.Compare(k.EvidenceRank, o.EvidenceRank),
	)
}

// DedupKey computes the ordering key of a row.
func (r Rules) DedupKey(row Relationship, preferHuman bool) DedupKey {
	res := DedupKey{EvidenceRank: r.EvidenceRank(row.Evidence)}
	if preferHuman && row.HostTaxID != r.HumanTaxID {
		res.NonHuman = 1
	}
	return res
}

// DeduplicateByEvidence keeps one row per virus, the one with the
// lowest DedupKey. Ties keep the earlier row. Viruses appear in the
// order of their first row in the input.
func (r Rules) DeduplicateByEvidence(
	rows []Relationship,
	preferHuman bool,
) []Relationship {
	best := make(map[int]int)
	var order []int

	for i, row := range rows {
		j, ok := best[row.VirusTaxID]
		if !ok {
			best[row.VirusTaxID] = i
			order = append(order, row.VirusTaxID)
			continue
		}
		cur := r.DedupKey(rows[j], preferHuman)
		if r.DedupKey(row, preferHuman).Compare(cur) < 0 {
			best[row.VirusTaxID] = i
		}
	}

	res := make([]Relationship, len(order))
	for i, id := range order {
		res[i] = rows[best[id]]
	}
	return res
}
