package vhdb

import "strings"

// Taxonomy keeps ranks found in a virus lineage. Unknown ranks are empty.
type Taxonomy struct {
	Family string
	Order  string
	Class  string
	Phylum string
}

// ExtractTaxonomy finds family, order, class and phylum in a lineage
// using default rank suffixes.
func ExtractTaxonomy(lineage string) Taxonomy {
	return extractTaxonomy(lineage, DefaultRules().RankSuffixes)
}

// ExtractTaxonomy finds ranks in a lineage using the suffixes of the rules.
func (r Rules) ExtractTaxonomy(lineage string) Taxonomy {
	return extractTaxonomy(lineage, r.RankSuffixes)
}

// extractTaxonomy walks lineage segments from root to leaf. If several
// segments match the same rank, the last one is kept.
func extractTaxonomy(lineage string, suffixes []RankSuffix) Taxonomy {
	var res Taxonomy
	if strings.TrimSpace(lineage) == "" {
		return res
	}

	for _, seg := range strings.Split(lineage, ";") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		for _, rs := range suffixes {
			if !strings.HasSuffix(seg, rs.Suffix) {
				continue
			}
			switch rs.Rank {
			case Family:
				res.Family = seg
			case Order:
				res.Order = seg
			case Class:
				res.Class = seg
			case Phylum:
				res.Phylum = seg
			}
			break
		}
	}
	return res
}

// ParseRefSeqIDs splits a RefSeq field on commas and semicolons.
// Empty tokens are dropped, order is preserved.
func ParseRefSeqIDs(field string) []string {
	fields := strings.FieldsFunc(field, func(r rune) bool {
		return r == ',' || r == ';'
	})

	res := make([]string, 0, len(fields))
	for _, v := range fields {
		v = strings.TrimSpace(v)
		if v != "" {
			res = append(res, v)
		}
	}
	return res
}
