package vhdb

import (
	"cmp"
	"slices"
	"strings"

	"github.com/gnames/gnparser"
)

// Summary describes the content of a VHDB table.
type Summary struct {
	// Relationships is the number of virus-host rows.
	Relationships int

	// Viruses is the number of unique virus IDs.
	Viruses int

	// Hosts is the number of unique known host IDs.
	Hosts int

	// HostSpecies is the number of unique canonical host names.
	// Host strains and subspecies collapse to species.
	HostSpecies int

	// Evidence counts rows per evidence category.
	Evidence map[string]int
}

// Summarize counts relationships, viruses, hosts and evidence.
func Summarize(rows []Relationship) Summary {
	prs := gnparser.New(gnparser.NewConfig())

	viruses := make(map[int]struct{})
	hosts := make(map[int]struct{})
	species := make(map[string]struct{})
	canonicals := make(map[string]string)
	res := Summary{
		Relationships: len(rows),
		Evidence:      make(map[string]int),
	}

	for _, row := range rows {
		viruses[row.VirusTaxID] = struct{}{}
		if row.HasHost() {
			hosts[row.HostTaxID] = struct{}{}
		}
		if row.Evidence != "" {
			res.Evidence[row.Evidence]++
		}

		name := strings.TrimSpace(row.HostName)
		if name == "" {
			continue
		}
		can, ok := canonicals[name]
		if !ok {
			can = name
			parsed := prs.ParseName(name)
			if parsed.Parsed && parsed.Canonical != nil {
				can = speciesOf(parsed.Canonical.Simple)
			}
			canonicals[name] = can
		}
		species[can] = struct{}{}
	}

	res.Viruses = len(viruses)
	res.Hosts = len(hosts)
	res.HostSpecies = len(species)
	return res
}

// speciesOf keeps genus and species epithet of a canonical form.
func speciesOf(canonical string) string {
	words := strings.Fields(canonical)
	if len(words) > 2 {
		words = words[:2]
	}
	return strings.Join(words, " ")
}

// FamilyCount is the number of unique viruses of a family.
type FamilyCount struct {
	Family string
	Count  int
}

// FamilyCounts counts unique viruses per family, most common first.
// Viruses without a family are counted under an empty name.
func (r Rules) FamilyCounts(rows []Relationship) []FamilyCount {
	seen := make(map[int]struct{})
	counts := make(map[string]int)
	for _, row := range rows {
		if _, ok := seen[row.VirusTaxID]; ok {
			continue
		}
		seen[row.VirusTaxID] = struct{}{}
		counts[r.ExtractTaxonomy(row.VirusLineage).Family]++
	}

	res := make([]FamilyCount, 0, len(counts))
	for k, v := range counts {
		res = append(res, FamilyCount{Family: k, Count: v})
	}
	slices.SortFunc(res, func(a, b FamilyCount) int {
		return cmp.Or(
			cmp.Compare(b.Count, a.Count),
			cmp.Compare(a.Family, b.Family),
		)
	})
	return res
}
