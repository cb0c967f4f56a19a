package vhdb

import (
	"fmt"
	"strings"
)

// HighDiversityPreset stands for HighDiversityFamilies in a list of
// primate homolog families.
const HighDiversityPreset = "high-diversity"

// Rank is a virus taxonomic rank recognized from lineage suffixes.
type Rank string

const (
	Family Rank = "family"
	Order  Rank = "order"
	Class  Rank = "class"
	Phylum Rank = "phylum"
)

// RankSuffix maps a name ending to a rank.
type RankSuffix struct {
	Rank   Rank   `yaml:"rank"`
	Suffix string `yaml:"suffix"`
}

// Rules collects the fixed sets of domain knowledge used by filters,
// deduplication and taxonomy extraction. A Rules value is never mutated
// by the functions that use it.
type Rules struct {
	// HumanTaxID is the NCBI taxonomy ID of Homo sapiens.
	HumanTaxID int `yaml:"human_taxid"`

	// GreatApeTaxIDs are hosts accepted by strict primate homologs
	// (chimpanzee and bonobo).
	GreatApeTaxIDs []int `yaml:"great_ape_taxids"`

	// VertebrateMarker is searched in host lineage in pandemic mode.
	VertebrateMarker string `yaml:"vertebrate_marker"`

	// MammalMarker is searched in host lineage in mammal mode.
	MammalMarker string `yaml:"mammal_marker"`

	// PrimateMarker is searched in host lineage by extended primate
	// homologs.
	PrimateMarker string `yaml:"primate_marker"`

	// EvidencePriority ranks evidence categories, lower is better.
	EvidencePriority map[string]int `yaml:"evidence_priority"`

	// UnknownEvidenceRank is given to evidence missing in EvidencePriority.
	UnknownEvidenceRank int `yaml:"unknown_evidence_rank"`

	// PhageFamilies are family names of bacteriophages.
	PhageFamilies []string `yaml:"phage_families"`

	// PhageKeywords catch phages without a formal family in lineage.
	// Keywords are matched as is, so surrounding spaces are significant.
	PhageKeywords []string `yaml:"phage_keywords"`

	// RankSuffixes classify lineage segments. The first matching
	// suffix decides the rank of a segment.
	RankSuffixes []RankSuffix `yaml:"rank_suffixes"`

	// HighDiversityFamilies are families where primate homologs
	// improve reference coverage.
	HighDiversityFamilies []string `yaml:"high_diversity_families"`
}

// PrimateFamilies expands HighDiversityPreset in names to
// HighDiversityFamilies. Duplicates are dropped, the order is kept.
func (r Rules) PrimateFamilies(names []string) []string {
	var res []string
	seen := make(map[string]struct{})
	add := func(f string) {
		k := strings.ToLower(f)
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		res = append(res, f)
	}
	for _, v := range names {
		if strings.EqualFold(strings.TrimSpace(v), HighDiversityPreset) {
			for _, f := range r.HighDiversityFamilies {
				add(f)
			}
			continue
		}
		add(v)
	}
	return res
}

// DefaultRules returns built-in rules. Every call returns a fresh copy.
func DefaultRules() Rules {
	return Rules{
		HumanTaxID:       9606,
		GreatApeTaxIDs:   []int{9598, 9597},
		VertebrateMarker: "Vertebrata",
		MammalMarker:     "Mammalia",
		PrimateMarker:    "Primates",
		EvidencePriority: map[string]int{
			"Literature": 0,
			"RefSeq":     1,
			"UniProt":    2,
		},
		UnknownEvidenceRank: 99,
		PhageFamilies: []string{
			// Caudoviricetes
			"Siphoviridae", "Myoviridae", "Podoviridae",
			"Ackermannviridae", "Autographiviridae", "Chaseviridae",
			"Demerecviridae", "Drexlerviridae", "Guelinviridae",
			"Herelleviridae", "Rountreeviridae", "Salasmaviridae",
			"Schitoviridae", "Straboviridae", "Zobellviridae",
			// other phage families
			"Microviridae", "Inoviridae", "Leviviridae", "Cystoviridae",
			"Fiersviridae", "Tectiviridae", "Corticoviridae",
			"Plasmaviridae", "Sphaerolipoviridae", "Finnlakeviridae",
			"Haloferuviridae",
			// crAss-like phages
			"Intestiviridae", "Crevaviridae", "Steigviridae",
			"Suoliviridae",
		},
		PhageKeywords: []string{
			"bacteriophage",
			"bacterial virus",
			" phage ",
			"gokushovirus",
			"chlamydiamicrovirus",
			"crassphage",
			"crass-like",
			"siphovirus",
			"myovirus",
			"podovirus",
		},
		RankSuffixes: []RankSuffix{
			{Rank: Family, Suffix: "viridae"},
			{Rank: Order, Suffix: "virales"},
			{Rank: Class, Suffix: "viricetes"},
			{Rank: Phylum, Suffix: "viricota"},
		},
		HighDiversityFamilies: []string{
			"Herpesviridae", "Orthoherpesviridae", "Papillomaviridae",
			"Retroviridae", "Polyomaviridae", "Adenoviridae",
		},
	}
}

// Validate checks that rules can drive the pipeline.
func (r Rules) Validate() error {
	var problems []string
	if r.HumanTaxID <= 0 {
		problems = append(problems, "human_taxid must be positive")
	}
	if len(r.RankSuffixes) == 0 {
		problems = append(problems, "rank_suffixes cannot be empty")
	}
	for _, v := range r.RankSuffixes {
		switch v.Rank {
		case Family, Order, Class, Phylum:
		default:
			problems = append(problems,
				fmt.Sprintf("unknown rank '%s'", v.Rank))
		}
		if strings.TrimSpace(v.Suffix) == "" {
			problems = append(problems,
				fmt.Sprintf("empty suffix for rank '%s'", v.Rank))
		}
	}
	for k, v := range r.EvidencePriority {
		if v < 0 {
			problems = append(problems,
				fmt.Sprintf("negative priority for evidence '%s'", k))
		}
	}
	if r.UnknownEvidenceRank < 0 {
		problems = append(problems, "unknown_evidence_rank cannot be negative")
	}
	if len(problems) > 0 {
		return RulesError(problems)
	}
	return nil
}

// EvidenceRank returns the priority of an evidence category.
// Lower rank wins during deduplication.
func (r Rules) EvidenceRank(evidence string) int {
	if rank, ok := r.EvidencePriority[evidence]; ok {
		return rank
	}
	return r.UnknownEvidenceRank
}

// RulesLoader provides rules from persistent storage.
type RulesLoader interface {
	// Load returns rules, falling back to DefaultRules for missing
	// storage.
	Load() (Rules, error)

	// SHA256 returns the digest of stored rules, empty if there are
	// none.
	SHA256() (string, error)
}
