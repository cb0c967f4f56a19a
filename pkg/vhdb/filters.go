package vhdb

import (
	"slices"
	"strings"
)

// Predicate decides if a relationship row is kept. Predicates know
// nothing about the table that holds rows.
type Predicate func(Relationship) bool

// Filter returns rows accepted by the predicate, preserving order.
func Filter(rows []Relationship, p Predicate) []Relationship {
	res := make([]Relationship, 0, len(rows))
	for _, v := range rows {
		if p(v) {
			res = append(res, v)
		}
	}
	return res
}

// Not inverts a predicate.
func Not(p Predicate) Predicate {
	return func(r Relationship) bool {
		return !p(r)
	}
}

// And accepts rows accepted by all predicates.
func And(ps ...Predicate) Predicate {
	return func(r Relationship) bool {
		for _, p := range ps {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// HostMode selects which hosts are relevant for a catalog.
type HostMode string

const (
	// Clinical keeps viruses of humans only.
	Clinical HostMode = "clinical"
	// Pandemic keeps viruses of all vertebrates.
	Pandemic HostMode = "pandemic"
	// Mammal keeps viruses of mammals.
	Mammal HostMode = "mammal"
)

// HostModes lists supported host modes.
var HostModes = []HostMode{Clinical, Mammal, Pandemic}

// Description returns a human readable summary of the mode.
func (m HostMode) Description() string {
	switch m {
	case Clinical:
		return "Human-hosted viruses only (clinical diagnostics)"
	case Pandemic:
		return "All vertebrate-hosted viruses (pandemic preparedness)"
	case Mammal:
		return "Mammal-hosted viruses (zoonotic surveillance)"
	default:
		return ""
	}
}

// ParseHostMode converts a string to HostMode.
func ParseHostMode(s string) (HostMode, error) {
	m := HostMode(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(HostModes, m) {
		return m, nil
	}
	return "", InvalidParameterError("mode", s, hostModeNames())
}

func hostModeNames() []string {
	res := make([]string, len(HostModes))
	for i, v := range HostModes {
		res[i] = string(v)
	}
	return res
}

// PrimateMode selects how non-human primate viruses are added.
type PrimateMode string

const (
	// PrimateNone adds nothing.
	PrimateNone PrimateMode = "none"
	// PrimateStrict adds viruses of chimpanzees and bonobos.
	PrimateStrict PrimateMode = "strict"
	// PrimateExtended adds viruses of all non-human primates.
	PrimateExtended PrimateMode = "extended"
)

// PrimateModes lists supported primate homolog modes.
var PrimateModes = []PrimateMode{PrimateExtended, PrimateNone, PrimateStrict}

// ParsePrimateMode converts a string to PrimateMode. Empty string
// means PrimateNone.
func ParsePrimateMode(s string) (PrimateMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return PrimateNone, nil
	}
	m := PrimateMode(s)
	if slices.Contains(PrimateModes, m) {
		return m, nil
	}
	names := make([]string, len(PrimateModes))
	for i, v := range PrimateModes {
		names[i] = string(v)
	}
	return "", InvalidParameterError("primate homologs", s, names)
}

// containsFold reports whether substr is within s, ignoring case.
// Empty s never matches.
func containsFold(s, substr string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// HostPredicate returns a predicate for a host mode.
func (r Rules) HostPredicate(mode HostMode) (Predicate, error) {
	switch mode {
	case Clinical:
		return func(row Relationship) bool {
			return row.HostTaxID == r.HumanTaxID
		}, nil
	case Pandemic:
		return func(row Relationship) bool {
			return containsFold(row.HostLineage, r.VertebrateMarker)
		}, nil
	case Mammal:
		return func(row Relationship) bool {
			return containsFold(row.HostLineage, r.MammalMarker)
		}, nil
	default:
		return nil, InvalidParameterError("mode", string(mode), hostModeNames())
	}
}

// FilterByHost keeps rows whose host fits the mode.
func (r Rules) FilterByHost(
	rows []Relationship,
	mode HostMode,
) ([]Relationship, error) {
	p, err := r.HostPredicate(mode)
	if err != nil {
		return nil, err
	}
	return Filter(rows, p), nil
}

// HasRefSeq accepts rows with a non-blank RefSeq field.
func HasRefSeq(row Relationship) bool {
	return strings.TrimSpace(row.RefSeqID) != ""
}

// FilterWithRefSeq keeps rows that have RefSeq accessions.
func FilterWithRefSeq(rows []Relationship) []Relationship {
	return Filter(rows, HasRefSeq)
}

// IsBacteriophage classifies a row as a bacterial virus. It checks
// known phage families in the lineage first, then keywords in lineage
// and name. The keyword check catches phages that have no formal family.
func (r Rules) IsBacteriophage(row Relationship) bool {
	lineage := strings.ToLower(row.VirusLineage)
	for _, fam := range r.PhageFamilies {
		if lineage != "" && strings.Contains(lineage, strings.ToLower(fam)) {
			return true
		}
	}

	text := lineage + " " + strings.ToLower(row.VirusName)
	for _, kw := range r.PhageKeywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// FilterBacteriophages removes phages when exclude is true, otherwise
// keeps only phages.
func (r Rules) FilterBacteriophages(
	rows []Relationship,
	exclude bool,
) []Relationship {
	if exclude {
		return Filter(rows, Not(r.IsBacteriophage))
	}
	return Filter(rows, r.IsBacteriophage)
}

// FamilyPredicate accepts rows whose virus lineage contains any of the
// given names, ignoring case. Empty families accept everything.
func FamilyPredicate(families []string) Predicate {
	if len(families) == 0 {
		return func(Relationship) bool { return true }
	}
	return func(row Relationship) bool {
		for _, f := range families {
			if containsFold(row.VirusLineage, f) {
				return true
			}
		}
		return false
	}
}

// PrimatePredicate returns a host predicate for primate homologs.
// PrimateNone accepts nothing.
func (r Rules) PrimatePredicate(mode PrimateMode) (Predicate, error) {
	switch mode {
	case PrimateNone:
		return func(Relationship) bool { return false }, nil
	case PrimateStrict:
		return func(row Relationship) bool {
			return slices.Contains(r.GreatApeTaxIDs, row.HostTaxID)
		}, nil
	case PrimateExtended:
		return func(row Relationship) bool {
			return containsFold(row.HostLineage, r.PrimateMarker) &&
				row.HostTaxID != r.HumanTaxID
		}, nil
	default:
		names := make([]string, len(PrimateModes))
		for i, v := range PrimateModes {
			names[i] = string(v)
		}
		return nil, InvalidParameterError("primate homologs", string(mode), names)
	}
}

// PrimateHomologs selects rows of viruses from non-human primates that
// have RefSeq accessions, optionally limited to some virus families.
func (r Rules) PrimateHomologs(
	rows []Relationship,
	mode PrimateMode,
	families []string,
) ([]Relationship, error) {
	p, err := r.PrimatePredicate(mode)
	if err != nil {
		return nil, err
	}
	if mode == PrimateNone {
		return nil, nil
	}
	return Filter(rows, And(p, HasRefSeq, FamilyPredicate(families))), nil
}
