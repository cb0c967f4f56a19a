package vhdb_test

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/virotaxa/internal/iotesting"
	"github.com/gnames/virotaxa/pkg/errcode"
	"github.com/gnames/virotaxa/pkg/vhdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRows() []vhdb.Relationship {
	return iotesting.SampleRelationships()
}

func virusIDs(rows []vhdb.Relationship) []int {
	res := make([]int, len(rows))
	for i, v := range rows {
		res[i] = v.VirusTaxID
	}
	return res
}

func TestParseHostMode(t *testing.T) {
	tests := []struct {
		msg   string
		input string
		mode  vhdb.HostMode
		err   bool
	}{
		{"clinical", "clinical", vhdb.Clinical, false},
		{"pandemic upper case", "PANDEMIC", vhdb.Pandemic, false},
		{"mammal with spaces", " mammal ", vhdb.Mammal, false},
		{"unknown", "primate", "", true},
		{"empty", "", "", true},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			mode, err := vhdb.ParseHostMode(v.input)
			if v.err {
				require.Error(t, err)
				var gnErr *gn.Error
				require.True(t, errors.As(err, &gnErr))
				assert.Equal(t, errcode.InvalidParameterError, gnErr.Code)
				assert.Contains(t, gnErr.Err.Error(), "clinical")
				assert.Contains(t, gnErr.Err.Error(), "pandemic")
				assert.Contains(t, gnErr.Err.Error(), "mammal")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, v.mode, mode)
		})
	}
}

func TestParsePrimateMode(t *testing.T) {
	mode, err := vhdb.ParsePrimateMode("")
	require.NoError(t, err)
	assert.Equal(t, vhdb.PrimateNone, mode)

	mode, err = vhdb.ParsePrimateMode("Extended")
	require.NoError(t, err)
	assert.Equal(t, vhdb.PrimateExtended, mode)

	_, err = vhdb.ParsePrimateMode("all")
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.InvalidParameterError, gnErr.Code)
}

func TestHostModeDescription(t *testing.T) {
	for _, v := range vhdb.HostModes {
		assert.NotEmpty(t, v.Description(), string(v))
	}
	assert.Empty(t, vhdb.HostMode("other").Description())
}

func TestDefaultRules(t *testing.T) {
	r := vhdb.DefaultRules()
	require.NoError(t, r.Validate())
	assert.Equal(t, 9606, r.HumanTaxID)
	assert.Len(t, r.PhageFamilies, 30)
	assert.Contains(t, r.PhageKeywords, " phage ")

	t.Run("copies are independent", func(t *testing.T) {
		r2 := vhdb.DefaultRules()
		r2.EvidencePriority["Literature"] = 5
		r2.PhageFamilies[0] = "Changed"
		assert.Equal(t, 0, r.EvidencePriority["Literature"])
		assert.Equal(t, "Siphoviridae", r.PhageFamilies[0])
	})
}

func TestRulesValidate(t *testing.T) {
	r := vhdb.DefaultRules()
	r.RankSuffixes = nil
	r.UnknownEvidenceRank = -1
	err := r.Validate()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.RulesConfigError, gnErr.Code)
	assert.Contains(t, gnErr.Err.Error(), "rank_suffixes")
	assert.Contains(t, gnErr.Err.Error(), "unknown_evidence_rank")

	r = vhdb.DefaultRules()
	r.RankSuffixes = append(r.RankSuffixes,
		vhdb.RankSuffix{Rank: "genus", Suffix: "virus"})
	assert.Error(t, r.Validate())
}

func TestEvidenceRank(t *testing.T) {
	r := vhdb.DefaultRules()
	assert.Equal(t, 0, r.EvidenceRank("Literature"))
	assert.Equal(t, 1, r.EvidenceRank("RefSeq"))
	assert.Equal(t, 2, r.EvidenceRank("UniProt"))
	assert.Equal(t, 99, r.EvidenceRank("Guess"))
	assert.Equal(t, 99, r.EvidenceRank(""))
}

func TestRulesPrimateFamilies(t *testing.T) {
	r := vhdb.DefaultRules()

	assert.Empty(t, r.PrimateFamilies(nil))
	assert.Equal(t, r.HighDiversityFamilies,
		r.PrimateFamilies([]string{"High-Diversity"}))
	assert.Equal(t,
		[]string{"Flaviviridae", "Herpesviridae", "Orthoherpesviridae",
			"Papillomaviridae", "Retroviridae", "Polyomaviridae",
			"Adenoviridae"},
		r.PrimateFamilies([]string{
			"Flaviviridae", vhdb.HighDiversityPreset, "retroviridae",
		}),
	)
}
