package vhdb_test

import (
	"testing"

	"github.com/gnames/virotaxa/pkg/vhdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByHost(t *testing.T) {
	r := vhdb.DefaultRules()
	rows := sampleRows()
	rows = append(rows,
		vhdb.Relationship{VirusTaxID: 1, HostTaxID: 0},
		vhdb.Relationship{
			VirusTaxID:  2,
			HostTaxID:   9031,
			HostLineage: "Eukaryota; Metazoa; Chordata; vertebrata; Aves",
		},
	)

	tests := []struct {
		msg  string
		mode vhdb.HostMode
		ids  []int
	}{
		{"clinical", vhdb.Clinical, []int{11676, 11320, 1518022, 12637}},
		{"pandemic", vhdb.Pandemic, []int{11676, 11320, 1518022, 12637, 999999, 2}},
		{"mammal", vhdb.Mammal, []int{11676, 11320, 1518022, 12637, 999999}},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res, err := r.FilterByHost(rows, v.mode)
			require.NoError(t, err)
			assert.Equal(t, v.ids, virusIDs(res))
			assert.LessOrEqual(t, len(res), len(rows))
			if v.mode == vhdb.Clinical {
				for _, row := range res {
					assert.Equal(t, 9606, row.HostTaxID)
				}
			}
		})
	}

	_, err := r.FilterByHost(rows, "primate")
	assert.Error(t, err)
}

func TestFilterWithRefSeq(t *testing.T) {
	rows := []vhdb.Relationship{
		{VirusTaxID: 1, RefSeqID: "NC_1"},
		{VirusTaxID: 2, RefSeqID: ""},
		{VirusTaxID: 3, RefSeqID: "   "},
		{VirusTaxID: 4, RefSeqID: "NC_4;NC_5"},
	}
	assert.Equal(t, []int{1, 4}, virusIDs(vhdb.FilterWithRefSeq(rows)))
}

func TestFilterBacteriophages(t *testing.T) {
	r := vhdb.DefaultRules()
	rows := sampleRows()
	rows = append(rows,
		vhdb.Relationship{
			VirusTaxID:   10,
			VirusName:    "Lactococcus virus",
			VirusLineage: "Viruses; Duplodnaviria; Caudoviricetes; Siphoviridae",
		},
		vhdb.Relationship{
			VirusTaxID:   11,
			VirusName:    "Escherichia phage T4",
			VirusLineage: "Viruses; Duplodnaviria; Caudoviricetes",
		},
		vhdb.Relationship{
			VirusTaxID:   12,
			VirusName:    "Murine macrophage tropic virus",
			VirusLineage: "Viruses; Riboviria",
		},
		vhdb.Relationship{
			VirusTaxID: 13,
			VirusName:  "uncultured crAssphage",
		},
	)

	t.Run("exclude", func(t *testing.T) {
		res := r.FilterBacteriophages(rows, true)
		assert.Equal(t, []int{11676, 11320, 12637, 999999, 12}, virusIDs(res))
	})

	t.Run("keep only phages", func(t *testing.T) {
		res := r.FilterBacteriophages(rows, false)
		assert.Equal(t, []int{1518022, 10, 11, 13}, virusIDs(res))
	})

	t.Run("custom rules", func(t *testing.T) {
		custom := vhdb.DefaultRules()
		custom.PhageFamilies = []string{"Flaviviridae"}
		custom.PhageKeywords = nil
		res := custom.FilterBacteriophages(sampleRows(), false)
		assert.Equal(t, []int{12637}, virusIDs(res))
	})
}

func TestPrimateHomologs(t *testing.T) {
	r := vhdb.DefaultRules()
	apeLineage := "Eukaryota; Metazoa; Chordata; Vertebrata; Mammalia; " +
		"Primates; Hominidae; Pan"
	monkeyLineage := "Eukaryota; Metazoa; Chordata; Vertebrata; Mammalia; " +
		"Primates; Cercopithecidae; Macaca"
	rows := append(sampleRows(),
		vhdb.Relationship{
			VirusTaxID:   100,
			VirusLineage: "Viruses; Ortervirales; Retroviridae; Lentivirus",
			RefSeqID:     "NC_100.1",
			HostTaxID:    9598,
			HostLineage:  apeLineage,
			Evidence:     "RefSeq",
		},
		vhdb.Relationship{
			VirusTaxID:   101,
			VirusLineage: "Viruses; Herpesvirales; Orthoherpesviridae",
			RefSeqID:     "NC_101.1",
			HostTaxID:    9544,
			HostLineage:  monkeyLineage,
			Evidence:     "RefSeq",
		},
		vhdb.Relationship{
			VirusTaxID:   102,
			VirusLineage: "Viruses; Papillomaviridae",
			RefSeqID:     "",
			HostTaxID:    9597,
			HostLineage:  apeLineage,
		},
		vhdb.Relationship{
			VirusTaxID:  103,
			RefSeqID:    "NC_103.1",
			HostTaxID:   9597,
			HostLineage: apeLineage,
		},
	)

	tests := []struct {
		msg      string
		mode     vhdb.PrimateMode
		families []string
		ids      []int
	}{
		{"none", vhdb.PrimateNone, nil, nil},
		{"strict", vhdb.PrimateStrict, nil, []int{100, 103}},
		{"extended", vhdb.PrimateExtended, nil, []int{100, 101, 103}},
		{
			"extended with families",
			vhdb.PrimateExtended,
			[]string{"herpesviridae"},
			[]int{101},
		},
		{
			"strict with families drops missing lineage",
			vhdb.PrimateStrict,
			[]string{"Retroviridae", "Papillomaviridae"},
			[]int{100},
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res, err := r.PrimateHomologs(rows, v.mode, v.families)
			require.NoError(t, err)
			if v.ids == nil {
				assert.Empty(t, res)
				return
			}
			assert.Equal(t, v.ids, virusIDs(res))
		})
	}

	_, err := r.PrimateHomologs(rows, "some", nil)
	assert.Error(t, err)
}

func TestPredicateCombinators(t *testing.T) {
	rows := sampleRows()
	isHIV := func(r vhdb.Relationship) bool { return r.VirusTaxID == 11676 }

	assert.Len(t, vhdb.Filter(rows, vhdb.Not(isHIV)), 4)
	assert.Len(t, vhdb.Filter(rows, vhdb.And(isHIV, vhdb.HasRefSeq)), 1)
	assert.Len(t, vhdb.Filter(rows, vhdb.FamilyPredicate(nil)), 5)
	assert.Empty(t, vhdb.Filter(nil, isHIV))
}
