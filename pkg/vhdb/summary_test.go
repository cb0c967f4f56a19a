package vhdb_test

import (
	"testing"

	"github.com/gnames/virotaxa/pkg/vhdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	rows := append(sampleRows(),
		vhdb.Relationship{
			VirusTaxID: 11676,
			HostTaxID:  9606,
			HostName:   "Homo sapiens neanderthalensis",
			Evidence:   "RefSeq",
		},
		vhdb.Relationship{VirusTaxID: 7},
	)

	res := vhdb.Summarize(rows)
	assert.Equal(t, 7, res.Relationships)
	assert.Equal(t, 6, res.Viruses)
	assert.Equal(t, 2, res.Hosts)
	assert.Equal(t, 2, res.HostSpecies,
		"subspecies collapses to Homo sapiens")
	assert.Equal(t, map[string]int{"Literature": 2, "RefSeq": 4}, res.Evidence)
}

func TestFamilyCounts(t *testing.T) {
	r := vhdb.DefaultRules()
	rows := append(sampleRows(),
		vhdb.Relationship{
			VirusTaxID:   12638,
			VirusLineage: "Viruses; Flaviviridae; Orthoflavivirus",
		},
		vhdb.Relationship{
			VirusTaxID:   12637,
			VirusLineage: "Viruses; Flaviviridae",
		},
	)

	res := r.FamilyCounts(rows)
	require.NotEmpty(t, res)
	assert.Equal(t, vhdb.FamilyCount{Family: "Flaviviridae", Count: 2}, res[0])
	assert.Len(t, res, 5)
	assert.Equal(t, "", res[1].Family, "phage without family")
}
