package catalog_test

import (
	"testing"
	"time"

	"github.com/gnames/virotaxa/internal/iotesting"
	"github.com/gnames/virotaxa/pkg/catalog"
	"github.com/gnames/virotaxa/pkg/provenance"
	"github.com/gnames/virotaxa/pkg/vhdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildClinical(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Build(
		iotesting.SampleRelationships(),
		catalog.Params{Mode: vhdb.Clinical, ExcludeBacteriophages: true},
		vhdb.DefaultRules(),
	)
	require.NoError(t, err)
	return cat
}

func TestNewMetadata(t *testing.T) {
	cat := buildClinical(t)
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	in := catalog.MetadataInput{
		SourcePath:   "data/vhdb.tsv",
		SourceSHA256: "abc123",
		OutputPath:   "catalog.tsv",
		Rules:        vhdb.DefaultRules(),
		Environment:  provenance.Environment{GoVersion: "go1.25"},
		Version:      "v0.1.0",
		Now:          now,
	}

	meta := catalog.NewMetadata(cat, in)

	assert.Equal(t, catalog.MetadataVersion, meta.Version)
	assert.Equal(t, "2025-03-01T12:00:00Z", meta.Generation.Timestamp)
	assert.Equal(t, "v0.1.0", meta.Generation.Version)
	assert.Len(t, meta.Generation.CatalogID, 36)

	require.NotNil(t, meta.Source.FileSHA256)
	assert.Equal(t, "abc123", *meta.Source.FileSHA256)
	assert.Nil(t, meta.Source.VHDBMetadata)

	assert.Equal(t, "clinical", meta.Parameters.Mode)
	assert.NotEmpty(t, meta.Parameters.ModeDescription)
	assert.True(t, meta.Parameters.ExcludeBacteriophages)
	assert.Equal(t, 9606, meta.Parameters.HumanTaxID)
	assert.Equal(t, 30, meta.Parameters.BacteriophageFamiliesExcluded)
	assert.Equal(t, "none", meta.Parameters.PrimateHomologs)
	assert.NotNil(t, meta.Parameters.PrimateFamilies)

	assert.Equal(t, "human_only", meta.FiltersApplied.HostFilter)
	assert.True(t, meta.FiltersApplied.RequiresRefSeq)
	assert.Equal(t, 0, meta.FiltersApplied.EvidencePriority["Literature"])

	assert.Equal(t, 3, meta.Statistics.TotalTaxa)
	assert.Equal(t, 3, meta.Statistics.UniqueFamilies)
	assert.Equal(t, 3, meta.Statistics.TotalRefSeqEntries)
	assert.Equal(t, map[string]int{"Literature": 2, "RefSeq": 1},
		meta.Statistics.EvidenceDistribution)
	assert.Len(t, meta.Statistics.TopFamilies, 3)

	assert.Equal(t, []string{
		"virotaxa download -o data/vhdb.tsv",
		"virotaxa catalog build data/vhdb.tsv --mode clinical " +
			"--exclude-bacteriophages -o catalog.tsv",
	}, meta.Reproducibility.Commands)
	assert.Equal(t, "virotaxa catalog validate catalog.tsv",
		meta.Reproducibility.Verification)
}

func TestNewMetadataMissingSource(t *testing.T) {
	cat := buildClinical(t)
	cat.Params.Mode = vhdb.Pandemic
	cat.Params.ExcludeBacteriophages = false

	meta := catalog.NewMetadata(cat, catalog.MetadataInput{
		SourcePath: "gone.tsv",
		OutputPath: "out.tsv",
		Rules:      vhdb.DefaultRules(),
	})
	assert.Nil(t, meta.Source.FileSHA256)
	assert.Equal(t, "pandemic", meta.FiltersApplied.HostFilter)
	assert.Zero(t, meta.Parameters.BacteriophageFamiliesExcluded)
	assert.Contains(t, meta.Reproducibility.Commands[1],
		"--include-bacteriophages")
}

func TestCatalogID(t *testing.T) {
	p := catalog.Params{Mode: vhdb.Clinical, ExcludeBacteriophages: true}
	id1 := catalog.CatalogID("hash", "a.tsv", "rules1", p)
	id2 := catalog.CatalogID("hash", "b.tsv", "rules1", p)
	assert.Equal(t, id1, id2, "path is ignored when hash is known")

	assert.NotEqual(t, id1, catalog.CatalogID("hash", "a.tsv", "rules2", p),
		"edited rules give a new catalog")
	assert.NotEqual(t, id1, catalog.CatalogID("hash", "a.tsv", "", p))

	p.Mode = vhdb.Mammal
	assert.NotEqual(t, id1, catalog.CatalogID("hash", "a.tsv", "rules1", p))
	assert.NotEqual(t,
		catalog.CatalogID("", "a.tsv", "rules1", p),
		catalog.CatalogID("", "b.tsv", "rules1", p),
	)
}

func TestNewMetadataRulesHash(t *testing.T) {
	cat := buildClinical(t)
	in := catalog.MetadataInput{
		SourcePath:   "data/vhdb.tsv",
		SourceSHA256: "abc123",
		OutputPath:   "catalog.tsv",
		Rules:        vhdb.DefaultRules(),
		RulesSHA256:  "rules1",
	}
	meta1 := catalog.NewMetadata(cat, in)
	assert.Equal(t, "rules1", meta1.Parameters.RulesSHA256)

	in.RulesSHA256 = "rules2"
	meta2 := catalog.NewMetadata(cat, in)
	assert.NotEqual(t, meta1.Generation.CatalogID, meta2.Generation.CatalogID)
}

func TestCommandsWithPrimates(t *testing.T) {
	cmds := catalog.Commands("v.tsv", "c.tsv", catalog.Params{
		Mode:                  vhdb.Mammal,
		ExcludeBacteriophages: true,
		PrimateHomologs:       vhdb.PrimateExtended,
		PrimateFamilies:       []string{"Herpesviridae", "Retroviridae"},
	})
	require.Len(t, cmds, 2)
	assert.Equal(t,
		"virotaxa catalog build v.tsv --mode mammal --exclude-bacteriophages "+
			"--primate-homologs extended "+
			"--primate-families Herpesviridae,Retroviridae -o c.tsv",
		cmds[1])
}
