package iopublish

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/virotaxa/internal/iodb"
	"github.com/gnames/virotaxa/internal/ioschema"
	"github.com/gnames/virotaxa/internal/iotesting"
	"github.com/gnames/virotaxa/pkg/catalog"
	"github.com/gnames/virotaxa/pkg/errcode"
	"github.com/gnames/virotaxa/pkg/vhdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(t *testing.T) ([]catalog.Entry, *catalog.Metadata) {
	t.Helper()
	cat, err := catalog.Build(
		iotesting.SampleRelationships(),
		catalog.Params{Mode: vhdb.Clinical, ExcludeBacteriophages: true},
		vhdb.DefaultRules(),
	)
	require.NoError(t, err)
	meta := catalog.NewMetadata(cat, catalog.MetadataInput{
		SourcePath:   "vhdb.tsv",
		SourceSHA256: "abc",
		OutputPath:   "catalog.tsv",
		Rules:        vhdb.DefaultRules(),
	})
	return cat.Entries, &meta
}

func TestRows(t *testing.T) {
	entries := []catalog.Entry{
		{TaxID: 1, Name: "a", RefSeqIDs: []string{"NC_1.1", "NC_2.1"}},
		{TaxID: 2, Name: "b", Order: "Nidovirales"},
	}
	er, ar := rows("id", entries)
	require.Len(t, er, 2)
	assert.Equal(t,
		[]any{"id", 2, 1, "b", "", "Nidovirales", "", ""}, er[1])
	assert.Equal(t, [][]any{
		{"id", 1, 0, "NC_1.1"},
		{"id", 1, 1, "NC_2.1"},
	}, ar)
}

func TestChunk(t *testing.T) {
	data := make([][]any, 5)
	tests := []struct {
		size int
		lens []int
	}{
		{2, []int{2, 2, 1}},
		{5, []int{5}},
		{10, []int{5}},
	}
	for _, v := range tests {
		var lens []int
		for _, c := range chunk(data, v.size) {
			lens = append(lens, len(c))
		}
		assert.Equal(t, v.lens, lens)
	}
	assert.Empty(t, chunk(nil, 3))
}

func TestPublishErrors(t *testing.T) {
	ctx := context.Background()
	entries, meta := sample(t)

	p := New(iodb.NewPgxOperator(), 0)
	_, err := p.Publish(ctx, entries, meta)
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}

func TestPublish(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	cfg := iotesting.GetTestConfig(t)
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, &cfg.Database); err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	defer op.Close()
	require.NoError(t, ioschema.NewManager(op).Migrate(ctx))

	entries, meta := sample(t)
	pmids := make([]string, 40)
	for i := range pmids {
		pmids[i] = strconv.Itoa(30000000 + i)
	}
	longPMID := strings.Join(pmids, ", ")
	entries[0].PMID = longPMID
	p := New(op, 2)

	_, err := p.Publish(ctx, entries, nil)
	require.Error(t, err)

	// publishing twice replaces the catalog
	for range 2 {
		n, err := p.Publish(ctx, entries, meta)
		require.NoError(t, err)
		assert.Equal(t, 3, n)
	}

	id := meta.Generation.CatalogID
	var count int
	err = op.Pool().QueryRow(ctx,
		"SELECT count(*) FROM catalog_entries WHERE catalog_id = $1",
		id).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	var pmid string
	err = op.Pool().QueryRow(ctx,
		"SELECT pmid FROM catalog_entries WHERE catalog_id = $1 AND taxid = $2",
		id, entries[0].TaxID).Scan(&pmid)
	require.NoError(t, err)
	assert.Equal(t, longPMID, pmid)

	var name string
	err = op.Pool().QueryRow(ctx, `
		SELECT e.name FROM catalog_entries e
		JOIN catalog_accessions a
		  ON a.catalog_id = e.catalog_id AND a.taxid = e.taxid
		WHERE a.accession = 'NC_012532.1' AND e.catalog_id = $1`,
		id).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "Zika virus", name)

	var mode string
	err = op.Pool().QueryRow(ctx,
		"SELECT metadata->'parameters'->>'mode' FROM catalogs WHERE id = $1",
		id).Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "clinical", mode)
}
