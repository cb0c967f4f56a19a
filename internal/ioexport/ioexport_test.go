package ioexport_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/gnames/gnfmt"
	"github.com/gnames/virotaxa/internal/ioexport"
	"github.com/gnames/virotaxa/internal/iotesting"
	"github.com/gnames/virotaxa/pkg/catalog"
	"github.com/gnames/virotaxa/pkg/vhdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportSQLite(t *testing.T) {
	rules := vhdb.DefaultRules()
	cat, err := catalog.Build(iotesting.SampleRelationships(), catalog.Params{
		Mode:                  vhdb.Clinical,
		ExcludeBacteriophages: true,
	}, rules)
	require.NoError(t, err)
	cat.Entries[0].RefSeqIDs = []string{"NC_001802.1", "NC_000001.1"}
	meta := catalog.NewMetadata(cat, catalog.MetadataInput{
		SourcePath: "vhdb.tsv",
		OutputPath: "catalog.tsv",
		Rules:      rules,
	})

	path := filepath.Join(t.TempDir(), "out", "catalog.sqlite")
	ctx := context.Background()
	require.NoError(t, ioexport.ExportSQLite(ctx, path, cat.Entries, &meta))
	// second export replaces the file
	require.NoError(t, ioexport.ExportSQLite(ctx, path, cat.Entries, &meta))

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM entries`).Scan(&count))
	assert.Equal(t, 3, count)
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM accessions`).Scan(&count))
	assert.Equal(t, 4, count)

	var family, order string
	err = db.QueryRow(
		`SELECT family, "order" FROM entries WHERE taxid = 11676`,
	).Scan(&family, &order)
	require.NoError(t, err)
	assert.Equal(t, "Retroviridae", family)
	assert.Equal(t, "Ortervirales", order)

	var taxID int
	err = db.QueryRow(
		`SELECT taxid FROM accessions WHERE accession = 'NC_000001.1'`,
	).Scan(&taxID)
	require.NoError(t, err)
	assert.Equal(t, 11676, taxID)

	var id, sidecar string
	err = db.QueryRow(`SELECT value FROM metadata WHERE key = ?`,
		ioexport.KeyCatalogID).Scan(&id)
	require.NoError(t, err)
	assert.Equal(t, meta.Generation.CatalogID, id)

	err = db.QueryRow(`SELECT value FROM metadata WHERE key = ?`,
		ioexport.KeySidecar).Scan(&sidecar)
	require.NoError(t, err)
	var got catalog.Metadata
	require.NoError(t, (gnfmt.GNjson{}).Decode([]byte(sidecar), &got))
	assert.Equal(t, 3, got.Statistics.TotalTaxa)
}
