// Package iopublish loads catalogs into PostgreSQL.
package iopublish

import (
	"context"
	"log/slog"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/virotaxa/internal/iodb"
	"github.com/gnames/virotaxa/pkg/catalog"
	"github.com/gnames/virotaxa/pkg/db"
	"github.com/gnames/virotaxa/pkg/lifecycle"
	"github.com/jackc/pgx/v5"
)

var (
	entryColumns = []string{
		"catalog_id", "taxid", "position", "name", "family",
		"order_name", "evidence", "pmid",
	}
	accessionColumns = []string{
		"catalog_id", "taxid", "position", "accession",
	}
)

type publisher struct {
	operator  db.Operator
	batchSize int
}

// New creates a Publisher that sends at most batchSize rows per
// CopyFrom call.
func New(op db.Operator, batchSize int) lifecycle.Publisher {
	if batchSize <= 0 {
		batchSize = 10_000
	}
	return &publisher{operator: op, batchSize: batchSize}
}

// Publish replaces a catalog with the same catalog ID in one
// transaction. Nothing changes if any step fails.
func (p *publisher) Publish(
	ctx context.Context,
	entries []catalog.Entry,
	meta *catalog.Metadata,
) (int, error) {
	pool := p.operator.Pool()
	if pool == nil {
		return 0, iodb.NotConnectedError()
	}
	if meta == nil || meta.Generation.CatalogID == "" {
		return 0, NoCatalogIDError()
	}
	id := meta.Generation.CatalogID

	metaJSON, err := gnfmt.GNjson{}.Encode(meta)
	if err != nil {
		return 0, PublishError(id, err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, PublishError(id, err)
	}
	defer tx.Rollback(ctx)

	for _, v := range []string{
		"catalog_accessions", "catalog_entries", "catalogs",
	} {
		col := "catalog_id"
		if v == "catalogs" {
			col = "id"
		}
		q := "DELETE FROM " + v + " WHERE " + col + " = $1"
		tag, err := tx.Exec(ctx, q, id)
		if err != nil {
			return 0, PublishError(id, err)
		}
		if tag.RowsAffected() > 0 {
			slog.Info("Removed previous rows", "table", v,
				"catalog_id", id, "rows", tag.RowsAffected())
		}
	}

	var hash string
	if meta.Source.FileSHA256 != nil {
		hash = *meta.Source.FileSHA256
	}
	generated, err := time.Parse(time.RFC3339, meta.Generation.Timestamp)
	if err != nil {
		slog.Warn("Cannot parse generation timestamp",
			"timestamp", meta.Generation.Timestamp)
		generated = time.Time{}
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO catalogs (
			id, mode, exclude_bacteriophages, primate_homologs,
			source_sha256, virotaxa_version, generated_at, total_taxa,
			metadata, published_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		id,
		meta.Parameters.Mode,
		meta.Parameters.ExcludeBacteriophages,
		meta.Parameters.PrimateHomologs,
		hash,
		meta.Generation.Version,
		generated,
		len(entries),
		string(metaJSON),
		time.Now().UTC(),
	)
	if err != nil {
		return 0, PublishError(id, err)
	}

	entryRows, accRows := rows(id, entries)
	if err = p.copyRows(ctx, tx, "catalog_entries",
		entryColumns, entryRows); err != nil {
		return 0, PublishError(id, err)
	}
	if err = p.copyRows(ctx, tx, "catalog_accessions",
		accessionColumns, accRows); err != nil {
		return 0, PublishError(id, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, PublishError(id, err)
	}

	slog.Info("Published catalog", "catalog_id", id,
		"entries", len(entryRows), "accessions", len(accRows))
	return len(entryRows), nil
}

// copyRows sends rows to a table in batches.
func (p *publisher) copyRows(
	ctx context.Context,
	tx pgx.Tx,
	table string,
	columns []string,
	data [][]any,
) error {
	for _, batch := range chunk(data, p.batchSize) {
		_, err := tx.CopyFrom(
			ctx,
			pgx.Identifier{table},
			columns,
			pgx.CopyFromRows(batch),
		)
		if err != nil {
			return err
		}
		slog.Debug("Copied rows", "table", table, "rows", len(batch))
	}
	return nil
}

// rows converts entries to CopyFrom rows of both tables.
func rows(id string, entries []catalog.Entry) ([][]any, [][]any) {
	entryRows := make([][]any, 0, len(entries))
	var accRows [][]any
	for i, v := range entries {
		entryRows = append(entryRows, []any{
			id, v.TaxID, i, v.Name, v.Family,
			v.Order, v.Evidence, v.PMID,
		})
		for j, acc := range v.RefSeqIDs {
			accRows = append(accRows, []any{id, v.TaxID, j, acc})
		}
	}
	return entryRows, accRows
}

func chunk(data [][]any, size int) [][][]any {
	var res [][][]any
	for size < len(data) {
		data, res = data[size:], append(res, data[:size])
	}
	if len(data) > 0 {
		res = append(res, data)
	}
	return res
}
