// Package ioexport writes catalogs to standalone SQLite files.
package ioexport

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gnfmt"
	"github.com/gnames/virotaxa/internal/iofs"
	"github.com/gnames/virotaxa/pkg/catalog"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE entries (
	taxid INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	family TEXT NOT NULL,
	"order" TEXT NOT NULL,
	evidence TEXT NOT NULL,
	pmid TEXT NOT NULL
);

CREATE TABLE accessions (
	accession TEXT NOT NULL,
	taxid INTEGER NOT NULL REFERENCES entries(taxid),
	position INTEGER NOT NULL,
	PRIMARY KEY (taxid, position)
);

CREATE INDEX accessions_accession_idx ON accessions (accession);

CREATE TABLE metadata (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

// Metadata keys of an exported file.
const (
	KeySidecar   = "sidecar"
	KeyCatalogID = "catalog_id"
	KeyMode      = "mode"
)

// ExportSQLite writes entries and metadata to a new SQLite file at
// path. An existing file is replaced.
func ExportSQLite(
	ctx context.Context,
	path string,
	entries []catalog.Entry,
	meta *catalog.Metadata,
) error {
	if err := iofs.TouchDir(filepath.Dir(path)); err != nil {
		return err
	}
	err := os.Remove(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return ExportSQLiteError(path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return ExportSQLiteError(path, err)
	}
	defer db.Close()

	if err = export(ctx, db, entries, meta); err != nil {
		return ExportSQLiteError(path, err)
	}
	slog.Info("Catalog exported to SQLite", "path", path, "taxa", len(entries))
	return nil
}

func export(
	ctx context.Context,
	db *sql.DB,
	entries []catalog.Entry,
	meta *catalog.Metadata,
) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	entStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (taxid, name, family, "order", evidence, pmid)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer entStmt.Close()

	accStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO accessions (accession, taxid, position) VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer accStmt.Close()

	for _, v := range entries {
		_, err = entStmt.ExecContext(ctx,
			v.TaxID, v.Name, v.Family, v.Order, v.Evidence, v.PMID)
		if err != nil {
			return err
		}
		for i, acc := range v.RefSeqIDs {
			if _, err = accStmt.ExecContext(ctx, acc, v.TaxID, i); err != nil {
				return err
			}
		}
	}

	if meta != nil {
		data, err := (gnfmt.GNjson{}).Encode(meta)
		if err != nil {
			return err
		}
		kv := [][2]string{
			{KeySidecar, string(data)},
			{KeyCatalogID, meta.Generation.CatalogID},
			{KeyMode, meta.Parameters.Mode},
		}
		for _, v := range kv {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO metadata (key, value) VALUES (?, ?)`, v[0], v[1])
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}
