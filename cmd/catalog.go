/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/gnames/virotaxa/internal/iocatalog"
	"github.com/gnames/virotaxa/internal/iodb"
	"github.com/gnames/virotaxa/internal/ioexport"
	"github.com/gnames/virotaxa/internal/iofs"
	"github.com/gnames/virotaxa/internal/iopublish"
	"github.com/gnames/virotaxa/internal/iorules"
	"github.com/gnames/virotaxa/internal/ioschema"
	"github.com/gnames/virotaxa/internal/iovhdb"
	app "github.com/gnames/virotaxa/pkg"
	"github.com/gnames/virotaxa/pkg/catalog"
	"github.com/gnames/virotaxa/pkg/config"
	"github.com/gnames/virotaxa/pkg/provenance"
	"github.com/spf13/cobra"
)

// getCatalogCmd returns the catalog command with its subcommands.
func getCatalogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Build, validate and share catalogs",
	}

	cmd.AddCommand(
		getCatalogBuildCmd(),
		getCatalogValidateCmd(),
		getCatalogExportCmd(),
		getCatalogPublishCmd(),
	)
	return cmd
}

func getCatalogBuildCmd() *cobra.Command {
	var (
		output string
		flags  catalogFlags
	)

	cmd := &cobra.Command{
		Use:   "build <vhdb.tsv>",
		Short: "Build a viral taxa catalog from VHDB",
		Long: `Build a catalog with one row per virus and save its metadata.

Modes:
  clinical  - human hosts only
  pandemic  - all vertebrate hosts
  mammal    - mammalian hosts only

Primate homologs add viruses of non-human primates that are not in the
catalog yet:
  none      - add nothing (default)
  strict    - chimpanzees and bonobos
  extended  - all non-human primates

Defaults of parameters come from the catalog section of the config file.

Examples:
  virotaxa catalog build data/vhdb.tsv
  virotaxa catalog build data/vhdb.tsv -m pandemic -o pandemic.tsv
  virotaxa catalog build data/vhdb.tsv --primate-homologs strict \
    --primate-families Herpesviridae,Retroviridae`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := flags.options(cmd)
			if err != nil {
				return withError(err)
			}
			cfg.Update(o)
			return withError(runCatalogBuild(args[0], output))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "catalog.tsv",
		"output catalog file")
	flags.register(cmd)

	return cmd
}

func runCatalogBuild(path, output string) error {
	loader := iorules.New(config.RulesFilePath(homeDir))
	rules, err := loader.Load()
	if err != nil {
		return err
	}
	rulesSHA, err := loader.SHA256()
	if err != nil {
		return err
	}

	rows, err := loadVHDB(path)
	if err != nil {
		return err
	}

	p := params(cfg)
	gn.Info("Building <em>%s</em> catalog from %s relationships...",
		p.Mode, humanize.Comma(int64(len(rows))))

	cat, err := catalog.Build(rows, p, rules)
	if err != nil {
		return err
	}
	if len(cat.Entries) == 0 {
		gn.Warn("No viruses passed the filters")
	}

	sourceSHA, err := iofs.FileSHA256(path)
	if err != nil {
		return err
	}
	vmeta, err := iovhdb.LoadMetadata(path)
	if err != nil {
		slog.Warn("Ignoring unreadable download metadata",
			"path", iovhdb.MetadataPath(path), "error", err)
		vmeta = nil
	}

	meta := catalog.NewMetadata(cat, catalog.MetadataInput{
		SourcePath:   path,
		SourceSHA256: sourceSHA,
		VHDBMeta:     vmeta,
		OutputPath:   output,
		Rules:        rules,
		RulesSHA256:  rulesSHA,
		Environment:  provenance.Collect(),
		Version:      app.Version,
		Now:          time.Now(),
	})

	if err = iocatalog.Save(cat.Entries, output, &meta); err != nil {
		return err
	}

	st := meta.Statistics
	gn.Info("Built catalog with <em>%s</em> taxa",
		humanize.Comma(int64(st.TotalTaxa)))
	fmt.Printf("  Families: %d\n", st.UniqueFamilies)
	fmt.Printf("  RefSeq entries: %s\n",
		humanize.Comma(int64(st.TotalRefSeqEntries)))
	if cat.PrimateHomologs > 0 {
		fmt.Printf("  Primate homologs: %d\n", cat.PrimateHomologs)
	}
	fmt.Printf("\n  Catalog: %s\n", output)
	fmt.Printf("  Metadata: %s\n", iocatalog.MetadataPath(output))
	slog.Info("Catalog built", "path", output,
		"catalog_id", meta.Generation.CatalogID, "taxa", st.TotalTaxa)
	return nil
}

func getCatalogValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <catalog.tsv>",
		Short: "Validate a catalog against its metadata",
		Long: `Check that a catalog agrees with its metadata and that the VHDB
file it was built from did not change.

The command exits with status 1 if validation fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := iocatalog.Validate(args[0])
			printValidation(cmd.OutOrStdout(), res)
			if !res.Valid() {
				return withError(
					iocatalog.CatalogInvalidError(args[0], len(res.Errors)),
				)
			}
			return nil
		},
	}
}

func printValidation(w io.Writer, res catalog.ValidationResult) {
	fmt.Fprintln(w, "Catalog Validation")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	for _, v := range res.Facts {
		fmt.Fprintf(w, "✓ %s: %s\n", v.Key, v.Value)
	}
	for _, v := range res.Warnings {
		fmt.Fprintf(w, "⚠ %s\n", v)
	}
	for _, v := range res.Errors {
		fmt.Fprintf(w, "✗ %s\n", v)
	}
	fmt.Fprintln(w)

	if !res.Valid() {
		return
	}
	msg := "<em>Validation PASSED - catalog is fully reproducible</em>"
	var vars []any
	if len(res.Warnings) > 0 {
		msg = "<warn>Validation PASSED with %d warning(s)</warn>"
		vars = []any{len(res.Warnings)}
	}
	fmt.Fprintln(w, gnlib.FormatMessage(msg, vars))
}

func getCatalogExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <catalog.tsv>",
		Short: "Export a catalog to a SQLite file",
		Long: `Write a catalog and its metadata to a standalone SQLite file.

Tables:
  entries     - one row per virus
  accessions  - RefSeq accessions of viruses
  metadata    - catalog metadata as key/value pairs

Examples:
  virotaxa catalog export catalog.tsv -o catalog.sqlite`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withError(runCatalogExport(cmd.Context(), args[0], output))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "catalog.sqlite",
		"output SQLite file")

	return cmd
}

func runCatalogExport(ctx context.Context, path, output string) error {
	entries, meta, err := loadCatalog(path)
	if err != nil {
		return err
	}
	if err = ioexport.ExportSQLite(ctx, output, entries, meta); err != nil {
		return err
	}
	gn.Info("Exported <em>%s</em> taxa to <em>%s</em>",
		humanize.Comma(int64(len(entries))), output)
	return nil
}

func getCatalogPublishCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "publish <catalog.tsv>",
		Short: "Load a catalog into PostgreSQL",
		Long: `Load a catalog into the PostgreSQL database from the config file.

This command:
  1. Connects to PostgreSQL using configuration settings
  2. Creates or updates catalog tables with GORM AutoMigrate
  3. Replaces rows of a catalog with the same catalog_id
  4. Loads entries and accessions in one transaction

Examples:
  virotaxa catalog publish catalog.tsv
  VIROTAXA_DATABASE_HOST=db.local virotaxa catalog publish catalog.tsv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withError(runCatalogPublish(cmd.Context(), args[0]))
		},
	}
}

func runCatalogPublish(ctx context.Context, path string) error {
	entries, meta, err := loadCatalog(path)
	if err != nil {
		return err
	}

	op := iodb.NewPgxOperator()
	if err = op.Connect(ctx, &cfg.Database); err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s@%s:%d/%s</em>",
		cfg.Database.User, cfg.Database.Host,
		cfg.Database.Port, cfg.Database.Database)

	if err = ioschema.NewManager(op).Migrate(ctx); err != nil {
		return err
	}

	start := time.Now()
	n, err := iopublish.New(op, cfg.Database.BatchSize).
		Publish(ctx, entries, meta)
	if err != nil {
		return err
	}

	gn.Info("Published <em>%s</em> taxa as catalog <em>%s</em> in %s",
		humanize.Comma(int64(n)), meta.Generation.CatalogID,
		time.Since(start).Round(time.Millisecond))
	return nil
}

// loadCatalog reads a catalog with its metadata. Both are required.
func loadCatalog(path string) ([]catalog.Entry, *catalog.Metadata, error) {
	if !iofs.Exists(path) {
		return nil, nil, iofs.FileNotFoundError(path)
	}
	entries, err := iocatalog.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if len(entries) == 0 {
		return nil, nil, iocatalog.CatalogEmptyError(path)
	}

	meta, err := iocatalog.LoadMetadata(path)
	if err != nil {
		return nil, nil, err
	}
	return entries, meta, nil
}
