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
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/virotaxa/internal/iofs"
	"github.com/gnames/virotaxa/internal/iogenome"
	app "github.com/gnames/virotaxa/pkg"
	"github.com/gnames/virotaxa/pkg/config"
	"github.com/gnames/virotaxa/pkg/genome"
	"github.com/spf13/cobra"
)

// getGenomeCmd returns the genome command with its subcommands.
func getGenomeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genome",
		Short: "Fetch genome sequences of catalogs",
	}
	cmd.AddCommand(getGenomeFetchCmd())
	return cmd
}

func getGenomeFetchCmd() *cobra.Command {
	var (
		output    string
		email     string
		apiKey    string
		batchSize int
	)

	cmd := &cobra.Command{
		Use:   "fetch <catalog.tsv>",
		Short: "Fetch RefSeq genomes of all taxa in a catalog",
		Long: `Download RefSeq genome sequences from NCBI for each taxon in a
catalog. Sequences are saved as FASTA files, one per taxon, together
with genomes.metadata.json.

NCBI asks for a contact email. Without an API key requests are limited
to 3 per second, with a key to 10 per second.

Examples:
  virotaxa genome fetch catalog.tsv --email user@example.com
  virotaxa genome fetch catalog.tsv --email user@example.com \
    --api-key KEY -o genomes/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var o []config.Option
			flags := cmd.Flags()
			if flags.Changed("email") {
				o = append(o, config.OptNCBIEmail(email))
			}
			if flags.Changed("api-key") {
				o = append(o, config.OptNCBIAPIKey(apiKey))
			}
			if flags.Changed("batch-size") {
				o = append(o, config.OptNCBIBatchSize(batchSize))
			}
			cfg.Update(o)
			return withError(runGenomeFetch(cmd.Context(), args[0], output))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "genomes",
		"output directory for FASTA files")
	cmd.Flags().StringVar(&email, "email", "",
		"email for NCBI (required by NCBI policy)")
	cmd.Flags().StringVar(&apiKey, "api-key", "",
		"NCBI API key (optional, increases rate limit)")
	cmd.Flags().IntVar(&batchSize, "batch-size", genome.DefaultBatchSize,
		"number of sequences per request")

	return cmd
}

func runGenomeFetch(ctx context.Context, path, output string) error {
	if cfg.NCBI.Email == "" {
		return iogenome.EmailRequiredError()
	}
	if !iofs.Exists(path) {
		return iofs.FileNotFoundError(path)
	}

	gn.Info("Fetching genomes from catalog <em>%s</em>", path)
	if cfg.NCBI.APIKey != "" {
		gn.Message("Using API key (10 req/s rate limit)")
	} else {
		gn.Message("No API key (3 req/s rate limit)")
	}

	start := time.Now()
	res, err := iogenome.FetchGenomes(
		ctx,
		iogenome.NewEutils(cfg.NCBI),
		iogenome.FetchOptions{
			CatalogPath:  path,
			OutputDir:    output,
			BatchSize:    cfg.NCBI.BatchSize,
			Delay:        cfg.NCBIDelay(),
			WithProgress: true,
		},
	)
	if err != nil {
		return err
	}

	catalogSHA, err := iofs.FileSHA256(path)
	if err != nil {
		return err
	}
	meta := genome.NewMetadata(res, genome.MetadataInput{
		CatalogPath:   path,
		CatalogSHA256: catalogSHA,
		Email:         cfg.NCBI.Email,
		Version:       app.Version,
		Now:           time.Now(),
	})
	metaPath, err := iogenome.SaveMetadata(&meta, output)
	if err != nil {
		return err
	}

	gn.Info("Fetch complete in %s",
		gnfmt.TimeString(time.Since(start).Seconds()))
	fmt.Printf("  Taxa: %s\n", humanize.Comma(int64(res.TotalTaxa)))
	fmt.Printf("  Sequences: %d/%d\n", res.Successful, res.TotalSequences)
	fmt.Printf("  Bases: %s\n", humanize.Comma(int64(res.TotalBases())))
	if len(res.Failed) > 0 {
		gn.Warn("Failed: %d", len(res.Failed))
	}
	fmt.Printf("  Files: %d\n", len(res.Files))
	fmt.Printf("\n  Output: %s\n", output)
	fmt.Printf("  Metadata: %s\n", metaPath)
	return nil
}
