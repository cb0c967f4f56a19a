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
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/virotaxa/internal/iovhdb"
	"github.com/gnames/virotaxa/pkg/config"
	"github.com/gnames/virotaxa/pkg/vhdb"
	"github.com/spf13/cobra"
)

// getDownloadCmd returns the download command.
func getDownloadCmd() *cobra.Command {
	var output, url string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the latest Virus-Host Database",
		Long: `Download the VHDB table and save its metadata for reproducibility.

The metadata sidecar (<name>.metadata.json) keeps the URL, download
time, SHA-256 hash and HTTP headers of the file. Catalog builds copy
it into their own metadata.

Examples:
  virotaxa download
  virotaxa download -o vhdb/2025-03.tsv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("url") {
				cfg.Update([]config.Option{config.OptVHDBURL(url)})
			}
			err := runDownload(cmd.Context(), output)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "data/vhdb.tsv",
		"output file path")
	cmd.Flags().StringVar(&url, "url", "",
		"download from this URL instead of the configured one")

	return cmd
}

func runDownload(ctx context.Context, output string) error {
	gn.Info("Downloading Virus-Host Database from <em>%s</em>", cfg.VHDB.URL)
	_, err := download(ctx, output)
	if err != nil {
		return err
	}
	gn.Info("Downloaded to <em>%s</em>", output)
	gn.Message("Metadata saved to <em>%s</em>", iovhdb.MetadataPath(output))
	return nil
}

// download saves VHDB to output and reports size and time.
func download(ctx context.Context, output string) (*vhdb.DownloadMeta, error) {
	start := time.Now()
	meta, err := iovhdb.Download(ctx, iovhdb.DownloadOptions{
		URL:     cfg.VHDB.URL,
		Output:  output,
		Timeout: time.Duration(cfg.VHDB.Timeout) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	gn.Info("Got <em>%s</em> in %s, SHA-256 <em>%s</em>",
		humanize.Bytes(uint64(meta.FileSizeBytes)),
		gnfmt.TimeString(time.Since(start).Seconds()),
		meta.SHA256[:16],
	)
	return meta, nil
}
