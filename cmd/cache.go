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
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/virotaxa/internal/iocache"
	"github.com/gnames/virotaxa/internal/iofs"
	"github.com/gnames/virotaxa/internal/iovhdb"
	"github.com/gnames/virotaxa/pkg/cache"
	"github.com/gnames/virotaxa/pkg/config"
	"github.com/gnames/virotaxa/pkg/errcode"
	"github.com/spf13/cobra"
)

// getCacheCmd returns the cache command with its subcommands.
func getCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage cached VHDB versions",
		Long: `Keep VHDB versions by their SHA-256 hash.

Cached files live in ~/.cache/virotaxa/vhdb. Commands that take a hash
accept its prefix of at least 8 characters.`,
	}

	cmd.AddCommand(
		getCacheDownloadCmd(),
		getCacheAddCmd(),
		getCacheListCmd(),
		getCacheUseCmd(),
		getCacheRemoveCmd(),
	)
	return cmd
}

func registry() cache.Registry {
	return iocache.New(config.VHDBCacheDir(homeDir))
}

// withError prints a user-facing message of an error.
func withError(err error) error {
	if err != nil {
		gn.PrintErrorMessage(err)
	}
	return err
}

func getCacheDownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "download",
		Short: "Download the latest VHDB directly to cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withError(runCacheDownload(cmd.Context()))
		},
	}
}

func runCacheDownload(ctx context.Context) error {
	tmpDir, err := os.MkdirTemp(config.CacheDir(homeDir), "download-")
	if err != nil {
		return iofs.CreateDirError(config.CacheDir(homeDir), err)
	}
	defer os.RemoveAll(tmpDir)

	gn.Info("Downloading VHDB to cache...")
	meta, err := download(ctx, filepath.Join(tmpDir, "vhdb.tsv"))
	if err != nil {
		return err
	}

	e, err := registry().Add(filepath.Join(tmpDir, "vhdb.tsv"), meta)
	if err != nil {
		return err
	}

	gn.Info("Downloaded and cached as <em>%s</em>", e.ShortHash())
	fmt.Printf("  Path: %s\n", e.Path)
	fmt.Printf("\nTo use this version:\n")
	fmt.Printf("  virotaxa cache use %s -o data/vhdb.tsv\n", e.ShortHash())
	return nil
}

func getCacheAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <vhdb.tsv>",
		Short: "Add a VHDB file to the cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			path := args[0]
			if !iofs.Exists(path) {
				return withError(iofs.FileNotFoundError(path))
			}
			e, err := registry().Add(path, nil)
			if err != nil {
				return withError(err)
			}
			gn.Info("Cached with hash <em>%s</em>", e.ShortHash())
			fmt.Printf("Full hash: %s\n", e.Hash)
			return nil
		},
	}
}

func getCacheListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached VHDB versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := registry().List()
			if err != nil {
				return withError(err)
			}
			printCacheList(cmd.OutOrStdout(), entries)
			return nil
		},
	}
}

func printCacheList(w io.Writer, entries []cache.Entry) {
	fmt.Fprintln(w, "Cached VHDB Versions")
	fmt.Fprintln(w, strings.Repeat("=", 64))

	if len(entries) == 0 {
		fmt.Fprintln(w, "\nNo cached versions found.")
		fmt.Fprintln(w, "Run 'virotaxa cache download' to cache a version.")
		return
	}

	fmt.Fprintf(w, "\n%-14s %-22s %-10s %s\n",
		"Hash", "Downloaded", "Size", "Cached At")
	fmt.Fprintln(w, strings.Repeat("-", 64))
	for _, v := range entries {
		downloaded := "unknown"
		if v.DownloadMeta != nil && v.DownloadMeta.DownloadTimestamp != "" {
			ts := v.DownloadMeta.DownloadTimestamp
			downloaded = ts[:min(19, len(ts))]
		}
		fmt.Fprintf(w, "%-14s %-22s %-10s %s\n",
			v.ShortHash(),
			downloaded,
			humanize.Bytes(uint64(v.FileSizeBytes)),
			v.CachedAt[:min(10, len(v.CachedAt))],
		)
	}
	fmt.Fprintf(w, "\nTotal: %d cached version(s)\n", len(entries))
}

func getCacheUseCmd() *cobra.Command {
	var (
		output string
		cp     bool
	)

	cmd := &cobra.Command{
		Use:   "use <hash-prefix>",
		Short: "Link or copy a cached VHDB version",
		Long: `Put a cached VHDB version at the output path.

By default the output is a symbolic link to the cached file, use --copy
to get an independent copy. The download metadata of the version is
written next to the output.

Examples:
  virotaxa cache use 3f2a9c1b
  virotaxa cache use 3f2a9c1b -o vhdb/old.tsv --copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withError(runCacheUse(args[0], output, cp))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "data/vhdb.tsv",
		"output path")
	cmd.Flags().BoolVar(&cp, "copy", false,
		"copy the file instead of linking it")

	return cmd
}

func runCacheUse(prefix, output string, cp bool) error {
	e, err := registry().Get(prefix)
	if err != nil {
		return err
	}

	if err = iofs.TouchDir(filepath.Dir(output)); err != nil {
		return err
	}
	if _, err = os.Lstat(output); err == nil {
		if err = os.Remove(output); err != nil {
			return iofs.CopyFileError(output, err)
		}
	}

	if cp {
		if err = iofs.CopyFile(e.Path, output); err != nil {
			return err
		}
		gn.Info("Copied cached version to <em>%s</em>", output)
	} else {
		src, err := filepath.Abs(e.Path)
		if err != nil {
			return iofs.CopyFileError(output, err)
		}
		if err = os.Symlink(src, output); err != nil {
			return iofs.CopyFileError(output, err)
		}
		gn.Info("Linked cached version to <em>%s</em>", output)
	}

	if e.DownloadMeta != nil {
		metaPath := iovhdb.MetadataPath(output)
		if err = iovhdb.SaveMetadata(e.DownloadMeta, metaPath); err != nil {
			return err
		}
	}
	fmt.Printf("Source: %s\n", e.Path)
	return nil
}

func getCacheRemoveCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "remove <hash-prefix>",
		Short: "Remove a cached VHDB version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withError(
				runCacheRemove(cmd.InOrStdin(), args[0], force),
			)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false,
		"remove without confirmation")

	return cmd
}

func runCacheRemove(in io.Reader, prefix string, force bool) error {
	reg := registry()
	if !force {
		e, err := reg.Get(prefix)
		if err != nil && !isNotFound(err) {
			return err
		}
		name := prefix
		if err == nil {
			name = e.Filename
		}
		ok, err := confirm(in, os.Stdout,
			fmt.Sprintf("About to remove %s. Are you sure?", name))
		if err != nil {
			return err
		}
		if !ok {
			gn.Warn("Cancelled")
			return nil
		}
	}

	e, err := reg.Remove(prefix)
	if err != nil {
		return err
	}
	gn.Info("Removed <em>%s</em>", e.Filename)
	return nil
}

func isNotFound(err error) bool {
	var gnErr *gn.Error
	return errors.As(err, &gnErr) && gnErr.Code == errcode.CacheEntryNotFoundError
}
