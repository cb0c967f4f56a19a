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
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/virotaxa/internal/iofs"
	"github.com/gnames/virotaxa/internal/iorules"
	"github.com/gnames/virotaxa/internal/iovhdb"
	"github.com/gnames/virotaxa/pkg/config"
	"github.com/gnames/virotaxa/pkg/vhdb"
	"github.com/spf13/cobra"
)

// familiesNum is the number of families shown by the families command.
const familiesNum = 30

// getInfoCmd returns the info command.
func getInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <vhdb.tsv>",
		Short: "Show statistics of a VHDB file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runInfo(args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}

func runInfo(path string) error {
	rows, err := loadVHDB(path)
	if err != nil {
		return err
	}
	s := vhdb.Summarize(rows)

	fmt.Printf("VHDB Info: %s\n", path)
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("\nTotal relationships: %s\n", humanize.Comma(int64(s.Relationships)))
	fmt.Printf("Unique viruses: %s\n", humanize.Comma(int64(s.Viruses)))
	fmt.Printf("Unique hosts: %s\n", humanize.Comma(int64(s.Hosts)))
	fmt.Printf("Unique host species: %s\n", humanize.Comma(int64(s.HostSpecies)))

	fmt.Println("\nEvidence types:")
	evidence := slices.SortedFunc(maps.Keys(s.Evidence), func(a, b string) int {
		return cmp.Or(cmp.Compare(s.Evidence[b], s.Evidence[a]), cmp.Compare(a, b))
	})
	for _, v := range evidence {
		fmt.Printf("  %s: %s\n", v, humanize.Comma(int64(s.Evidence[v])))
	}

	meta, err := iovhdb.LoadMetadata(path)
	if err != nil {
		gn.Warn("Cannot read download metadata of <em>%s</em>", path)
		return nil
	}
	if meta != nil {
		fmt.Println("\nDownload metadata:")
		fmt.Printf("  Downloaded: %s\n", meta.DownloadTimestamp)
		fmt.Printf("  URL: %s\n", meta.URL)
		fmt.Printf("  SHA256: %s...\n", meta.SHA256[:min(16, len(meta.SHA256))])
	}
	return nil
}

// getFamiliesCmd returns the families command.
func getFamiliesCmd() *cobra.Command {
	var mode string

	cmd := &cobra.Command{
		Use:   "families <vhdb.tsv>",
		Short: "List viral families of hosts selected by a mode",
		Long: `List viral families with the number of unique viruses in each,
after the host filter of the mode is applied.

Examples:
  virotaxa families data/vhdb.tsv
  virotaxa families data/vhdb.tsv -m pandemic`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("mode") {
				mode = cfg.Catalog.Mode
			}
			err := runFamilies(args[0], mode)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&mode, "mode", "m", "",
		"host mode: clinical, pandemic or mammal (default from config)")

	return cmd
}

func runFamilies(path, modeStr string) error {
	mode, err := vhdb.ParseHostMode(modeStr)
	if err != nil {
		return err
	}
	rules, err := loadRules()
	if err != nil {
		return err
	}
	rows, err := loadVHDB(path)
	if err != nil {
		return err
	}
	rows, err = rules.FilterByHost(rows, mode)
	if err != nil {
		return err
	}

	counts := slices.DeleteFunc(rules.FamilyCounts(rows),
		func(fc vhdb.FamilyCount) bool { return fc.Family == "" })

	fmt.Printf("Viral Families (%s mode)\n", mode)
	fmt.Println(strings.Repeat("=", 50))
	fmt.Printf("\nTotal families: %d\n\n", len(counts))
	for _, v := range counts[:min(familiesNum, len(counts))] {
		fmt.Printf("  %s: %s\n", v.Family, humanize.Comma(int64(v.Count)))
	}
	if len(counts) > familiesNum {
		fmt.Printf("\n  ... and %d more\n", len(counts)-familiesNum)
	}
	return nil
}

func loadVHDB(path string) ([]vhdb.Relationship, error) {
	if !iofs.Exists(path) {
		return nil, iofs.FileNotFoundError(path)
	}
	return iovhdb.Load(path)
}

func loadRules() (vhdb.Rules, error) {
	return iorules.New(config.RulesFilePath(homeDir)).Load()
}
