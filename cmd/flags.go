package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/gnames/virotaxa/pkg/catalog"
	"github.com/gnames/virotaxa/pkg/config"
	"github.com/gnames/virotaxa/pkg/vhdb"
	"github.com/spf13/cobra"
)

// catalogFlags are catalog build parameters given on the command line.
type catalogFlags struct {
	mode            string
	exclude         bool
	include         bool
	primateHomologs string
	primateFamilies []string
}

func (f *catalogFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "",
		"host mode: clinical, pandemic or mammal (default from config)")
	cmd.Flags().BoolVar(&f.exclude, "exclude-bacteriophages", false,
		"remove bacteriophages (default)")
	cmd.Flags().BoolVar(&f.include, "include-bacteriophages", false,
		"keep bacteriophages")
	cmd.Flags().StringVar(&f.primateHomologs, "primate-homologs", "",
		"add viruses of great apes: none, strict or extended")
	cmd.Flags().StringSliceVar(&f.primateFamilies, "primate-families", nil,
		"limit primate homologs to these virus families, "+
			"'high-diversity' adds families from rules.yaml")
	cmd.MarkFlagsMutuallyExclusive(
		"exclude-bacteriophages", "include-bacteriophages",
	)
}

// options converts flags that were set by a user to config options.
// Unlike values from the config file, wrong modes given on the command
// line stop the command.
func (f *catalogFlags) options(cmd *cobra.Command) ([]config.Option, error) {
	var res []config.Option
	flags := cmd.Flags()
	if flags.Changed("mode") {
		if _, err := vhdb.ParseHostMode(f.mode); err != nil {
			return nil, err
		}
		res = append(res, config.OptCatalogMode(f.mode))
	}
	if flags.Changed("exclude-bacteriophages") {
		b := f.exclude
		res = append(res, config.OptCatalogExcludeBacteriophages(&b))
	}
	if flags.Changed("include-bacteriophages") {
		b := !f.include
		res = append(res, config.OptCatalogExcludeBacteriophages(&b))
	}
	if flags.Changed("primate-homologs") {
		if _, err := vhdb.ParsePrimateMode(f.primateHomologs); err != nil {
			return nil, err
		}
		res = append(res, config.OptCatalogPrimateHomologs(f.primateHomologs))
	}
	if flags.Changed("primate-families") {
		res = append(res, config.OptCatalogPrimateFamilies(f.primateFamilies))
	}
	return res, nil
}

// params returns catalog build parameters from the configuration.
func params(c *config.Config) catalog.Params {
	res := catalog.Params{
		Mode:                  vhdb.HostMode(c.Catalog.Mode),
		ExcludeBacteriophages: true,
		PrimateHomologs:       vhdb.PrimateMode(c.Catalog.PrimateHomologs),
		PrimateFamilies:       c.Catalog.PrimateFamilies,
	}
	if c.Catalog.ExcludeBacteriophages != nil {
		res.ExcludeBacteriophages = *c.Catalog.ExcludeBacteriophages
	}
	return res
}

// confirm asks a yes/no question and reads the answer from r.
func confirm(r io.Reader, w io.Writer, question string) (bool, error) {
	fmt.Fprintf(w, "%s (yes/no): ", question)
	reader := bufio.NewReader(r)
	response, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read user input: %w", err)
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes" || response == "y", nil
}
