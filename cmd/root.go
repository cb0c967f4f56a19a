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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/virotaxa/internal/iofs"
	"github.com/gnames/virotaxa/internal/iologger"
	app "github.com/gnames/virotaxa/pkg"
	"github.com/gnames/virotaxa/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the base command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "virotaxa",
		Short:   "Reproducible viral taxa catalogs from the Virus-Host DB",
		Long: `Virotaxa selects viruses of interest from the Virus-Host Database
(VHDB) and keeps every step reproducible.

Main steps:
  - download: get the latest VHDB table with a metadata sidecar
  - cache: keep VHDB versions by their SHA-256 hash
  - catalog build: filter by host, deduplicate, extract taxonomy
  - catalog validate: check a catalog against its metadata
  - genome fetch: download RefSeq genomes of a catalog from NCBI

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (VIROTAXA_*)
  3. Config file (~/.config/virotaxa/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (ncbi.email → VIROTAXA_NCBI_EMAIL).

  Examples:
    VIROTAXA_CATALOG_MODE         clinical, pandemic or mammal
    VIROTAXA_NCBI_EMAIL           contact email for NCBI
    VIROTAXA_NCBI_API_KEY         NCBI API key
    VIROTAXA_DATABASE_HOST        PostgreSQL host for catalog publish
    VIROTAXA_LOG_LEVEL            debug, info, warn or error

Filtering and taxonomy rules are in ~/.config/virotaxa/rules.yaml.`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "virotaxa version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for virotaxa")

	rootCmd.AddCommand(
		getDownloadCmd(),
		getInfoCmd(),
		getFamiliesCmd(),
		getCacheCmd(),
		getCatalogCmd(),
		getGenomeCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureRulesFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.CommandPath(),
	)

	return nil
}

func runRoot(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}

// Execute runs the root command and exits with status 1 on errors.
// This is called by main.main().
func Execute() {
	err := getRootCmd().Execute()
	iologger.Close()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("VIROTAXA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// VHDB source
	v.BindEnv("vhdb.url", "VIROTAXA_VHDB_URL")
	v.BindEnv("vhdb.timeout", "VIROTAXA_VHDB_TIMEOUT")

	// Catalog defaults
	v.BindEnv("catalog.mode", "VIROTAXA_CATALOG_MODE")
	v.BindEnv("catalog.exclude_bacteriophages",
		"VIROTAXA_CATALOG_EXCLUDE_BACTERIOPHAGES")
	v.BindEnv("catalog.primate_homologs", "VIROTAXA_CATALOG_PRIMATE_HOMOLOGS")
	v.BindEnv("catalog.primate_families", "VIROTAXA_CATALOG_PRIMATE_FAMILIES")

	// NCBI E-utilities
	v.BindEnv("ncbi.base_url", "VIROTAXA_NCBI_BASE_URL")
	v.BindEnv("ncbi.email", "VIROTAXA_NCBI_EMAIL")
	v.BindEnv("ncbi.api_key", "VIROTAXA_NCBI_API_KEY")
	v.BindEnv("ncbi.batch_size", "VIROTAXA_NCBI_BATCH_SIZE")

	// Database configuration
	v.BindEnv("database.host", "VIROTAXA_DATABASE_HOST")
	v.BindEnv("database.port", "VIROTAXA_DATABASE_PORT")
	v.BindEnv("database.user", "VIROTAXA_DATABASE_USER")
	v.BindEnv("database.password", "VIROTAXA_DATABASE_PASSWORD")
	v.BindEnv("database.database", "VIROTAXA_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "VIROTAXA_DATABASE_SSL_MODE")
	v.BindEnv("database.batch_size", "VIROTAXA_DATABASE_BATCH_SIZE")

	// Log configuration
	v.BindEnv("log.level", "VIROTAXA_LOG_LEVEL")
	v.BindEnv("log.format", "VIROTAXA_LOG_FORMAT")
	v.BindEnv("log.destination", "VIROTAXA_LOG_DESTINATION")

	v.AutomaticEnv()
}
