package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "virotaxa", cmd.Use)
}

// TestGetRootCmd_Version verifies both version flags.
func TestGetRootCmd_Version(t *testing.T) {
	for _, flag := range []string{"--version", "-V"} {
		t.Run(flag, func(t *testing.T) {
			cmd := getRootCmd()
			cmd.Version = "version: v1.2.3\nbuild:   abc123"

			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetArgs([]string{flag})

			require.NoError(t, cmd.Execute())
			out := buf.String()
			assert.Contains(t, out, "v1.2.3")
			assert.Contains(t, out, "abc123")
			assert.NotContains(t, out, "virotaxa version")
		})
	}
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())
	help := buf.String()
	assert.Contains(t, help, "Virus-Host Database")
	assert.Contains(t, help, "VIROTAXA_NCBI_EMAIL")
	assert.Contains(t, help, "rules.yaml")
}

func TestGetRootCmd_Settings(t *testing.T) {
	cmd := getRootCmd()
	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.NotNil(t, cmd.RunE)
	assert.True(t, cmd.SilenceErrors)
	assert.True(t, cmd.SilenceUsage)
	assert.NotSame(t, cmd, getRootCmd())
}

// TestGetRootCmd_Subcommands verifies the command tree.
func TestGetRootCmd_Subcommands(t *testing.T) {
	cmd := getRootCmd()

	tests := [][]string{
		{"download"},
		{"info"},
		{"families"},
		{"cache", "download"},
		{"cache", "add"},
		{"cache", "list"},
		{"cache", "use"},
		{"cache", "remove"},
		{"catalog", "build"},
		{"catalog", "validate"},
		{"catalog", "export"},
		{"catalog", "publish"},
		{"genome", "fetch"},
	}
	for _, v := range tests {
		t.Run(strings.Join(v, " "), func(t *testing.T) {
			sub, rest, err := cmd.Find(v)
			require.NoError(t, err)
			assert.Empty(t, rest)
			assert.Equal(t, v[len(v)-1], sub.Name())
		})
	}
}

func TestCatalogBuildFlags(t *testing.T) {
	cmd := getRootCmd()
	build, _, err := cmd.Find([]string{"catalog", "build"})
	require.NoError(t, err)

	for _, v := range []string{
		"output", "mode", "exclude-bacteriophages",
		"include-bacteriophages", "primate-homologs", "primate-families",
	} {
		assert.NotNil(t, build.Flags().Lookup(v), v)
	}
	assert.Equal(t, "m", build.Flags().Lookup("mode").Shorthand)
	assert.Equal(t, "catalog.tsv", build.Flags().Lookup("output").DefValue)
}

// TestGetRootCmd_InvalidCommand verifies error on
// invalid command.
func TestGetRootCmd_InvalidCommand(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"nonexistent-command"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown")
}
