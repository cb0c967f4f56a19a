package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/virotaxa/pkg/vhdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()

	for range 3 {
		require.NoError(t, EnsureDirs(tmpDir))
	}

	dirs := []string{
		filepath.Join(tmpDir, ".config", "virotaxa"),
		filepath.Join(tmpDir, ".cache", "virotaxa"),
		filepath.Join(tmpDir, ".cache", "virotaxa", "vhdb"),
		filepath.Join(tmpDir, ".local", "share", "virotaxa", "logs"),
	}
	for _, v := range dirs {
		info, err := os.Stat(v)
		require.NoError(t, err, v)
		assert.True(t, info.IsDir(), v)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), v)
	}
}

func TestTouchDir(t *testing.T) {
	tmpDir := t.TempDir()
	newDir := filepath.Join(tmpDir, "test", "subdir")

	require.NoError(t, TouchDir(newDir))
	info, err := os.Stat(newDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// existing directory stays as is
	require.NoError(t, os.Chmod(newDir, 0700))
	require.NoError(t, touchDir(newDir))
	info, err = os.Stat(newDir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0700), info.Mode().Perm())
}

func TestEnsureFiles(t *testing.T) {
	tests := []struct {
		name    string
		fn      func(string) error
		file    string
		content string
	}{
		{"config", EnsureConfigFile, "config.yaml", ConfigYAML},
		{"rules", EnsureRulesFile, "rules.yaml", RulesYAML},
	}

	for _, v := range tests {
		t.Run(v.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			require.NoError(t, EnsureDirs(tmpDir))
			require.NoError(t, v.fn(tmpDir))

			path := filepath.Join(tmpDir, ".config", "virotaxa", v.file)
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, v.content, string(content))

			custom := "# edited by user\n"
			require.NoError(t, os.WriteFile(path, []byte(custom), 0644))
			require.NoError(t, v.fn(tmpDir))
			content, err = os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, custom, string(content),
				"existing file should not be overwritten")
		})
	}
}

func TestConfigYAMLEmbedded(t *testing.T) {
	for _, v := range []string{"vhdb:", "catalog:", "ncbi:", "database:", "log:"} {
		assert.Contains(t, ConfigYAML, v)
	}
}

// Embedded rules must describe the same rules that are built in.
func TestRulesYAMLMatchesDefaults(t *testing.T) {
	var rules vhdb.Rules
	require.NoError(t, yaml.Unmarshal([]byte(RulesYAML), &rules))
	assert.Equal(t, vhdb.DefaultRules(), rules)
}

func TestFileSHA256(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abc.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0644))

	hash, err := FileSHA256(path)
	require.NoError(t, err)
	assert.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		hash)

	_, err = FileSHA256(filepath.Join(t.TempDir(), "none"))
	assert.Error(t, err)
}

func TestCopyFile(t *testing.T) {
	tmpDir := t.TempDir()
	src := filepath.Join(tmpDir, "src.tsv")
	dst := filepath.Join(tmpDir, "deep", "dir", "dst.tsv")
	require.NoError(t, os.WriteFile(src, []byte("a\tb\n"), 0644))

	require.NoError(t, CopyFile(src, dst))
	content, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "a\tb\n", string(content))
	assert.True(t, Exists(dst))
	assert.False(t, Exists(filepath.Dir(dst)))
}

func TestSidecarPath(t *testing.T) {
	assert.Equal(t, "data/cat.metadata.json", SidecarPath("data/cat.tsv"))
	assert.Equal(t, "data/cat.metadata.json", SidecarPath("data/cat"))
	assert.Equal(t, "a.b.metadata.json", SidecarPath("a.b.tsv"))
}
