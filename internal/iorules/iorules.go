// Package iorules reads classification rules from rules.yaml.
package iorules

import (
	"log/slog"
	"os"

	"github.com/gnames/virotaxa/internal/iofs"
	"github.com/gnames/virotaxa/pkg/vhdb"
	"gopkg.in/yaml.v3"
)

type iorules struct {
	path string
}

// New creates a loader of rules stored at path.
func New(path string) vhdb.RulesLoader {
	return &iorules{path: path}
}

// Load reads rules from the file. Missing file gives built-in rules.
// Fields absent from the file keep their built-in values, entries of
// evidence_priority are merged with built-in ones.
func (r *iorules) Load() (vhdb.Rules, error) {
	res := vhdb.DefaultRules()

	data, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		slog.Warn("Rules file not found, using built-in rules", "path", r.path)
		return res, nil
	}
	if err != nil {
		return res, iofs.ReadFileError(r.path, err)
	}

	if err = yaml.Unmarshal(data, &res); err != nil {
		return vhdb.DefaultRules(), RulesFileError(r.path, err)
	}

	if err = res.Validate(); err != nil {
		return vhdb.DefaultRules(), err
	}

	slog.Info("Rules loaded", "path", r.path)
	return res, nil
}

// SHA256 returns the digest of the rules file, or an empty string
// when the file does not exist.
func (r *iorules) SHA256() (string, error) {
	if !iofs.Exists(r.path) {
		return "", nil
	}
	return iofs.FileSHA256(r.path)
}
