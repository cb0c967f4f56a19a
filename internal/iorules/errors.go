package iorules

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/virotaxa/pkg/errcode"
)

// RulesFileError creates an error for when rules.yaml cannot be parsed.
func RulesFileError(path string, err error) error {
	msg := `Cannot load classification rules

<em>Rules file:</em> %s

<em>Possible causes:</em>
  - Invalid YAML format
  - Wrong type of a field (for example a string instead of a list)

<em>How to fix:</em>
  1. Validate YAML syntax
  2. Remove the file to restore built-in rules: <em>rm %s</em>`

	vars := []any{path, path}

	return &gn.Error{
		Code: errcode.RulesConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("failed to load rules: %w", err),
	}
}
