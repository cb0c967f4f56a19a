package vhdb

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/virotaxa/pkg/errcode"
)

// InvalidParameterError reports a value outside of its allowed set.
func InvalidParameterError(name, val string, allowed []string) error {
	msg := "Invalid %s <em>'%s'</em>, valid values are: <em>%s</em>"
	vars := []any{name, val, strings.Join(allowed, ", ")}
	return &gn.Error{
		Code: errcode.InvalidParameterError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("invalid %s '%s', must be one of %v",
			name, val, allowed),
	}
}

// RulesError reports rules that cannot be used.
func RulesError(problems []string) error {
	msg := `Invalid classification rules

<em>Problems:</em>
  - %s

<em>How to fix:</em>
  Edit <em>~/.config/virotaxa/rules.yaml</em> or delete it to
  restore defaults.`
	vars := []any{strings.Join(problems, "\n  - ")}
	return &gn.Error{
		Code: errcode.RulesConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  errors.New(strings.Join(problems, "; ")),
	}
}
