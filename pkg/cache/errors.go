package cache

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/virotaxa/pkg/errcode"
)

// PrefixTooShortError is returned for hash prefixes shorter than
// MinPrefixLen.
func PrefixTooShortError(prefix string) error {
	msg := "Hash prefix <em>%s</em> is too short, use at least %d characters"
	vars := []any{prefix, MinPrefixLen}
	return &gn.Error{
		Code: errcode.InvalidParameterError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("hash prefix '%s' is shorter than %d characters",
			prefix, MinPrefixLen),
	}
}

// AmbiguousPrefixError is returned when a prefix matches several
// entries.
func AmbiguousPrefixError(prefix string, hashes []string) error {
	short := make([]string, len(hashes))
	for i, v := range hashes {
		short[i] = ShortHash(v)
	}
	matches := strings.Join(short, ", ")

	msg := "Ambiguous hash prefix <em>%s</em> matches: %s"
	vars := []any{prefix, matches}
	return &gn.Error{
		Code: errcode.CacheAmbiguousPrefixError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("ambiguous hash prefix '%s' matches: %s", prefix, matches),
	}
}

// EntryNotFoundError is returned when no entry matches a prefix.
func EntryNotFoundError(prefix string) error {
	msg := `No cached VHDB matches <em>%s</em>

<em>How to fix:</em>
  See cached versions with <em>virotaxa cache list</em>`
	vars := []any{prefix}
	return &gn.Error{
		Code: errcode.CacheEntryNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("no cached VHDB matches '%s'", prefix),
	}
}
