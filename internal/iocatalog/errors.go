package iocatalog

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/virotaxa/pkg/errcode"
)

// RowError reports a catalog row that cannot be parsed.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

func CatalogReadError(path string, err error) error {
	msg := "Cannot parse catalog <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot parse %s: %w", fn.Name(), path, err),
	}
}

func CatalogWriteError(path string, err error) error {
	msg := "Cannot write catalog to <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn.Name(), path, err),
	}
}

func CatalogMetadataError(path string, err error) error {
	msg := `Invalid catalog metadata

<em>Metadata file:</em> %s

<em>How to fix:</em>
  Rebuild the catalog with <em>virotaxa catalog build</em>`

	vars := []any{path}
	return &gn.Error{
		Code: errcode.CatalogMetadataError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("invalid metadata %s: %w", path, err),
	}
}

func CatalogEmptyError(path string) error {
	msg := "Catalog <em>%s</em> has no entries"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.CatalogEmptyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("catalog %s is empty", path),
	}
}

// CatalogInvalidError is returned when validation finds errors.
func CatalogInvalidError(path string, errNum int) error {
	msg := "Validation of <em>%s</em> FAILED with %d error(s)"
	vars := []any{path, errNum}
	return &gn.Error{
		Code: errcode.CatalogInvalidError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("catalog %s is invalid: %d errors", path, errNum),
	}
}
