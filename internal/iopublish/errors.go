package iopublish

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/virotaxa/pkg/errcode"
)

// PublishError is returned when a catalog cannot be loaded into
// PostgreSQL. The transaction is rolled back.
func PublishError(catalogID string, err error) error {
	msg := `Cannot publish catalog <em>%s</em>

<em>Possible causes:</em>
  - Catalog tables are missing or outdated
  - Database user cannot write to the tables

<em>How to fix:</em>
  1. Check database logs for details
  2. Run the command again, it replaces the catalog as a whole`

	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBPublishError,
		Msg:  msg,
		Vars: []any{catalogID},
		Err: fmt.Errorf("from %s: cannot publish %s: %w",
			fn.Name(), catalogID, err),
	}
}

// NoCatalogIDError is returned when metadata of a catalog is missing.
func NoCatalogIDError() error {
	msg := `Catalog has no metadata with catalog_id

<em>How to fix:</em>
  Rebuild the catalog with <em>virotaxa catalog build</em>`

	return &gn.Error{
		Code: errcode.DBPublishError,
		Msg:  msg,
		Err:  errors.New("catalog_id is missing"),
	}
}
