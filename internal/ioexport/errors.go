package ioexport

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/virotaxa/pkg/errcode"
)

func ExportSQLiteError(path string, err error) error {
	msg := "Cannot export catalog to SQLite file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.ExportSQLiteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: sqlite export failed: %w", fn.Name(), err),
	}
}
