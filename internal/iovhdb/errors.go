package iovhdb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/virotaxa/pkg/errcode"
)

// StatusError is returned when a server answers with a non-OK status.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d", e.Code)
}

// DownloadError reports a failed download of the VHDB table.
func DownloadError(url string, err error) error {
	msg := `Cannot download Virus-Host Database

<em>URL:</em> %s

<em>Possible causes:</em>
  - No network connection
  - Server is down or the URL changed
  - Download took longer than the timeout

<em>How to fix:</em>
  1. Check the URL in a browser
  2. Increase <em>vhdb.timeout</em> in config.yaml
  3. Try again later`

	vars := []any{url}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DownloadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: download of %s failed: %w", fn.Name(), url, err),
	}
}

// VHDBParseError reports a malformed VHDB table.
func VHDBParseError(path string, line int, err error) error {
	msg := "Cannot parse <em>%s</em> at line %d"
	vars := []any{path, line}
	return &gn.Error{
		Code: errcode.VHDBParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot parse %s line %d: %w", path, line, err),
	}
}
