package iogenome

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/virotaxa/pkg/errcode"
)

// GenomeBatchError reports a batch of accessions that could not be
// fetched.
func GenomeBatchError(batch []string, err error) error {
	var first, last string
	if len(batch) > 0 {
		first, last = batch[0], batch[len(batch)-1]
	}
	msg := "Cannot fetch %d sequences from <em>%s</em> to <em>%s</em>"
	vars := []any{len(batch), first, last}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GenomeBatchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: batch fetch failed: %w", fn.Name(), err),
	}
}

func GenomeWriteError(path string, err error) error {
	msg := "Cannot write genome file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.GenomeWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn.Name(), path, err),
	}
}

// EmailRequiredError is returned when no contact email is configured.
func EmailRequiredError() error {
	msg := `NCBI requires a contact email

<em>How to fix:</em>
  1. Use the <em>--email</em> flag
  2. Or set <em>VIROTAXA_NCBI_EMAIL</em>
  3. Or set email in the ncbi section of the config file`

	return &gn.Error{
		Code: errcode.InvalidParameterError,
		Msg:  msg,
		Err:  errors.New("NCBI email is empty"),
	}
}
