package iocache

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/virotaxa/pkg/errcode"
)

func RegistryError(path string, err error) error {
	msg := `Cannot update VHDB cache

<em>File:</em> %s

<em>How to fix:</em>
  Check permissions of the cache directory or remove a broken
  registry.json to start a new cache.`
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CacheRegistryError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cache registry failure: %w", fn.Name(), err),
	}
}
