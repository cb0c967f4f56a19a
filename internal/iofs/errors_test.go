package iofs

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/virotaxa/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	origErr := errors.New("permission denied")

	tests := []struct {
		name    string
		err     error
		code    gn.ErrorCode
		path    string
		errText string
	}{
		{"create dir", CreateDirError("/test/dir", origErr),
			errcode.CreateDirError, "/test/dir", "cannot create"},
		{"copy file", CopyFileError("/test/config.yaml", origErr),
			errcode.CopyFileError, "/test/config.yaml", "cannot copy"},
		{"read file", ReadFileError("/test/data.tsv", origErr),
			errcode.ReadFileError, "/test/data.tsv", "cannot read"},
	}

	for _, v := range tests {
		t.Run(v.name, func(t *testing.T) {
			gnErr, ok := v.err.(*gn.Error)
			require.True(t, ok, "error should be *gn.Error")
			assert.Equal(t, v.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "%s")
			require.Len(t, gnErr.Vars, 1)
			assert.Equal(t, v.path, gnErr.Vars[0])

			assert.ErrorIs(t, gnErr.Err, origErr)
			assert.Contains(t, gnErr.Err.Error(), "from")
			assert.Contains(t, gnErr.Err.Error(), v.errText)
		})
	}
}

func TestFileNotFoundError(t *testing.T) {
	err := FileNotFoundError("/no/such.tsv")
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.FileNotFoundError, gnErr.Code)
	assert.Equal(t, []any{"/no/such.tsv"}, gnErr.Vars)
	assert.Contains(t, gnErr.Err.Error(), "/no/such.tsv")
}
