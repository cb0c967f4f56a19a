package cache_test

import (
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/virotaxa/pkg/cache"
	"github.com/gnames/virotaxa/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	hash := "7a3f2b1c9d8e7f6a5b4c3d2e1f0a9b8c7d6e5f4a3b2c1d0e9f8a7b6c5d4e3f2a"
	assert.Equal(t, "7a3f2b1c9d8e", cache.ShortHash(hash))
	assert.Equal(t, "vhdb_7a3f2b1c9d8e.tsv", cache.FileName(hash))
	assert.Equal(t, "abc", cache.ShortHash("abc"))
	assert.Equal(t, "7a3f2b1c9d8e", cache.Entry{Hash: hash}.ShortHash())
}

func TestErrors(t *testing.T) {
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
	}{
		{"short", cache.PrefixTooShortError("abc"), errcode.InvalidParameterError},
		{"ambiguous",
			cache.AmbiguousPrefixError("abcdabcd",
				[]string{"abcdabcd1111111111", "abcdabcd2222222222"}),
			errcode.CacheAmbiguousPrefixError},
		{"not found", cache.EntryNotFoundError("abcdabcd"),
			errcode.CacheEntryNotFoundError},
	}
	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			gnErr, ok := v.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, v.code, gnErr.Code)
			assert.Contains(t, gnErr.Msg, "<em>%s</em>")
		})
	}

	gnErr := cache.AmbiguousPrefixError("abcdabcd",
		[]string{"abcdabcd1111111111", "abcdabcd2222222222"}).(*gn.Error)
	assert.Contains(t, gnErr.Err.Error(), "abcdabcd1111, abcdabcd2222")
}
