package iocache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/virotaxa/internal/iotesting"
	"github.com/gnames/virotaxa/internal/iovhdb"
	"github.com/gnames/virotaxa/pkg/cache"
	"github.com/gnames/virotaxa/pkg/errcode"
	"github.com/gnames/virotaxa/pkg/vhdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) *iocache {
	t.Helper()
	c := New(filepath.Join(t.TempDir(), "vhdb")).(*iocache)
	ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time {
		ts = ts.Add(time.Minute)
		return ts
	}
	return c
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vhdb.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	require.Error(t, err)
	gnErr, ok := err.(*gn.Error)
	require.True(t, ok)
	return gnErr.Code
}

func TestAddGet(t *testing.T) {
	c := newCache(t)
	src := iotesting.WriteSampleVHDB(t, t.TempDir())

	ent, err := c.Add(src, nil)
	require.NoError(t, err)
	assert.Len(t, ent.Hash, 64)
	assert.Equal(t, cache.FileName(ent.Hash), ent.Filename)
	assert.Equal(t, int64(len(iotesting.SampleVHDB)), ent.FileSizeBytes)
	assert.Nil(t, ent.DownloadMeta)
	assert.FileExists(t, ent.Path)

	got, err := c.Get(ent.Hash[:8])
	require.NoError(t, err)
	assert.Equal(t, ent, got)

	got, err = c.Get(strings.ToUpper(ent.Hash))
	require.NoError(t, err)
	assert.Equal(t, ent.Path, got.Path)

	// adding the same content again keeps one entry
	_, err = c.Add(src, nil)
	require.NoError(t, err)
	list, err := c.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestAddWithSidecar(t *testing.T) {
	c := newCache(t)
	src := iotesting.WriteSampleVHDB(t, t.TempDir())
	meta := vhdb.DownloadMeta{URL: "https://example.org/vhdb.tsv", SHA256: "x"}
	require.NoError(t, iovhdb.SaveMetadata(&meta, iovhdb.MetadataPath(src)))

	ent, err := c.Add(src, nil)
	require.NoError(t, err)
	require.NotNil(t, ent.DownloadMeta)
	assert.Equal(t, meta.URL, ent.DownloadMeta.URL)

	got, err := c.Get(ent.Hash)
	require.NoError(t, err)
	require.NotNil(t, got.DownloadMeta)
	assert.Equal(t, meta.URL, got.DownloadMeta.URL)
}

func TestAddMissing(t *testing.T) {
	c := newCache(t)
	_, err := c.Add(filepath.Join(t.TempDir(), "none.tsv"), nil)
	assert.Equal(t, errcode.FileNotFoundError, errCode(t, err))
}

func TestList(t *testing.T) {
	c := newCache(t)
	e1, err := c.Add(writeFile(t, "one"), nil)
	require.NoError(t, err)
	e2, err := c.Add(writeFile(t, "two"), nil)
	require.NoError(t, err)
	e3, err := c.Add(writeFile(t, "three"), nil)
	require.NoError(t, err)

	require.NoError(t, os.Remove(e2.Path))

	list, err := c.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, e3.Hash, list[0].Hash)
	assert.Equal(t, e1.Hash, list[1].Hash)

	_, err = c.Get(e2.Hash)
	assert.Equal(t, errcode.CacheEntryNotFoundError, errCode(t, err))
}

func TestPrefixErrors(t *testing.T) {
	c := newCache(t)
	ent, err := c.Add(writeFile(t, "one"), nil)
	require.NoError(t, err)

	_, err = c.Get(ent.Hash[:7])
	assert.Equal(t, errcode.InvalidParameterError, errCode(t, err))

	_, err = c.Remove("abc")
	assert.Equal(t, errcode.InvalidParameterError, errCode(t, err))

	_, err = c.Get("00000000")
	if !strings.HasPrefix(ent.Hash, "00000000") {
		assert.Equal(t, errcode.CacheEntryNotFoundError, errCode(t, err))
	}
}

func TestAmbiguousPrefix(t *testing.T) {
	c := newCache(t)
	h1 := "abcdef01" + strings.Repeat("1", 56)
	h2 := "abcdef01" + strings.Repeat("2", 56)

	reg := &registry{
		Version: cache.RegistryVersion,
		Entries: map[string]cache.Entry{
			h1: {Filename: cache.FileName(h1), CachedAt: "2025-01-01T00:00:00Z"},
			h2: {Filename: cache.FileName(h2), CachedAt: "2025-01-02T00:00:00Z"},
		},
	}
	require.NoError(t, c.save(reg))
	for _, h := range []string{h1, h2} {
		path := filepath.Join(c.dir, cache.FileName(h))
		require.NoError(t, os.WriteFile(path, []byte(h), 0644))
	}

	_, err := c.Get("abcdef01")
	assert.Equal(t, errcode.CacheAmbiguousPrefixError, errCode(t, err))
	_, err = c.Remove("abcdef01")
	assert.Equal(t, errcode.CacheAmbiguousPrefixError, errCode(t, err))

	ent, err := c.Get("abcdef012")
	require.NoError(t, err)
	assert.Equal(t, h2, ent.Hash)
}

func TestRemove(t *testing.T) {
	c := newCache(t)
	ent, err := c.Add(writeFile(t, "one"), nil)
	require.NoError(t, err)

	removed, err := c.Remove(ent.Hash[:10])
	require.NoError(t, err)
	assert.Equal(t, ent.Hash, removed.Hash)
	assert.NoFileExists(t, ent.Path)

	list, err := c.List()
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = c.Remove(ent.Hash)
	assert.Equal(t, errcode.CacheEntryNotFoundError, errCode(t, err))
}

func TestBrokenRegistry(t *testing.T) {
	c := newCache(t)
	require.NoError(t, os.MkdirAll(c.dir, 0755))
	require.NoError(t, os.WriteFile(c.path(), []byte("{broken"), 0644))

	_, err := c.List()
	assert.Equal(t, errcode.CacheRegistryError, errCode(t, err))
}
