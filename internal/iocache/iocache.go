// Package iocache implements the VHDB cache registry as a JSON document
// in the cache directory.
package iocache

import (
	"cmp"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/virotaxa/internal/iofs"
	"github.com/gnames/virotaxa/internal/iovhdb"
	"github.com/gnames/virotaxa/pkg/cache"
	"github.com/gnames/virotaxa/pkg/vhdb"
)

// RegistryFile is the name of the registry document.
const RegistryFile = "registry.json"

type registry struct {
	Version string                 `json:"_version"`
	Entries map[string]cache.Entry `json:"entries"`
}

type iocache struct {
	dir string
	now func() time.Time
}

// New creates a registry that keeps files in dir.
func New(dir string) cache.Registry {
	return &iocache{dir: dir, now: time.Now}
}

func (c *iocache) path() string {
	return filepath.Join(c.dir, RegistryFile)
}

func (c *iocache) load() (*registry, error) {
	res := registry{Version: cache.RegistryVersion}
	data, err := os.ReadFile(c.path())
	if errors.Is(err, os.ErrNotExist) {
		res.Entries = make(map[string]cache.Entry)
		return &res, nil
	}
	if err != nil {
		return nil, RegistryError(c.path(), err)
	}

	if err = (gnfmt.GNjson{}).Decode(data, &res); err != nil {
		return nil, RegistryError(c.path(), err)
	}
	if res.Entries == nil {
		res.Entries = make(map[string]cache.Entry)
	}
	for k, v := range res.Entries {
		v.Hash = k
		v.Path = filepath.Join(c.dir, v.Filename)
		res.Entries[k] = v
	}
	return &res, nil
}

func (c *iocache) save(reg *registry) error {
	if err := iofs.TouchDir(c.dir); err != nil {
		return err
	}
	data, err := (gnfmt.GNjson{Pretty: true}).Encode(reg)
	if err != nil {
		return RegistryError(c.path(), err)
	}
	if err = os.WriteFile(c.path(), data, 0644); err != nil {
		return RegistryError(c.path(), err)
	}
	return nil
}

func (c *iocache) Add(path string, meta *vhdb.DownloadMeta) (cache.Entry, error) {
	var res cache.Entry
	if !iofs.Exists(path) {
		return res, iofs.FileNotFoundError(path)
	}

	hash, err := iofs.FileSHA256(path)
	if err != nil {
		return res, err
	}

	name := cache.FileName(hash)
	cached := filepath.Join(c.dir, name)
	if !iofs.Exists(cached) {
		if err = iofs.CopyFile(path, cached); err != nil {
			return res, err
		}
		slog.Info("VHDB cached", "file", name)
	}

	if meta == nil {
		if meta, err = iovhdb.LoadMetadata(path); err != nil {
			return res, err
		}
	}

	info, err := os.Stat(cached)
	if err != nil {
		return res, iofs.ReadFileError(cached, err)
	}

	reg, err := c.load()
	if err != nil {
		return res, err
	}

	res = cache.Entry{
		Hash:          hash,
		Path:          cached,
		Filename:      name,
		CachedAt:      c.now().UTC().Format("2006-01-02T15:04:05Z"),
		FileSizeBytes: info.Size(),
		DownloadMeta:  meta,
	}
	reg.Entries[hash] = res

	if err = c.save(reg); err != nil {
		return cache.Entry{}, err
	}
	return res, nil
}

func (c *iocache) List() ([]cache.Entry, error) {
	reg, err := c.load()
	if err != nil {
		return nil, err
	}

	res := make([]cache.Entry, 0, len(reg.Entries))
	for _, v := range reg.Entries {
		if iofs.Exists(v.Path) {
			res = append(res, v)
		}
	}

	slices.SortFunc(res, func(a, b cache.Entry) int {
		return cmp.Or(
			cmp.Compare(b.CachedAt, a.CachedAt),
			cmp.Compare(a.Hash, b.Hash),
		)
	})
	return res, nil
}

func (c *iocache) Get(prefix string) (cache.Entry, error) {
	var res cache.Entry
	reg, err := c.load()
	if err != nil {
		return res, err
	}

	matches, err := match(reg, prefix, true)
	if err != nil {
		return res, err
	}
	return reg.Entries[matches[0]], nil
}

func (c *iocache) Remove(prefix string) (cache.Entry, error) {
	var res cache.Entry
	reg, err := c.load()
	if err != nil {
		return res, err
	}

	matches, err := match(reg, prefix, false)
	if err != nil {
		return res, err
	}

	res = reg.Entries[matches[0]]
	err = os.Remove(res.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return res, RegistryError(res.Path, err)
	}

	delete(reg.Entries, res.Hash)
	if err = c.save(reg); err != nil {
		return res, err
	}
	slog.Info("Cached VHDB removed", "hash", res.ShortHash())
	return res, nil
}

// match returns exactly one hash starting with prefix. If existing is
// true, entries without a file are ignored.
func match(reg *registry, prefix string, existing bool) ([]string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if len(prefix) < cache.MinPrefixLen {
		return nil, cache.PrefixTooShortError(prefix)
	}

	var res []string
	for k, v := range reg.Entries {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		if existing && !iofs.Exists(v.Path) {
			continue
		}
		res = append(res, k)
	}
	slices.Sort(res)

	switch len(res) {
	case 0:
		return nil, cache.EntryNotFoundError(prefix)
	case 1:
		return res, nil
	default:
		return nil, cache.AmbiguousPrefixError(prefix, res)
	}
}
