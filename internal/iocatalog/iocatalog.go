// Package iocatalog saves, loads and validates catalog files together
// with their metadata sidecars.
package iocatalog

import (
	"encoding/csv"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gnames/gnfmt"
	"github.com/gnames/virotaxa/internal/iofs"
	"github.com/gnames/virotaxa/pkg/catalog"
	"github.com/gnames/virotaxa/pkg/vhdb"
)

// AccessionSep joins RefSeq accessions in a catalog file.
const AccessionSep = ";"

// MetadataPath returns the sidecar path of a catalog file.
func MetadataPath(path string) string {
	return iofs.SidecarPath(path)
}

// Save writes catalog entries as a tab-separated file and meta as its
// sidecar.
func Save(entries []catalog.Entry, path string, meta *catalog.Metadata) error {
	if err := iofs.TouchDir(filepath.Dir(path)); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return CatalogWriteError(path, err)
	}

	w := csv.NewWriter(f)
	w.Comma = '\t'
	err = w.Write(catalog.Columns)
	for _, v := range entries {
		if err != nil {
			break
		}
		err = w.Write([]string{
			strconv.Itoa(v.TaxID),
			v.Name,
			v.Family,
			v.Order,
			strings.Join(v.RefSeqIDs, AccessionSep),
			v.Evidence,
			v.PMID,
		})
	}
	if err == nil {
		w.Flush()
		err = w.Error()
	}
	if err != nil {
		f.Close()
		return CatalogWriteError(path, err)
	}
	if err = f.Close(); err != nil {
		return CatalogWriteError(path, err)
	}
	slog.Info("Catalog saved", "path", path, "taxa", len(entries))

	if meta == nil {
		return nil
	}
	return SaveMetadata(meta, MetadataPath(path))
}

// SaveMetadata writes catalog metadata as pretty JSON.
func SaveMetadata(meta *catalog.Metadata, path string) error {
	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(meta)
	if err != nil {
		return CatalogMetadataError(path, err)
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return CatalogWriteError(path, err)
	}
	return nil
}

// LoadMetadata reads the sidecar of a catalog file.
func LoadMetadata(path string) (*catalog.Metadata, error) {
	metaPath := MetadataPath(path)
	data, err := os.ReadFile(metaPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, iofs.FileNotFoundError(metaPath)
	}
	if err != nil {
		return nil, iofs.ReadFileError(metaPath, err)
	}

	var res catalog.Metadata
	if err = (gnfmt.GNjson{}).Decode(data, &res); err != nil {
		return nil, CatalogMetadataError(metaPath, err)
	}
	return &res, nil
}

// Load reads catalog entries. Columns are found by header names,
// missing columns leave fields empty.
func Load(path string) ([]catalog.Entry, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, iofs.FileNotFoundError(path)
	}
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	defer f.Close()

	res, err := read(f)
	if err != nil {
		return nil, CatalogReadError(path, err)
	}
	return res, nil
}

func read(r io.Reader) ([]catalog.Entry, error) {
	rdr := csv.NewReader(r)
	rdr.Comma = '\t'
	rdr.LazyQuotes = true
	rdr.FieldsPerRecord = -1

	header, err := rdr.Read()
	if err == io.EOF {
		return nil, errors.New("file is empty")
	}
	if err != nil {
		return nil, err
	}

	idx := make(map[string]int, len(header))
	for i, v := range header {
		idx[strings.TrimSpace(v)] = i
	}
	if _, ok := idx["taxid"]; !ok {
		return nil, errors.New("header has no 'taxid' column")
	}

	field := func(rec []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var res []catalog.Entry
	for {
		rec, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		taxID, err := strconv.Atoi(field(rec, "taxid"))
		if err != nil {
			line, _ := rdr.FieldPos(0)
			return nil, &RowError{Line: line, Err: err}
		}
		res = append(res, catalog.Entry{
			TaxID:     taxID,
			Name:      field(rec, "name"),
			Family:    field(rec, "family"),
			Order:     field(rec, "order"),
			RefSeqIDs: vhdb.ParseRefSeqIDs(field(rec, "refseq_ids")),
			Evidence:  field(rec, "evidence"),
			PMID:      field(rec, "pmid"),
		})
	}
	return res, nil
}
