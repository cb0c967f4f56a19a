// Package iovhdb reads and downloads the Virus-Host Database table.
package iovhdb

import (
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gnfmt"
	"github.com/gnames/virotaxa/internal/iofs"
	"github.com/gnames/virotaxa/pkg/vhdb"
)

// Description goes to the "_description" field of download metadata.
const Description = "Virus-Host Database download metadata for reproducibility"

// Load reads relationships from a VHDB tab-separated file. The first
// line is a header. Short rows are padded with empty fields. Rows
// with a non-numeric virus ID are skipped.
func Load(path string) ([]vhdb.Relationship, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, iofs.FileNotFoundError(path)
	}
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	defer f.Close()

	rows, err := read(f, path)
	if err != nil {
		return nil, err
	}
	slog.Info("VHDB loaded", "path", path, "relationships", len(rows))
	return rows, nil
}

func read(r io.Reader, path string) ([]vhdb.Relationship, error) {
	rdr := csv.NewReader(r)
	rdr.Comma = '\t'
	rdr.LazyQuotes = true
	rdr.FieldsPerRecord = -1

	// header
	if _, err := rdr.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, VHDBParseError(path, 1, err)
	}

	var res []vhdb.Relationship
	var skipped int
	for {
		rec, err := rdr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var line int
			var pErr *csv.ParseError
			if errors.As(err, &pErr) {
				line = pErr.Line
			}
			return nil, VHDBParseError(path, line, err)
		}
		row, ok := toRelationship(rec)
		if !ok {
			skipped++
			continue
		}
		res = append(res, row)
	}

	if skipped > 0 {
		slog.Warn("Skipped rows with non-numeric virus ID",
			"path", path, "rows", skipped)
	}
	return res, nil
}

func toRelationship(rec []string) (vhdb.Relationship, bool) {
	var res vhdb.Relationship
	if len(rec) < len(vhdb.Columns) {
		rec = append(rec, make([]string, len(vhdb.Columns)-len(rec))...)
	}
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}

	id, err := strconv.Atoi(rec[0])
	if err != nil {
		return res, false
	}

	res = vhdb.Relationship{
		VirusTaxID:     id,
		VirusName:      rec[1],
		VirusLineage:   rec[2],
		RefSeqID:       rec[3],
		KEGGGenome:     rec[4],
		KEGGDisease:    rec[5],
		Disease:        rec[6],
		HostTaxID:      parseHostID(rec[7]),
		HostName:       rec[8],
		HostLineage:    rec[9],
		PMID:           rec[10],
		Evidence:       rec[11],
		SampleType:     rec[12],
		SourceOrganism: rec[13],
	}
	return res, true
}

// parseHostID returns 0 for empty or non-numeric IDs. Some tables keep
// numeric IDs as floats, for example "9606.0".
func parseHostID(s string) int {
	if s == "" {
		return 0
	}
	if id, err := strconv.Atoi(s); err == nil && id > 0 {
		return id
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 || f != math.Trunc(f) {
		return 0
	}
	return int(f)
}

// DownloadOptions sets up Download.
type DownloadOptions struct {
	// URL of the VHDB table.
	URL string

	// Output is the path of the downloaded file.
	Output string

	// Timeout of the whole request.
	Timeout time.Duration
}

// Download saves the VHDB table to opts.Output and writes its metadata
// sidecar. Partial downloads do not overwrite an existing file.
func Download(
	ctx context.Context,
	opts DownloadOptions,
) (*vhdb.DownloadMeta, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	if err := iofs.TouchDir(filepath.Dir(opts.Output)); err != nil {
		return nil, err
	}

	slog.Info("Downloading VHDB", "url", opts.URL)
	ts := time.Now().UTC().Format("2006-01-02T15:04:05Z")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, opts.URL, nil)
	if err != nil {
		return nil, DownloadError(opts.URL, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, DownloadError(opts.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, DownloadError(opts.URL, &StatusError{Code: resp.StatusCode})
	}

	tmp, err := os.CreateTemp(filepath.Dir(opts.Output), ".vhdb-*.part")
	if err != nil {
		return nil, iofs.CopyFileError(opts.Output, err)
	}
	defer os.Remove(tmp.Name())

	h := sha256.New()
	size, err := io.Copy(io.MultiWriter(tmp, h), resp.Body)
	if err != nil {
		tmp.Close()
		return nil, DownloadError(opts.URL, err)
	}
	if err = tmp.Close(); err != nil {
		return nil, iofs.CopyFileError(opts.Output, err)
	}
	if err = os.Rename(tmp.Name(), opts.Output); err != nil {
		return nil, iofs.CopyFileError(opts.Output, err)
	}

	meta := vhdb.DownloadMeta{
		Description:       Description,
		URL:               opts.URL,
		DownloadTimestamp: ts,
		FilePath:          opts.Output,
		FileSizeBytes:     size,
		FileSizeMB:        math.Round(float64(size)/1024/1024*100) / 100,
		SHA256:            hex.EncodeToString(h.Sum(nil)),
		HTTPHeaders: vhdb.HTTPHeaders{
			LastModified:  resp.Header.Get("Last-Modified"),
			ETag:          resp.Header.Get("ETag"),
			ContentLength: resp.Header.Get("Content-Length"),
			Date:          resp.Header.Get("Date"),
		},
	}
	slog.Info("VHDB downloaded",
		"path", opts.Output, "bytes", size, "sha256", meta.SHA256)

	if err = SaveMetadata(&meta, MetadataPath(opts.Output)); err != nil {
		return nil, err
	}
	return &meta, nil
}

// MetadataPath returns the sidecar path of a VHDB file.
func MetadataPath(path string) string {
	return iofs.SidecarPath(path)
}

// SaveMetadata writes download metadata as pretty JSON.
func SaveMetadata(meta *vhdb.DownloadMeta, path string) error {
	enc := gnfmt.GNjson{Pretty: true}
	data, err := enc.Encode(meta)
	if err != nil {
		return iofs.CopyFileError(path, err)
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return iofs.CopyFileError(path, err)
	}
	return nil
}

// LoadMetadata reads the download sidecar of a VHDB file. It returns
// nil without error when the sidecar does not exist.
func LoadMetadata(path string) (*vhdb.DownloadMeta, error) {
	metaPath := MetadataPath(path)
	data, err := os.ReadFile(metaPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, iofs.ReadFileError(metaPath, err)
	}

	var res vhdb.DownloadMeta
	enc := gnfmt.GNjson{}
	if err = enc.Decode(data, &res); err != nil {
		return nil, iofs.ReadFileError(metaPath, err)
	}
	return &res, nil
}
