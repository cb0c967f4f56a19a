// Package iogenome downloads genome sequences of catalog taxa and
// writes them as FASTA files, one file per taxon.
package iogenome

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gnfmt"
	"github.com/gnames/virotaxa/internal/iocatalog"
	"github.com/gnames/virotaxa/internal/iofs"
	"github.com/gnames/virotaxa/pkg/catalog"
	"github.com/gnames/virotaxa/pkg/genome"
	"github.com/google/uuid"
)

// FetchOptions set up FetchGenomes.
type FetchOptions struct {
	// CatalogPath is a catalog file with RefSeq accessions.
	CatalogPath string

	// OutputDir receives FASTA files.
	OutputDir string

	// BatchSize is the number of accessions per request.
	BatchSize int

	// Delay is a pause between requests.
	Delay time.Duration

	// WithProgress shows a progress bar on stderr.
	WithProgress bool
}

// FetchGenomes downloads sequences of all accessions of a catalog.
// Batches are requested one after another. A failed batch marks all
// its accessions as failed and the fetch goes on. Accessions shared by
// several taxa are written to each of their files.
func FetchGenomes(
	ctx context.Context,
	f genome.Fetcher,
	opts FetchOptions,
) (*genome.FetchResult, error) {
	entries, err := iocatalog.Load(opts.CatalogPath)
	if err != nil {
		return nil, err
	}
	if err = iofs.TouchDir(opts.OutputDir); err != nil {
		return nil, err
	}

	ids, taxa := accessions(entries)
	res := &genome.FetchResult{
		RunID:          uuid.NewString(),
		TotalTaxa:      len(entries),
		TotalSequences: len(ids),
		OutputDir:      opts.OutputDir,
		Files:          make(map[string]genome.FileInfo),
	}
	slog.Info("Fetching genomes",
		"run_id", res.RunID, "taxa", res.TotalTaxa, "accessions", len(ids))

	batches := genome.Batches(ids, opts.BatchSize)
	var bar *pb.ProgressBar
	if opts.WithProgress && len(batches) > 0 {
		bar = pb.Full.Start(len(ids))
		bar.Set("prefix", "Fetching genomes: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	seqs := make(map[int][]genome.Record)
	for i, batch := range batches {
		if i > 0 {
			if err = sleep(ctx, opts.Delay); err != nil {
				return nil, err
			}
		}
		slog.Info("Fetching batch",
			"batch", i+1, "batches", len(batches), "size", len(batch))

		recs, err := fetchBatch(ctx, f, batch)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			slog.Error("Batch fetch failed", "batch", i+1, "error", err)
			res.Failed = append(res.Failed, batch...)
			if bar != nil {
				bar.Add(len(batch))
			}
			continue
		}

		found := make(map[string]genome.Record, len(recs))
		for _, v := range recs {
			found[v.Accession()] = v
		}
		for _, id := range batch {
			rec, ok := found[genome.BaseAccession(id)]
			if !ok {
				slog.Warn("Sequence not found", "accession", id)
				res.Failed = append(res.Failed, id)
				continue
			}
			delete(found, genome.BaseAccession(id))
			res.Successful++
			for _, taxID := range taxa[id] {
				seqs[taxID] = append(seqs[taxID], rec)
			}
		}
		for _, v := range found {
			slog.Warn("Sequence does not match catalog", "id", v.ID)
		}
		if bar != nil {
			bar.Add(len(batch))
		}
	}

	for _, v := range entries {
		recs, ok := seqs[v.TaxID]
		if !ok {
			continue
		}
		key := strconv.Itoa(v.TaxID)
		if _, done := res.Files[key]; done {
			continue
		}
		info, err := writeFASTA(opts.OutputDir, key, recs)
		if err != nil {
			return nil, err
		}
		res.Files[key] = info
	}

	slog.Info("Fetch complete",
		"successful", res.Successful,
		"total", res.TotalSequences,
		"failed", len(res.Failed),
	)
	return res, nil
}

// accessions returns unique accessions in catalog order together with
// taxa that list each of them.
func accessions(entries []catalog.Entry) ([]string, map[string][]int) {
	var ids []string
	taxa := make(map[string][]int)
	for _, v := range entries {
		for _, id := range v.RefSeqIDs {
			id = strings.TrimSpace(id)
			if id == "" {
				continue
			}
			if _, ok := taxa[id]; !ok {
				ids = append(ids, id)
			}
			taxa[id] = append(taxa[id], v.TaxID)
		}
	}
	return ids, taxa
}

func fetchBatch(
	ctx context.Context,
	f genome.Fetcher,
	batch []string,
) ([]genome.Record, error) {
	fasta, err := f.FetchFASTA(ctx, batch)
	if err != nil {
		return nil, GenomeBatchError(batch, err)
	}
	recs, err := genome.ParseFASTA(strings.NewReader(fasta))
	if err != nil {
		return nil, GenomeBatchError(batch, err)
	}
	return recs, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func writeFASTA(
	dir, taxID string,
	recs []genome.Record,
) (genome.FileInfo, error) {
	name := taxID + ".fasta"
	path := filepath.Join(dir, name)

	var sb strings.Builder
	var bases int
	for _, v := range recs {
		sb.WriteString(v.String())
		bases += len(v.Sequence)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return genome.FileInfo{}, GenomeWriteError(path, err)
	}
	slog.Info("FASTA written", "path", path,
		"sequences", len(recs), "bases", bases)

	return genome.FileInfo{File: name, Sequences: len(recs), Bases: bases}, nil
}

// SaveMetadata writes fetch metadata to the output directory and
// returns its path.
func SaveMetadata(meta *genome.Metadata, dir string) (string, error) {
	path := filepath.Join(dir, genome.MetadataFile)
	data, err := (gnfmt.GNjson{Pretty: true}).Encode(meta)
	if err != nil {
		return "", GenomeWriteError(path, err)
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return "", GenomeWriteError(path, err)
	}
	return path, nil
}
