// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs batch PDF-to-text conversion over a papers
// directory, one document at a time, with optional history-based skipping.
package convert

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pdf2text/internal/history"
	"github.com/pdiddy/pdf2text/pkg/client"
	"github.com/pdiddy/pdf2text/pkg/types"
)

const (
	// textDir is the subdirectory under the papers base for text output.
	textDir = "text"
	// rawDir is the subdirectory under the papers base for source PDFs.
	rawDir = "raw"
)

// Converter extracts the text of one PDF into textPath and returns the
// number of bytes written.
type Converter interface {
	Convert(ctx context.Context, pdfPath, textPath string, opts types.ConvertOptions) (int64, error)
}

// Ledger records conversions and answers whether identical content was
// already converted. *history.Store implements it.
type Ledger interface {
	LastSuccess(ctx context.Context, sha256, options string) (*history.Entry, error)
	Record(ctx context.Context, e history.Entry) (history.Entry, error)
}

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of documents processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any documents failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Batch converts documents under PapersDir/raw into PapersDir/text.
type Batch struct {
	Converter Converter
	Options   types.ConvertOptions
	PapersDir string

	// Sidecar writes <id>.yaml metadata next to each text file.
	Sidecar bool

	// Ledger is optional. When set every attempt is recorded.
	Ledger Ledger

	// Incremental reconverts a document whose output exists only when its
	// content or options changed since the last successful conversion.
	// Without it an existing output is always skipped.
	Incremental bool

	// Out receives one status line per document and a summary.
	Out io.Writer
}

// ConvertDocument converts a single PDF and returns the status of the
// conversion.
func (b *Batch) ConvertDocument(ctx context.Context, doc types.Document) types.ConversionStatus {
	outDir := filepath.Join(b.PapersDir, textDir)
	textPath := doc.TextPath
	if textPath == "" {
		textPath = filepath.Join(outDir, doc.ID+".txt")
	}

	sum, err := fileSHA256(doc.PDFPath)
	if err != nil {
		fmt.Fprintf(b.Out, "failed:  %s (%v)\n", doc.ID, err)
		b.record(ctx, doc, "", types.ConversionFailed, 0, err)
		return types.ConversionFailed
	}

	if _, statErr := os.Stat(textPath); statErr == nil {
		if !b.Incremental || b.Ledger == nil {
			fmt.Fprintf(b.Out, "skipped: %s (already exists)\n", doc.ID)
			return types.ConversionSkipped
		}
		prev, err := b.Ledger.LastSuccess(ctx, sum, b.Options.Fingerprint())
		if err != nil {
			fmt.Fprintf(b.Out, "failed:  %s (%v)\n", doc.ID, err)
			return types.ConversionFailed
		}
		if prev != nil {
			fmt.Fprintf(b.Out, "skipped: %s (unchanged since %s)\n", doc.ID, prev.ConvertedAt.Format(time.RFC3339))
			return types.ConversionSkipped
		}
	}

	if err := os.MkdirAll(filepath.Dir(textPath), 0o755); err != nil {
		fmt.Fprintf(b.Out, "failed:  %s (%v)\n", doc.ID, err)
		b.record(ctx, doc, sum, types.ConversionFailed, 0, err)
		return types.ConversionFailed
	}

	n, err := b.Converter.Convert(ctx, doc.PDFPath, textPath, b.Options)
	if err != nil {
		fmt.Fprintf(b.Out, "failed:  %s (%v)\n", doc.ID, err)
		b.record(ctx, doc, sum, types.ConversionFailed, 0, err)
		return types.ConversionFailed
	}

	if b.Sidecar {
		if err := writeSidecar(doc, textPath, sum, n, b.Options); err != nil {
			// A failed document leaves no text output behind.
			if rmErr := os.Remove(textPath); rmErr != nil && !os.IsNotExist(rmErr) {
				fmt.Fprintf(b.Out, "warning: removing %s: %v\n", textPath, rmErr)
			}
			fmt.Fprintf(b.Out, "failed:  %s (sidecar: %v)\n", doc.ID, err)
			b.record(ctx, doc, sum, types.ConversionFailed, n, err)
			return types.ConversionFailed
		}
	}

	b.record(ctx, doc, sum, types.ConversionDone, n, nil)
	fmt.Fprintf(b.Out, "converted: %s (%d bytes)\n", doc.ID, n)
	return types.ConversionDone
}

// Run processes docs in order, printing per-document status and returning
// a summary. It stops early when ctx is cancelled.
func (b *Batch) Run(ctx context.Context, docs []types.Document) BatchResult {
	var result BatchResult
	for _, d := range docs {
		if ctx.Err() != nil {
			break
		}
		switch b.ConvertDocument(ctx, d) {
		case types.ConversionDone:
			result.Converted++
		case types.ConversionSkipped:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(b.Out, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

// RunPaths builds Document records from PDF paths and delegates to Run.
// Each ID is derived from the file name.
func (b *Batch) RunPaths(ctx context.Context, pdfPaths []string) BatchResult {
	docs := make([]types.Document, len(pdfPaths))
	for i, p := range pdfPaths {
		docs[i] = types.Document{
			ID:      strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)),
			PDFPath: p,
		}
	}
	return b.Run(ctx, docs)
}

// DiscoverPDFs lists the .pdf files in papersDir/raw in name order.
func DiscoverPDFs(papersDir string) ([]string, error) {
	dir := filepath.Join(papersDir, rawDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

func (b *Batch) record(ctx context.Context, doc types.Document, sum string, status types.ConversionStatus, n int64, convErr error) {
	if b.Ledger == nil {
		return
	}
	e := history.Entry{
		DocumentID: doc.ID,
		SourcePath: doc.PDFPath,
		SHA256:     sum,
		Options:    b.Options.Fingerprint(),
		Status:     status,
		Bytes:      n,
	}
	if convErr != nil {
		e.ErrorKind = string(client.KindOf(convErr))
		e.Error = convErr.Error()
	}
	if _, err := b.Ledger.Record(ctx, e); err != nil {
		fmt.Fprintf(b.Out, "warning: history not recorded for %s: %v\n", doc.ID, err)
	}
}

// fileSHA256 hashes the file at path without loading it whole.
func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// writeSidecar writes <textPath without ext>.yaml describing the conversion.
func writeSidecar(doc types.Document, textPath, sum string, n int64, opts types.ConvertOptions) error {
	meta := types.Sidecar{
		DocumentID:  doc.ID,
		SourcePDF:   doc.PDFPath,
		SHA256:      sum,
		Options:     opts.Config(),
		Bytes:       n,
		ConvertedAt: time.Now().UTC(),
	}
	data, err := yaml.Marshal(&meta)
	if err != nil {
		return fmt.Errorf("marshaling sidecar: %w", err)
	}
	path := strings.TrimSuffix(textPath, filepath.Ext(textPath)) + ".yaml"
	return os.WriteFile(path, data, 0o644)
}
