// Package importer glues acquisition, parsing, and the dedup gate together:
// one statement file or text blob in, an audit-logged batch of deduplicated
// transactions out.
package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jmhart/bankscan/internal/common"
	"github.com/jmhart/bankscan/internal/extractor"
	"github.com/jmhart/bankscan/internal/model"
	"github.com/jmhart/bankscan/internal/ofx"
	"github.com/jmhart/bankscan/internal/parser"
	"github.com/jmhart/bankscan/internal/service"
)

// Result reports one completed import run.
type Result struct {
	Statement  *model.ParsedStatement
	RunID      string
	Saved      int
	Duplicates int
}

// Importer coordinates statement acquisition, parsing, and persistence.
type Importer struct {
	store  service.Storage
	parser *parser.Parser
	ofx    *ofx.Parser
}

// New creates an Importer backed by the given storage.
func New(store service.Storage, opts parser.Options) *Importer {
	return &Importer{
		store:  store,
		parser: parser.New(opts),
		ofx:    ofx.NewParser(),
	}
}

// Preview parses a file without persisting anything.
func (i *Importer) Preview(path string) (*model.ParsedStatement, error) {
	return i.parseFile(path)
}

// PreviewText parses raw statement text without persisting anything.
func (i *Importer) PreviewText(text string) *model.ParsedStatement {
	return i.parser.Parse(text)
}

// ImportFile parses a statement file and persists its transactions through
// the dedup gate. Structural parse failure (no transactions found) returns
// common.ErrNoTransactions so callers can offer manual entry.
func (i *Importer) ImportFile(ctx context.Context, path string) (*Result, error) {
	stmt, err := i.parseFile(path)
	if err != nil {
		return nil, err
	}
	return i.save(ctx, filepath.Base(path), stmt)
}

// ImportText runs the pipeline over already-extracted text, identified by
// source for the audit log.
func (i *Importer) ImportText(ctx context.Context, source, text string) (*Result, error) {
	return i.save(ctx, source, i.parser.Parse(text))
}

func (i *Importer) parseFile(path string) (*model.ParsedStatement, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ofx", ".qfx":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		return i.ofx.Parse(f)

	case ".pdf":
		text, err := extractor.ExtractText(path)
		if err != nil {
			return nil, common.NewUserError(
				fmt.Sprintf("could not extract text from %s", filepath.Base(path)), err)
		}
		return i.parser.Parse(text), nil

	case ".txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		return i.parser.Parse(string(data)), nil

	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func (i *Importer) save(ctx context.Context, source string, stmt *model.ParsedStatement) (*Result, error) {
	result := &Result{
		Statement: stmt,
		RunID:     uuid.NewString(),
	}

	if len(stmt.Transactions) == 0 {
		return result, common.ErrNoTransactions
	}

	saved, err := i.store.SaveTransactions(ctx, stmt.Transactions)
	if err != nil {
		return nil, fmt.Errorf("failed to save transactions: %w", err)
	}
	result.Saved = saved.Saved
	result.Duplicates = saved.Duplicates

	if err := i.store.RecordImport(ctx, service.ImportRecord{
		ID:         result.RunID,
		SourceFile: source,
		Bank:       stmt.Metadata.BankName,
		Saved:      result.Saved,
		Duplicates: result.Duplicates,
	}); err != nil {
		// The transactions are already committed; a failed audit row is
		// logged, not returned as a failed import.
		common.LogError(err, "failed to record import run", common.Fields{
			"run_id": result.RunID,
			"source": source,
		})
	}

	slog.Info("imported statement",
		"source", source,
		"bank", stmt.Metadata.BankName,
		"saved", result.Saved,
		"duplicates", result.Duplicates,
		"skipped_segments", len(stmt.Skips))

	return result, nil
}

// IsNoTransactions reports whether an import failed only because nothing
// was extractable, the signal for a manual-entry fallback.
func IsNoTransactions(err error) bool {
	return errors.Is(err, common.ErrNoTransactions)
}
