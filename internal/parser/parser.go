// Package parser reconstructs structured transactions from raw bank
// statement text. The pipeline runs four sequential stages over one
// in-memory string: institution/metadata detection, date-anchored
// segmentation, per-segment keyword splitting, and normalization. Each
// stage is best-effort: a statement that is 90% parseable yields 90% of
// its transactions, with per-segment skip reasons carried in the result
// instead of aborting the parse.
package parser

import (
	"log/slog"
	"time"

	"github.com/jmhart/bankscan/internal/model"
)

// Options configure a Parser.
type Options struct {
	// StatementYear is the calendar year assigned to "DD Mon" date tokens,
	// which carry no year of their own. Zero means the current year at
	// parse time. Statements from a previous year must pass the year
	// explicitly or their transactions are silently mis-dated.
	StatementYear int

	// Strategy selects the segmentation strategy, "date" (default) or
	// "amount".
	Strategy string
}

// Parser runs the full extraction pipeline. Stateless with respect to prior
// calls; a single instance is safe to reuse across statements.
type Parser struct {
	segmenter Segmenter
	year      int
}

// New creates a Parser with the given options.
func New(opts Options) *Parser {
	return &Parser{
		segmenter: NewSegmenter(opts.Strategy),
		year:      opts.StatementYear,
	}
}

// Parse reconstructs a statement from raw extracted text. It always returns
// a statement: structural failures (missing activity section, no date
// anchors) surface as an empty transaction list, and per-segment rejections
// are recorded in Skips.
func (p *Parser) Parse(text string) *model.ParsedStatement {
	stmt := &model.ParsedStatement{
		Metadata: DetectMetadata(text),
	}

	candidates := p.segmenter.Segment(text)
	if len(candidates) == 0 {
		slog.Debug("no transaction candidates found",
			"bank", stmt.Metadata.BankName,
			"text_len", len(text))
		return stmt
	}

	year := p.year
	if year == 0 {
		year = time.Now().Year()
	}

	for _, candidate := range candidates {
		entries, skips := SplitCandidate(candidate)
		stmt.Skips = append(stmt.Skips, skips...)

		for _, entry := range entries {
			txn, err := NormalizeEntry(candidate.DateToken, entry, year)
			if err != nil {
				slog.Warn("rejected transaction candidate",
					"date_token", candidate.DateToken,
					"error", err)
				stmt.Skips = append(stmt.Skips, model.SkipReason{
					Snippet: snippet(entry.Description),
					Reason:  err.Error(),
				})
				continue
			}

			txn.Bank = stmt.Metadata.BankName
			txn.AccountTail = stmt.Metadata.AccountTail
			txn.Hash = txn.GenerateHash()
			stmt.Transactions = append(stmt.Transactions, txn)
		}
	}

	slog.Debug("parsed statement",
		"bank", stmt.Metadata.BankName,
		"transactions", len(stmt.Transactions),
		"skipped", len(stmt.Skips))

	return stmt
}
