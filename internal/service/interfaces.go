// Package service defines the contracts between the application layers.
package service

import (
	"context"
	"time"

	"github.com/jmhart/bankscan/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Month     string // YYYY-MM, matches the derived month column
	Bank      string
	Limit     int
	Offset    int
}

// ImportResult reports the outcome of the dedup gate for one batch:
// how many transactions were newly saved and how many were skipped as
// exact (date, description, amount) duplicates.
type ImportResult struct {
	Saved      int
	Duplicates int
}

// ImportRecord is the audit row kept for each import run.
type ImportRecord struct {
	ID         string
	SourceFile string
	Bank       string
	Saved      int
	Duplicates int
}

// MonthlySummary aggregates one month of stored transactions.
type MonthlySummary struct {
	Month   string
	Count   int
	Inflow  float64
	Outflow float64
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	// SaveTransactions inserts a batch, skipping exact duplicates, and
	// reports saved/duplicate counts.
	SaveTransactions(ctx context.Context, transactions []model.Transaction) (*ImportResult, error)
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	MonthlyStats(ctx context.Context) ([]MonthlySummary, error)
	RecordImport(ctx context.Context, record ImportRecord) error

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}
