package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jmhart/bankscan/internal/model"
	"github.com/jmhart/bankscan/internal/service"
)

const dateLayout = "2006-01-02"

// SaveTransactions inserts a batch of transactions, skipping exact
// duplicates via the UNIQUE hash column, and reports how many rows were
// newly saved versus skipped. Skipped duplicates are not an error: the
// caller surfaces them as "saved N, skipped M duplicates".
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) (*service.ImportResult, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateTransactions(transactions); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions (
			id, hash, date, month, description, amount, balance, bank, account_tail
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	result := &service.ImportResult{}
	for _, txn := range transactions {
		if txn.Hash == "" {
			txn.Hash = txn.GenerateHash()
		}
		if txn.ID == "" {
			txn.ID = uuid.NewString()
		}

		var balance any
		if txn.Balance != nil {
			balance = *txn.Balance
		}

		res, execErr := stmt.ExecContext(ctx,
			txn.ID,
			txn.Hash,
			txn.Date.Format(dateLayout),
			txn.Month(),
			txn.Description,
			txn.Amount,
			balance,
			txn.Bank,
			txn.AccountTail,
		)
		if execErr != nil {
			return nil, fmt.Errorf("failed to insert transaction %s: %w", txn.ID, execErr)
		}

		affected, raErr := res.RowsAffected()
		if raErr != nil {
			return nil, fmt.Errorf("failed to read insert result: %w", raErr)
		}
		if affected == 0 {
			result.Duplicates++
		} else {
			result.Saved++
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transactions: %w", err)
	}
	return result, nil
}

// GetTransactions retrieves stored transactions matching the filter, in
// date order.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	query := `SELECT id, hash, date, description, amount, balance, bank, account_tail
		FROM transactions`
	var conditions []string
	var args []any

	if filter.StartDate != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, filter.StartDate.Format(dateLayout))
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, filter.EndDate.Format(dateLayout))
	}
	if filter.Month != "" {
		conditions = append(conditions, "month = ?")
		args = append(args, filter.Month)
	}
	if filter.Bank != "" {
		conditions = append(conditions, "bank = ?")
		args = append(args, filter.Bank)
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date, created_at"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var transactions []model.Transaction
	for rows.Next() {
		var txn model.Transaction
		var dateStr string
		var balance sql.NullFloat64

		if err := rows.Scan(&txn.ID, &txn.Hash, &dateStr, &txn.Description,
			&txn.Amount, &balance, &txn.Bank, &txn.AccountTail); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		txn.Date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt date %q in row %s: %w", dateStr, txn.ID, err)
		}
		if balance.Valid {
			txn.Balance = &balance.Float64
		}
		transactions = append(transactions, txn)
	}
	return transactions, rows.Err()
}

// MonthlyStats aggregates stored transactions per month: row count, total
// inflow, and total outflow. Backed by the derived month column so the
// grouping stays consistent with the persisted dates.
func (s *SQLiteStorage) MonthlyStats(ctx context.Context) ([]service.MonthlySummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT month,
			COUNT(*),
			COALESCE(SUM(CASE WHEN amount > 0 THEN amount ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN amount < 0 THEN -amount ELSE 0 END), 0)
		FROM transactions
		GROUP BY month
		ORDER BY month
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []service.MonthlySummary
	for rows.Next() {
		var s service.MonthlySummary
		if err := rows.Scan(&s.Month, &s.Count, &s.Inflow, &s.Outflow); err != nil {
			return nil, fmt.Errorf("failed to scan monthly summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// RecordImport stores the audit row for one import run.
func (s *SQLiteStorage) RecordImport(ctx context.Context, record service.ImportRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(record.ID, "record.ID"); err != nil {
		return err
	}
	if err := validateString(record.SourceFile, "record.SourceFile"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO imports (id, source_file, bank, saved, duplicates)
		VALUES (?, ?, ?, ?, ?)
	`, record.ID, record.SourceFile, record.Bank, record.Saved, record.Duplicates)
	if err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}
	return nil
}
