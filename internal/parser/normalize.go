package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmhart/bankscan/internal/model"
)

// NormalizeEntry turns a raw entry plus its date token into a Transaction,
// or reports why the entry must be rejected. Rejection never aborts the
// surrounding parse; the caller records it and moves on.
func NormalizeEntry(dateToken string, entry RawEntry, year int) (model.Transaction, error) {
	date, err := parseShortDate(dateToken, year)
	if err != nil {
		return model.Transaction{}, err
	}

	amount, err := parseAmount(entry.Amount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount %q: %w", entry.Amount, err)
	}

	txn := model.Transaction{
		Date:        date,
		Description: entry.Description,
		Amount:      applyPolarity(amount, entry.Description),
	}

	if entry.Balance != "" {
		balance, balErr := parseAmount(entry.Balance)
		if balErr != nil {
			return model.Transaction{}, fmt.Errorf("invalid balance %q: %w", entry.Balance, balErr)
		}
		txn.Balance = &balance
	}

	return txn, nil
}

// applyPolarity forces the amount negative when the description matches any
// debit keyword, positive otherwise. A pure function of the lowercased
// description against the fixed keyword table.
func applyPolarity(amount float64, description string) float64 {
	if amount < 0 {
		amount = -amount
	}
	lower := strings.ToLower(description)
	for _, kw := range debitKeywords {
		if strings.Contains(lower, kw) {
			return -amount
		}
	}
	return amount
}

// parseShortDate parses a "DD Mon" token into a calendar date in the given
// year. The token must split into exactly a 1-2 digit day and a 3-letter
// month abbreviation; anything else is a rejection.
func parseShortDate(token string, year int) (time.Time, error) {
	parts := strings.Fields(token)
	if len(parts) != 2 {
		return time.Time{}, fmt.Errorf("malformed date token %q", token)
	}

	day, err := strconv.Atoi(parts[0])
	if err != nil || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("invalid day in date token %q", token)
	}

	month, ok := monthsByAbbr[strings.ToLower(parts[1])]
	if !ok {
		return time.Time{}, fmt.Errorf("invalid month in date token %q", token)
	}

	date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != month {
		// time.Date normalizes overflow (Feb 30 -> Mar 2); reject it.
		return time.Time{}, fmt.Errorf("nonexistent calendar date %q", token)
	}
	return date, nil
}

// parseAmount converts a token like "2,340.55" to a float64.
func parseAmount(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
}
