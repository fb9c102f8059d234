package model

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// Transaction represents a single reconstructed bank transaction.
// Amounts are signed from the account holder's perspective: positive is an
// inflow (credit), negative is an outflow (debit).
type Transaction struct {
	Date        time.Time
	ID          string
	Description string
	Hash        string
	Bank        string
	AccountTail string
	Amount      float64

	// Balance is the running account balance after this transaction, when
	// the source text reported one. Nil when absent.
	Balance *float64
}

// GenerateHash creates a deterministic hash for duplicate detection.
// Two transactions with the same date, amount, and description collide,
// which is exactly the dedup rule the import gate wants.
func (t *Transaction) GenerateHash() string {
	data := fmt.Sprintf("%s:%.2f:%s",
		t.Date.Format("2006-01-02"),
		t.Amount,
		t.Description)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}

// Month returns the YYYY-MM key used by monthly statistics. Always derived
// from Date, never stored independently.
func (t *Transaction) Month() string {
	return t.Date.Format("2006-01")
}
