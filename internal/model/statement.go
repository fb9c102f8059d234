// Package model defines the core domain types shared across the application.
package model

// Canonical institution names produced by the detector.
const (
	BankRBC        = "RBC"
	BankTD         = "TD"
	BankScotiabank = "Scotiabank"
	BankUnknown    = "Unknown Bank"
)

// StatementMetadata describes the statement a batch of transactions came
// from. Populated once at parse start; fields that cannot be detected stay
// at their zero values.
type StatementMetadata struct {
	BankName        string
	AccountTail     string // last 4 digits of the account number, if found
	StatementPeriod string // free-text period, e.g. "Jun 1, 2024 to Jun 30, 2024"
}

// SkipReason records why one candidate segment produced no transaction.
// Carried alongside the parsed transactions so callers can surface partial
// results without digging through logs.
type SkipReason struct {
	Snippet string
	Reason  string
}

// ParsedStatement is the aggregate result of one parse invocation:
// statement metadata plus the transactions in source-document order.
type ParsedStatement struct {
	Metadata     StatementMetadata
	Transactions []Transaction
	Skips        []SkipReason
}
