package parser

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jmhart/bankscan/internal/model"
)

const simpleStatement = `Royal Bank of Canada
Account ****4417
Jun 1, 2024 to Jun 30, 2024
Account Activity Details
02 Jun e-Transfer sent TO JOHN DOE 150.00 2,340.55
05 Jun Monthly fee 4.95 2,335.60`

func TestParser_SimpleStatement(t *testing.T) {
	p := New(Options{StatementYear: 2024})
	stmt := p.Parse(simpleStatement)

	if stmt.Metadata.BankName != model.BankRBC {
		t.Errorf("BankName = %q, want %q", stmt.Metadata.BankName, model.BankRBC)
	}
	if stmt.Metadata.AccountTail != "4417" {
		t.Errorf("AccountTail = %q, want 4417", stmt.Metadata.AccountTail)
	}
	if len(stmt.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2: %+v", len(stmt.Transactions), stmt.Transactions)
	}

	first := stmt.Transactions[0]
	if got := first.Date.Format("2006-01-02"); got != "2024-06-02" {
		t.Errorf("first date = %s, want 2024-06-02", got)
	}
	if !strings.Contains(first.Description, "e-Transfer sent") {
		t.Errorf("first description = %q", first.Description)
	}
	if first.Amount != -150.00 {
		t.Errorf("first amount = %v, want -150.00", first.Amount)
	}
	if first.Balance == nil || *first.Balance != 2340.55 {
		t.Errorf("first balance = %v, want 2340.55", first.Balance)
	}
	if first.Bank != model.BankRBC || first.AccountTail != "4417" {
		t.Errorf("metadata not propagated: bank=%q tail=%q", first.Bank, first.AccountTail)
	}
	if first.Hash == "" {
		t.Error("hash not populated")
	}

	second := stmt.Transactions[1]
	if got := second.Date.Format("2006-01-02"); got != "2024-06-05" {
		t.Errorf("second date = %s, want 2024-06-05", got)
	}
	if !strings.Contains(second.Description, "Monthly fee") {
		t.Errorf("second description = %q", second.Description)
	}
	if second.Amount != -4.95 {
		t.Errorf("second amount = %v, want -4.95", second.Amount)
	}
	if second.Balance == nil || *second.Balance != 2335.60 {
		t.Errorf("second balance = %v, want 2335.60", second.Balance)
	}
}

func TestParser_DefaultsToCurrentYear(t *testing.T) {
	p := New(Options{})
	stmt := p.Parse(simpleStatement)

	if len(stmt.Transactions) == 0 {
		t.Fatal("no transactions parsed")
	}
	if got, want := stmt.Transactions[0].Date.Year(), time.Now().Year(); got != want {
		t.Errorf("year = %d, want current year %d", got, want)
	}
}

func TestParser_UnrecognizedBank(t *testing.T) {
	text := `Some Credit Union
Account Activity Details
02 Jun Direct deposit EMPLOYER INC 1,200.00 3,540.55`

	stmt := New(Options{StatementYear: 2024}).Parse(text)

	if stmt.Metadata.BankName != model.BankUnknown {
		t.Errorf("BankName = %q, want %q", stmt.Metadata.BankName, model.BankUnknown)
	}
	if stmt.Metadata.AccountTail != "" {
		t.Errorf("AccountTail = %q, want empty", stmt.Metadata.AccountTail)
	}
	if stmt.Metadata.StatementPeriod != "" {
		t.Errorf("StatementPeriod = %q, want empty", stmt.Metadata.StatementPeriod)
	}

	// Transactions still parse when the activity section is intact.
	if len(stmt.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(stmt.Transactions))
	}
	if stmt.Transactions[0].Amount != 1200.00 {
		t.Errorf("amount = %v, want 1200.00 (credit)", stmt.Transactions[0].Amount)
	}
}

func TestParser_MissingActivitySection(t *testing.T) {
	text := `Royal Bank of Canada
Account ****4417
02 Jun e-Transfer sent 150.00`

	stmt := New(Options{StatementYear: 2024}).Parse(text)

	if len(stmt.Transactions) != 0 {
		t.Errorf("got %d transactions, want 0", len(stmt.Transactions))
	}
	// Separately detectable metadata is still reported.
	if stmt.Metadata.BankName != model.BankRBC {
		t.Errorf("BankName = %q, want %q", stmt.Metadata.BankName, model.BankRBC)
	}
}

func TestParser_PartialSuccess(t *testing.T) {
	text := `Account Activity Details
02 Jun UNRECOGNIZED PHRASING 88.00
05 Jun Monthly fee 4.95 2,335.60
09 Jun Cheque pending`

	stmt := New(Options{StatementYear: 2024}).Parse(text)

	if len(stmt.Transactions) != 1 {
		t.Fatalf("got %d transactions, want 1", len(stmt.Transactions))
	}
	if !strings.Contains(stmt.Transactions[0].Description, "Monthly fee") {
		t.Errorf("surviving transaction = %+v", stmt.Transactions[0])
	}
	if len(stmt.Skips) != 2 {
		t.Errorf("got %d skips, want 2: %+v", len(stmt.Skips), stmt.Skips)
	}
}

func TestParser_RejectionMonotonicity(t *testing.T) {
	good := `Account Activity Details
02 Jun Monthly fee 4.95 2,335.60
05 Jun ATM withdrawal 60.00 2,275.60`

	// Removing the only amount from the first segment drops that candidate
	// without disturbing its sibling.
	degraded := `Account Activity Details
02 Jun Monthly fee
05 Jun ATM withdrawal 60.00 2,275.60`

	goodStmt := New(Options{StatementYear: 2024}).Parse(good)
	degradedStmt := New(Options{StatementYear: 2024}).Parse(degraded)

	if len(goodStmt.Transactions) != 2 {
		t.Fatalf("baseline parse got %d transactions, want 2", len(goodStmt.Transactions))
	}
	if len(degradedStmt.Transactions) != 1 {
		t.Fatalf("degraded parse got %d transactions, want 1", len(degradedStmt.Transactions))
	}

	want := goodStmt.Transactions[1]
	got := degradedStmt.Transactions[0]
	if got.Description != want.Description || got.Amount != want.Amount || !got.Date.Equal(want.Date) {
		t.Errorf("sibling candidate changed: %+v vs %+v", got, want)
	}
}

func TestParser_SourceOrderPreserved(t *testing.T) {
	// First-seen order follows the anchor traversal, not calendar order.
	text := `Account Activity Details
15 Jun Monthly fee 4.95
02 Jun ATM withdrawal 60.00`

	stmt := New(Options{StatementYear: 2024}).Parse(text)

	if len(stmt.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(stmt.Transactions))
	}
	if stmt.Transactions[0].Date.Day() != 15 || stmt.Transactions[1].Date.Day() != 2 {
		t.Errorf("source order not preserved: %v, %v",
			stmt.Transactions[0].Date, stmt.Transactions[1].Date)
	}
}

func TestParser_Reusable(t *testing.T) {
	p := New(Options{StatementYear: 2024})

	first := p.Parse(simpleStatement)
	second := p.Parse(simpleStatement)

	if len(first.Transactions) != len(second.Transactions) {
		t.Fatalf("parse not stateless: %d vs %d transactions",
			len(first.Transactions), len(second.Transactions))
	}
	for i := range first.Transactions {
		if first.Transactions[i].Hash != second.Transactions[i].Hash {
			t.Errorf("transaction %d hash differs between runs", i)
		}
	}
}

func BenchmarkParser_Parse(b *testing.B) {
	var sb strings.Builder
	sb.WriteString("Royal Bank of Canada\nAccount ****4417\nAccount Activity Details\n")
	for day := 1; day <= 28; day++ {
		fmt.Fprintf(&sb, "%02d Jun Monthly fee 4.95 2,335.60\n", day)
	}
	text := sb.String()

	p := New(Options{StatementYear: 2024})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Parse(text)
	}
}
