package parser

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitCandidate(t *testing.T) {
	t.Run("single transaction with balance", func(t *testing.T) {
		c := Candidate{
			DateToken: "02 Jun",
			Text:      " e-Transfer sent TO JOHN DOE 150.00 2,340.55",
		}

		entries, skips := SplitCandidate(c)
		if len(skips) != 0 {
			t.Fatalf("unexpected skips: %+v", skips)
		}
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}

		e := entries[0]
		if e.Amount != "150.00" {
			t.Errorf("Amount = %q, want 150.00", e.Amount)
		}
		if e.Balance != "2,340.55" {
			t.Errorf("Balance = %q, want 2,340.55", e.Balance)
		}
		if e.Description != "e-Transfer sent TO JOHN DOE" {
			t.Errorf("Description = %q", e.Description)
		}
	})

	t.Run("multiple transactions under one date", func(t *testing.T) {
		c := Candidate{
			DateToken: "05 Jun",
			Text:      " Monthly fee 4.95 2,335.60 ATM withdrawal 60.00 2,275.60",
		}

		entries, _ := SplitCandidate(c)
		if len(entries) != 2 {
			t.Fatalf("got %d entries, want 2", len(entries))
		}
		if entries[0].Description != "Monthly fee" || entries[0].Amount != "4.95" {
			t.Errorf("entry 0 = %+v", entries[0])
		}
		if entries[1].Description != "ATM withdrawal" || entries[1].Amount != "60.00" {
			t.Errorf("entry 1 = %+v", entries[1])
		}
		if entries[1].Balance != "2,275.60" {
			t.Errorf("entry 1 balance = %q, want 2,275.60", entries[1].Balance)
		}
	})

	t.Run("no balance when only one amount", func(t *testing.T) {
		c := Candidate{DateToken: "05 Jun", Text: " Monthly fee 4.95"}

		entries, _ := SplitCandidate(c)
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}
		if entries[0].Balance != "" {
			t.Errorf("Balance = %q, want empty", entries[0].Balance)
		}
	})

	t.Run("repeated amount is not a balance", func(t *testing.T) {
		// Some layouts echo the amount; a duplicate token must not be
		// mistaken for a running balance.
		c := Candidate{DateToken: "05 Jun", Text: " Monthly fee 4.95 4.95"}

		entries, _ := SplitCandidate(c)
		if len(entries) != 1 {
			t.Fatalf("got %d entries, want 1", len(entries))
		}
		if entries[0].Balance != "" {
			t.Errorf("Balance = %q, want empty", entries[0].Balance)
		}
	})

	t.Run("segment without amounts is dropped", func(t *testing.T) {
		c := Candidate{DateToken: "05 Jun", Text: " Monthly fee pending"}

		entries, skips := SplitCandidate(c)
		if entries != nil {
			t.Errorf("expected no entries, got %+v", entries)
		}
		if len(skips) != 1 || skips[0].Reason != "no amount found in segment" {
			t.Errorf("skips = %+v", skips)
		}
	})

	t.Run("segment without keywords is dropped", func(t *testing.T) {
		c := Candidate{DateToken: "05 Jun", Text: " MYSTERY LINE 45.00"}

		entries, skips := SplitCandidate(c)
		if entries != nil {
			t.Errorf("expected no entries, got %+v", entries)
		}
		if len(skips) != 1 || skips[0].Reason != "no recognized transaction keyword in segment" {
			t.Errorf("skips = %+v", skips)
		}
	})

	t.Run("specific keyword claims its span", func(t *testing.T) {
		c := Candidate{
			DateToken: "08 Jun",
			Text:      " Contactless Interac purchase GROCERY MART 32.50 2,243.10",
		}

		entries, _ := SplitCandidate(c)
		if len(entries) != 1 {
			t.Fatalf("embedded keyword caused a spurious split: %+v", entries)
		}
		if entries[0].Description != "Contactless Interac purchase GROCERY MART" {
			t.Errorf("Description = %q", entries[0].Description)
		}
	})
}

func TestSplitCandidate_RejectionIsolation(t *testing.T) {
	// Dropping one span must not disturb its siblings.
	c := Candidate{
		DateToken: "09 Jun",
		Text:      " Monthly fee 4.95 Cheque NSF fee 8.00",
	}

	entries, _ := SplitCandidate(c)

	// "Cheque" span carries no amount of its own and is dropped; the fee
	// entries on either side survive untouched.
	for _, e := range entries {
		if e.Description == "Cheque" {
			t.Errorf("amountless span should have been dropped: %+v", e)
		}
	}
	if len(entries) == 0 {
		t.Fatal("sibling entries were lost")
	}
	if entries[0].Description != "Monthly fee" || entries[0].Amount != "4.95" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
}

func TestSnippet_MultibyteTruncation(t *testing.T) {
	got := snippet(strings.Repeat("é", 120))

	if !utf8.ValidString(got) {
		t.Errorf("snippet produced invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 83 {
		t.Errorf("rune count = %d, want 80 plus ellipsis", n)
	}

	short := "CAFÉ PURCHASE"
	if snippet(short) != short {
		t.Errorf("short snippet altered: %q", snippet(short))
	}
}
