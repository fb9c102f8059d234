package parser

import (
	"regexp"
	"strings"

	"github.com/jmhart/bankscan/internal/model"
)

// Account number patterns, tried in order. The masked form appears on most
// statements; the labelled forms catch older layouts.
var accountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\*{2,}\s?(\d{4})\b`),
	regexp.MustCompile(`(?i)Account\s*#\s*:?\s*[\d*\- ]*(\d{4})\b`),
	regexp.MustCompile(`(?i)Account\s+Number\s*:?\s*[\d*\- ]*(\d{4})\b`),
}

// Statement period patterns: two literal range formats, then a generic
// labelled fallback.
var (
	periodTextRange = regexp.MustCompile(
		`(?i)([A-Z][a-z]{2,8}\.?\s+\d{1,2},\s+\d{4})\s+to\s+([A-Z][a-z]{2,8}\.?\s+\d{1,2},\s+\d{4})`)
	periodSlashRange = regexp.MustCompile(
		`(\d{2}/\d{2}/\d{4})\s+to\s+(\d{2}/\d{2}/\d{4})`)
	periodLabelled = regexp.MustCompile(
		`(?i)Statement\s+Period\s*:?\s*([^\r\n]+)`)
)

// DetectMetadata classifies the issuing institution and extracts the account
// number tail and statement period from raw statement text. Best-effort by
// design: statement layouts vary by institution and over time, and metadata
// is supplementary, so fields that cannot be found are left at defaults and
// no error is ever returned.
func DetectMetadata(text string) model.StatementMetadata {
	md := model.StatementMetadata{BankName: model.BankUnknown}

	lower := strings.ToLower(text)
	for _, m := range bankMarkers {
		if strings.Contains(lower, m.Marker) {
			md.BankName = m.Bank
			break
		}
	}

	for _, re := range accountPatterns {
		if m := re.FindStringSubmatch(text); m != nil {
			md.AccountTail = m[1]
			break
		}
	}

	md.StatementPeriod = detectPeriod(text)

	return md
}

func detectPeriod(text string) string {
	if m := periodTextRange.FindStringSubmatch(text); m != nil {
		return m[1] + " to " + m[2]
	}
	if m := periodSlashRange.FindStringSubmatch(text); m != nil {
		return m[1] + " to " + m[2]
	}
	if m := periodLabelled.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}
