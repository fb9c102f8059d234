package parser

import (
	"sort"
	"strings"

	"github.com/jmhart/bankscan/internal/model"
)

// RawEntry is one unparsed transaction cut out of a candidate segment:
// the description text with its amount tokens removed, the first amount
// token, and the trailing balance token when one was present.
type RawEntry struct {
	Description string
	Amount      string
	Balance     string
}

// SplitCandidate divides one candidate segment into raw entries on
// transaction-keyword boundaries. Segments with no monetary token, and
// segments where no known transaction phrase occurs, are dropped with a
// recorded reason: unrecognized phrasing is lost rather than guessed at.
func SplitCandidate(c Candidate) ([]RawEntry, []model.SkipReason) {
	if !amountRe.MatchString(c.Text) {
		return nil, []model.SkipReason{{
			Snippet: snippet(c.Text),
			Reason:  "no amount found in segment",
		}}
	}

	offsets := keywordOffsets(c.Text)
	if len(offsets) == 0 {
		return nil, []model.SkipReason{{
			Snippet: snippet(c.Text),
			Reason:  "no recognized transaction keyword in segment",
		}}
	}

	var entries []RawEntry
	var skips []model.SkipReason
	for i, off := range offsets {
		end := len(c.Text)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		span := c.Text[off:end]

		amounts := amountRe.FindAllString(span, -1)
		if len(amounts) == 0 {
			skips = append(skips, model.SkipReason{
				Snippet: snippet(span),
				Reason:  "no amount found for transaction",
			})
			continue
		}

		entry := RawEntry{Amount: amounts[0]}
		// The running balance typically follows the amount on the same
		// logical line; a second distinct token is taken as the balance.
		if last := amounts[len(amounts)-1]; len(amounts) > 1 && last != amounts[0] {
			entry.Balance = last
		}

		entry.Description = collapseWhitespace(amountRe.ReplaceAllString(span, " "))
		if len(entry.Description) < 3 {
			skips = append(skips, model.SkipReason{
				Snippet: snippet(span),
				Reason:  "description too short",
			})
			continue
		}

		entries = append(entries, entry)
	}
	return entries, skips
}

// keywordOffsets finds where each known transaction phrase occurs in the
// segment, case-insensitively, and returns the start offsets in ascending
// order. Keywords are tried most-specific first and each match claims its
// span, so "Interac purchase" cannot re-match inside an already claimed
// "Contactless Interac purchase".
func keywordOffsets(text string) []int {
	lower := strings.ToLower(text)

	type interval struct{ start, end int }
	var claimed []interval
	var offsets []int

	overlaps := func(start, end int) bool {
		for _, iv := range claimed {
			if start < iv.end && end > iv.start {
				return true
			}
		}
		return false
	}

	for _, kw := range transactionKeywords {
		needle := strings.ToLower(kw)
		from := 0
		for {
			idx := strings.Index(lower[from:], needle)
			if idx < 0 {
				break
			}
			start := from + idx
			end := start + len(needle)
			if !overlaps(start, end) {
				claimed = append(claimed, interval{start, end})
				offsets = append(offsets, start)
			}
			from = end
		}
	}

	sort.Ints(offsets)
	return offsets
}

// collapseWhitespace trims a string and squeezes internal whitespace runs
// down to single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// snippet bounds a skip-reason excerpt so diagnostics stay readable.
// Truncation happens on rune boundaries so multibyte descriptions never
// produce invalid UTF-8.
func snippet(s string) string {
	s = collapseWhitespace(s)
	const max = 80
	runes := []rune(s)
	if len(runes) > max {
		return string(runes[:max]) + "..."
	}
	return s
}
