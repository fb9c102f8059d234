package parser

import (
	"regexp"
	"strings"
)

// activityMarker delimits the transaction activity section. Text before it
// is account summary and boilerplate; if it is missing the whole statement
// is treated as unparseable and callers fall back to manual entry.
const activityMarker = "account activity details"

// dateAnchorRe finds short-date tokens like "02 Jun" that bank statements
// use to open each transaction group.
var dateAnchorRe = regexp.MustCompile(
	`(?i)\b\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\b`)

// amountRe matches monetary tokens with optional thousands separators,
// e.g. "4.95" or "2,340.55".
var amountRe = regexp.MustCompile(`\d{1,3}(?:,\d{3})*\.\d{2}`)

// Candidate is one slice of the activity section suspected to hold one or
// more transactions sharing a date.
type Candidate struct {
	DateToken string // raw token, e.g. "02 Jun"
	Text      string // everything between this anchor and the next
}

// Segmenter splits raw statement text into transaction candidates. Two
// strategies exist; both return nil when the activity section cannot be
// located or holds no anchors, which the caller reports as "no transactions
// found" rather than an error.
type Segmenter interface {
	Segment(text string) []Candidate
}

// Segmentation strategy names accepted by NewSegmenter.
const (
	StrategyDate   = "date"
	StrategyAmount = "amount"
)

// NewSegmenter returns the segmenter for the named strategy, defaulting to
// date-anchored segmentation for anything unrecognized.
func NewSegmenter(strategy string) Segmenter {
	if strategy == StrategyAmount {
		return AmountAnchorSegmenter{}
	}
	return DateAnchorSegmenter{}
}

// DateAnchorSegmenter is the default strategy: every short-date token in the
// activity section starts a candidate that runs to the next date token.
// Statements frequently stack several transactions under one date header;
// date anchors are still a reliable split point because the per-segment
// splitter further divides each candidate on transaction-keyword boundaries,
// whereas amount anchors alone cannot recover boundaries when descriptions
// carry no internal delimiters.
type DateAnchorSegmenter struct{}

// Segment implements Segmenter.
func (DateAnchorSegmenter) Segment(text string) []Candidate {
	body, ok := activitySection(text)
	if !ok {
		return nil
	}

	locs := dateAnchorRe.FindAllStringIndex(body, -1)
	if len(locs) == 0 {
		return nil
	}

	candidates := make([]Candidate, 0, len(locs))
	for i, loc := range locs {
		end := len(body)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		candidates = append(candidates, Candidate{
			DateToken: body[loc[0]:loc[1]],
			Text:      body[loc[1]:end],
		})
	}
	return candidates
}

// AmountAnchorSegmenter is the legacy strategy kept selectable for A/B runs
// against real statements: every monetary token closes a candidate, and the
// candidate's date is the first short-date token inside it. It misgroups
// statements that report a balance column next to each amount, which is why
// it is no longer the default.
type AmountAnchorSegmenter struct{}

// Segment implements Segmenter.
func (AmountAnchorSegmenter) Segment(text string) []Candidate {
	body, ok := activitySection(text)
	if !ok {
		return nil
	}

	locs := amountRe.FindAllStringIndex(body, -1)
	if len(locs) == 0 {
		return nil
	}

	var candidates []Candidate
	start := 0
	for _, loc := range locs {
		segment := body[start:loc[1]]
		start = loc[1]

		token := dateAnchorRe.FindString(segment)
		if token == "" {
			// Amount with no date in reach; usually a summary row.
			continue
		}
		candidates = append(candidates, Candidate{
			DateToken: token,
			Text:      segment,
		})
	}
	return candidates
}

// activitySection returns the text after the activity marker, or ok=false
// when the marker is absent.
func activitySection(text string) (string, bool) {
	idx := strings.Index(strings.ToLower(text), activityMarker)
	if idx < 0 {
		return "", false
	}
	return text[idx+len(activityMarker):], true
}
