// Package extractor turns statement PDFs into raw text for the parser.
// Layout fidelity is not guaranteed: line breaks, column order, and
// whitespace all depend on how the PDF was produced, which is why the
// parser downstream treats the text as an unstructured blob.
package extractor

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"

	"github.com/jmhart/bankscan/internal/common"
)

// ExtractText reads a PDF file and returns its text content as one string.
// It tries multiple extraction methods because statement PDFs vary wildly
// in font encoding; whichever method first yields readable text wins.
// Image-based or custom-font PDFs that decode to garbage return
// common.ErrUnreadablePDF rather than garbage text.
func ExtractText(filePath string) (_ string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open PDF: %w", err)
	}
	defer func() { _ = f.Close() }()

	numPages := r.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("%w: PDF has no pages", common.ErrUnreadablePDF)
	}

	if text := extractByRow(r, numPages); isReadableText(text) {
		return text, nil
	}
	if text := extractPlainText(r); isReadableText(text) {
		return text, nil
	}

	return "", fmt.Errorf("%w: the file may be image-based or use custom font encodings", common.ErrUnreadablePDF)
}

// extractByRow walks each page row by row, which preserves the line
// structure the parser's date anchors rely on.
func extractByRow(r *pdf.Reader, numPages int) string {
	var pages []string
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}
	return strings.Join(pages, "\n")
}

// extractPlainText is the whole-document fallback path.
func extractPlainText(r *pdf.Reader) string {
	reader, err := r.GetPlainText()
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// statementWords appear in virtually every bank statement. Extracted text
// containing none of them is almost certainly mis-decoded.
var statementWords = []string{
	"bank", "account", "balance", "date", "statement", "transaction",
	"activity", "deposit", "withdrawal", "transfer", "payment", "fee",
	"period", "total", "credit", "debit",
}

// isReadableText gates extraction output: enough characters, a high enough
// ratio of plain ASCII, and at least one recognizable statement word.
func isReadableText(text string) bool {
	if len(strings.TrimSpace(text)) <= 50 {
		return false
	}
	if textQuality(text) <= 0.6 {
		return false
	}
	lower := strings.ToLower(text)
	for _, word := range statementWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

// textQuality returns the ratio of plain readable characters to total.
// Strict ASCII on purpose: unicode.IsLetter matches the accented runes
// that identity-encoded fonts decode garbage into.
func textQuality(text string) float64 {
	total := 0
	readable := 0
	for _, r := range text {
		total++
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9') || unicode.IsSpace(r) ||
			strings.ContainsRune(`.,-/:;()'"$#*&@%+=?!`, r) {
			readable++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}
