// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/jmhart/bankscan/internal/model"
)

var (
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(SuccessColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	creditStyle = lipgloss.NewStyle().Foreground(SuccessColor)
	debitStyle  = lipgloss.NewStyle().Foreground(ErrorColor)
)

// FormatAmount renders a signed amount, colored by direction.
func FormatAmount(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)
	if amount < 0 {
		return debitStyle.Render(s)
	}
	return creditStyle.Render("+" + s)
}

// FormatTransaction renders one transaction as a preview line.
func FormatTransaction(txn model.Transaction) string {
	line := fmt.Sprintf("%s  %-50s %12s",
		txn.Date.Format("2006-01-02"),
		truncate(txn.Description, 50),
		FormatAmount(txn.Amount))
	if txn.Balance != nil {
		line += SubtleStyle.Render(fmt.Sprintf("  bal %.2f", *txn.Balance))
	}
	return line
}

// FormatImportSummary renders the "saved N, skipped M duplicates" line.
func FormatImportSummary(saved, duplicates, skippedSegments int) string {
	summary := SuccessStyle.Render(fmt.Sprintf("Saved %d", saved)) +
		SubtleStyle.Render(fmt.Sprintf(", skipped %d duplicates", duplicates))
	if skippedSegments > 0 {
		summary += WarningStyle.Render(fmt.Sprintf(" (%d unparseable segments)", skippedSegments))
	}
	return summary
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
