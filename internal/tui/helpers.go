package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muhammadidrees/raseed/internal/app"
	"github.com/muhammadidrees/raseed/internal/domain"
	"github.com/shopspring/decimal"
)

// formatMoney formats money as "X,XXX.XX €" with comma separators
func formatMoney(amount decimal.Decimal) string {
	negative := amount.IsNegative()
	s := amount.Abs().StringFixed(2)

	// Split at decimal point
	dotPos := len(s) - 3
	intPart := s[:dotPos]
	decPart := s[dotPos:]

	// Add commas to integer part
	result := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}

	prefix := ""
	if negative {
		prefix = "-"
	}
	return prefix + string(result) + decPart + " €"
}

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// orDash renders empty values as a dash
func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// recordMsg carries a freshly loaded record
type recordMsg struct {
	record *domain.InvoiceRecord
	err    error
}

func loadRecord(a *app.App) tea.Cmd {
	return func() tea.Msg {
		record, err := a.InvoiceService.Record(context.Background())
		return recordMsg{record: record, err: err}
	}
}
