package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muhammadidrees/raseed/internal/domain"
	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00 €"},
		{"250", "250.00 €"},
		{"1234.5", "1,234.50 €"},
		{"1234567.891", "1,234,567.89 €"},
		{"-42", "-42.00 €"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := formatMoney(decimal.RequireFromString(tt.in)); got != tt.want {
				t.Errorf("formatMoney(%s) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestFirstMissingScreen(t *testing.T) {
	tests := []struct {
		name    string
		missing domain.Violations
		want    Screen
		wantOK  bool
	}{
		{"complete", domain.Violations{}, ScreenPreview, false},
		{"personal before bank", domain.Violations{"bank.iban": "required", "personal.name": "required"}, ScreenPersonal, true},
		{"bank before company", domain.Violations{"company.name": "required", "bank.bic": "required"}, ScreenBank, true},
		{"company only", domain.Violations{"company.address.zip": "required"}, ScreenCompany, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := firstMissingScreen(tt.missing)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("got (%v, %v), want (%v, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestFormNavigation(t *testing.T) {
	f := newForm(itemFields, []string{"Design", "2", "50"})
	f.focusOn(0)

	if action, _ := f.update(tea.KeyMsg{Type: tea.KeyTab}); action != formNone || f.focus != 1 {
		t.Fatalf("tab should move to field 1, focus = %d", f.focus)
	}
	if action, _ := f.update(tea.KeyMsg{Type: tea.KeyShiftTab}); action != formNone || f.focus != 0 {
		t.Fatalf("shift+tab should move back, focus = %d", f.focus)
	}

	f.update(tea.KeyMsg{Type: tea.KeyEnter})
	f.update(tea.KeyMsg{Type: tea.KeyEnter})
	if action, _ := f.update(tea.KeyMsg{Type: tea.KeyEnter}); action != formSubmit {
		t.Errorf("enter on the last field should submit, got %v", action)
	}
	if action, _ := f.update(tea.KeyMsg{Type: tea.KeyEsc}); action != formCancel {
		t.Errorf("esc should cancel, got %v", action)
	}

	got := f.values()
	if got[0] != "Design" || got[1] != "2" || got[2] != "50" {
		t.Errorf("values = %v", got)
	}
}

func TestParseInvoiceForm(t *testing.T) {
	base := *domain.NewInvoiceData(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		name      string
		values    []string
		wantTerms domain.PaymentTerms
		wantDays  *int
		wantErr   bool
	}{
		{"net 30", []string{"2024-02-01", "Net 30", ""}, domain.TermsNet30, nil, false},
		{"fixed terms drop days", []string{"2024-02-01", "net15", "12"}, domain.TermsNet15, nil, false},
		{"custom", []string{"2024-02-01", "custom", "45"}, domain.TermsCustom, intPtr(45), false},
		{"custom needs days", []string{"2024-02-01", "custom", ""}, "", nil, true},
		{"custom out of range", []string{"2024-02-01", "custom", "400"}, "", nil, true},
		{"bad date", []string{"01/02/2024", "net_30", ""}, "", nil, true},
		{"bad terms", []string{"2024-02-01", "net_45", ""}, "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseInvoiceForm(base, tt.values)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got.Terms != tt.wantTerms {
				t.Errorf("terms = %s, want %s", got.Terms, tt.wantTerms)
			}
			if (got.CustomDays == nil) != (tt.wantDays == nil) ||
				(got.CustomDays != nil && *got.CustomDays != *tt.wantDays) {
				t.Errorf("custom days = %v, want %v", got.CustomDays, tt.wantDays)
			}
			if !got.Date.Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)) {
				t.Errorf("date = %v", got.Date)
			}
		})
	}
}

func intPtr(n int) *int { return &n }
