package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/muhammadidrees/raseed/internal/derivation"
)

const textWidth = 64

// TextRenderer writes a plain text invoice
type TextRenderer struct{}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{}
}

func (r *TextRenderer) Extension() string   { return "txt" }
func (r *TextRenderer) ContentType() string { return "text/plain; charset=utf-8" }

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

func (r *TextRenderer) Render(w io.Writer, doc Document) error {
	inv := doc.Invoice
	var b strings.Builder

	sep := strings.Repeat("=", textWidth)
	line := strings.Repeat("-", textWidth)

	b.WriteString("INVOICE\n")
	b.WriteString(fmt.Sprintf("#%s\n", inv.Number))
	b.WriteString(sep + "\n")
	b.WriteString(fmt.Sprintf("Issued Date:  %s\n", inv.IssuedDate))
	b.WriteString(fmt.Sprintf("Due Date:     %s\n", inv.DueDateText))
	b.WriteString(fmt.Sprintf("Period:       %s\n", inv.Period))
	b.WriteString(fmt.Sprintf("Terms:        %s\n", inv.TermsLabel))

	b.WriteString("\nBilled To:\n")
	for _, l := range []string{doc.Company.Name, doc.Company.Address.Street, doc.CompanyCityLine()} {
		if l != "" {
			b.WriteString("  " + l + "\n")
		}
	}

	b.WriteString("\nFrom:\n")
	for _, l := range []string{doc.Personal.Name, doc.TaxIDLine(), doc.Personal.Email, doc.Personal.Address.Street, doc.PersonalCityLine()} {
		if l != "" {
			b.WriteString("  " + l + "\n")
		}
	}

	b.WriteString("\n" + line + "\n")
	b.WriteString(fmt.Sprintf("%-28s %10s %8s %15s\n", "Description", "Rate (€)", "Qty", "Line Total (€)"))
	b.WriteString(line + "\n")

	for _, item := range inv.Lines {
		rate, total := money(item)
		b.WriteString(fmt.Sprintf("%-28s %10s %8s %15s\n",
			truncate(item.Description, 28),
			rate,
			quantity(item),
			total,
		))
	}

	b.WriteString(line + "\n")
	b.WriteString(fmt.Sprintf("%47s %16s\n", "Subtotal", derivation.FormatAmount(inv.Subtotal)))
	if inv.ShowTax {
		b.WriteString(fmt.Sprintf("%47s %16s\n", inv.TaxLabel(), derivation.FormatAmount(inv.Tax)))
	}
	b.WriteString(fmt.Sprintf("%47s %16s\n", "Total", derivation.FormatAmount(inv.Total)))
	b.WriteString(sep + "\n")

	b.WriteString("\nPayment Details:\n")
	b.WriteString(fmt.Sprintf("  Bank Name:      %s\n", doc.Bank.Name))
	b.WriteString(fmt.Sprintf("  Account Title:  %s\n", doc.Bank.AccountTitle))
	b.WriteString(fmt.Sprintf("  IBAN:           %s\n", doc.Bank.IBAN))
	b.WriteString(fmt.Sprintf("  BIC:            %s\n", doc.Bank.BIC))

	b.WriteString("\n" + doc.AmountDue() + "\n")
	b.WriteString(doc.ThankYou() + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}
