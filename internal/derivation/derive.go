package derivation

import (
	"fmt"
	"time"

	"github.com/muhammadidrees/raseed/internal/domain"
	"github.com/shopspring/decimal"
)

// DerivedLine is a line item with its computed total
type DerivedLine struct {
	Key         string          `json:"key"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	LineTotal   decimal.Decimal `json:"lineTotal"`
}

// DerivedInvoice holds every display value computed from an invoice record.
// It is built fresh for each record and never modified afterwards.
type DerivedInvoice struct {
	Number          string          `json:"number"`
	InvoiceDate     time.Time       `json:"invoiceDate"`
	DueDate         time.Time       `json:"dueDate"`
	IssuedDate      string          `json:"issuedDate"`
	DueDateText     string          `json:"dueDateText"`
	Period          string          `json:"period"`
	TermsLabel      string          `json:"termsLabel"`
	PaymentSentence string          `json:"paymentSentence"`
	Lines           []DerivedLine   `json:"lines"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	TaxRate         decimal.Decimal `json:"taxRate"`
	Tax             decimal.Decimal `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	ShowTax         bool            `json:"showTax"`
}

// TaxLabel returns e.g. "Tax (19%)"
func (d *DerivedInvoice) TaxLabel() string {
	return fmt.Sprintf("Tax (%s%%)", d.TaxRate.String())
}

// Derive computes the display values of record. taxRate is a percentage.
// The same input always produces the same output.
func Derive(record domain.InvoiceRecord, taxRate decimal.Decimal) (*DerivedInvoice, error) {
	inv := record.Invoice
	customDays := inv.EffectiveCustomDays()

	totals, err := Aggregate(inv.Items, taxRate)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate line items: %w", err)
	}

	lines := make([]DerivedLine, len(inv.Items))
	for i, item := range inv.Items {
		lines[i] = DerivedLine{
			Key:         item.Key,
			Description: item.Description,
			Quantity:    decimal.NewFromFloat(item.Quantity),
			UnitPrice:   decimal.NewFromFloat(item.Price),
			LineTotal:   totals.LineTotals[i],
		}
	}

	issued := domain.DateOf(inv.Date)
	due := ResolveDueDate(issued, inv.Terms, customDays)

	return &DerivedInvoice{
		Number:          GenerateInvoiceNumber(issued),
		InvoiceDate:     issued,
		DueDate:         due,
		IssuedDate:      FormatDate(issued),
		DueDateText:     FormatDate(due),
		Period:          GeneratePeriod(issued),
		TermsLabel:      DescribeTerms(inv.Terms, customDays),
		PaymentSentence: PaymentSentence(inv.Terms, customDays),
		Lines:           lines,
		Subtotal:        totals.Subtotal,
		TaxRate:         taxRate,
		Tax:             totals.Tax,
		Total:           totals.Total,
		ShowTax:         ShowTax(taxRate),
	}, nil
}
