package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/muhammadidrees/raseed/internal/derivation"
	"github.com/muhammadidrees/raseed/internal/domain"
)

// Document is everything a renderer needs: the parties and the derived invoice
type Document struct {
	Personal domain.PersonalInfo
	Company  domain.CompanyInfo
	Bank     domain.BankInfo
	Invoice  *derivation.DerivedInvoice
}

// NewDocument pairs a record with its derivation
func NewDocument(record domain.InvoiceRecord, inv *derivation.DerivedInvoice) Document {
	return Document{
		Personal: record.Personal,
		Company:  record.Company,
		Bank:     record.Bank,
		Invoice:  inv,
	}
}

// Renderer writes a document in one output format
type Renderer interface {
	Render(w io.Writer, doc Document) error
	// Extension is the file extension without the dot
	Extension() string
	ContentType() string
}

// ForFormat returns the renderer for pdf, txt or html
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "pdf":
		return NewPDFRenderer(), nil
	case "txt", "text":
		return NewTextRenderer(), nil
	case "html":
		return NewHTMLRenderer(), nil
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// FileName returns the default file name, e.g. invoice-000124.pdf
func FileName(doc Document, r Renderer) string {
	return fmt.Sprintf("invoice-%s.%s", doc.Invoice.Number, r.Extension())
}

// AmountDue is the footer amount line
func (d Document) AmountDue() string {
	return "Amount due: " + derivation.FormatAmount(d.Invoice.Total)
}

// ThankYou is the footer sentence
func (d Document) ThankYou() string {
	return "Thank you for your business! Payment is " + d.Invoice.PaymentSentence + "."
}

// CompanyCityLine renders the payer's "zip, city" line
func (d Document) CompanyCityLine() string {
	return joinNonEmpty(", ", d.Company.Address.Zip, d.Company.Address.City)
}

// PersonalCityLine renders the issuer's "city, zip" line
func (d Document) PersonalCityLine() string {
	return joinNonEmpty(", ", d.Personal.Address.City, d.Personal.Address.Zip)
}

// TaxIDLine renders "Tax# ..." or nothing when no tax ID is set
func (d Document) TaxIDLine() string {
	if strings.TrimSpace(d.Personal.TaxID) == "" {
		return ""
	}
	return "Tax# " + d.Personal.TaxID
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

// quantity renders the item quantity without trailing zeros
func quantity(line derivation.DerivedLine) string {
	return line.Quantity.String()
}

func money(line derivation.DerivedLine) (rate, total string) {
	return derivation.FormatNumber(line.UnitPrice), derivation.FormatNumber(line.LineTotal)
}
