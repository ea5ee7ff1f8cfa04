package render

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/muhammadidrees/raseed/internal/derivation"
	"github.com/muhammadidrees/raseed/internal/domain"
	"github.com/shopspring/decimal"
)

func testDocument(t *testing.T, taxRate int64) Document {
	t.Helper()

	days := 45
	record := domain.InvoiceRecord{
		Invoice: domain.InvoiceData{
			Date:       time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
			Terms:      domain.TermsCustom,
			CustomDays: &days,
			Items: []domain.LineItem{
				{Key: "k1", Description: "Consulting <backend>", Quantity: 2, Price: 100},
				{Key: "k2", Description: "Support", Quantity: 1.5, Price: 50},
			},
		},
		Personal: domain.PersonalInfo{
			Name:    "Jane Doe",
			Email:   "jane@example.com",
			TaxID:   "DE123456789",
			Address: domain.Address{Street: "Hauptstraße 1", City: "Berlin", Zip: "10115"},
		},
		Company: domain.CompanyInfo{
			Name:    "Makula Technology GmbH",
			Address: domain.Address{Street: "c/o Mindspace Münzstr. 12", City: "Germany", Zip: "10178 Berlin"},
		},
		Bank: domain.BankInfo{Name: "N26", AccountTitle: "Jane Doe", IBAN: "DE89370400440532013000", BIC: "NTSBDEB1XXX"},
	}

	inv, err := derivation.Derive(record, decimal.NewFromInt(taxRate))
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	return NewDocument(record, inv)
}

func TestForFormat(t *testing.T) {
	tests := []struct {
		format string
		ext    string
	}{
		{"pdf", "pdf"},
		{"PDF", "pdf"},
		{"txt", "txt"},
		{"text", "txt"},
		{"html", "html"},
	}
	for _, tt := range tests {
		r, err := ForFormat(tt.format)
		if err != nil {
			t.Fatalf("ForFormat(%q) failed: %v", tt.format, err)
		}
		if r.Extension() != tt.ext {
			t.Errorf("ForFormat(%q).Extension() = %s, want %s", tt.format, r.Extension(), tt.ext)
		}
	}

	if _, err := ForFormat("docx"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestFileName(t *testing.T) {
	doc := testDocument(t, 0)
	if got := FileName(doc, NewPDFRenderer()); got != "invoice-000224.pdf" {
		t.Errorf("FileName = %s", got)
	}
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextRenderer().Render(&buf, testDocument(t, 0)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()

	want := []string{
		"#000224",
		"Issued Date:  10/02/2024",
		"Due Date:     26/03/2024",
		"Period:       01/02/2024 - 29/02/2024",
		"Terms:        Net 45",
		"10178 Berlin, Germany",
		"Tax# DE123456789",
		"Berlin, 10115",
		"Rate (€)",
		"200.00",
		"1.5",
		"75.00",
		"275.00 €",
		"IBAN:           DE89370400440532013000",
		"Amount due: 275.00 €",
		"Thank you for your business! Payment is due within 45 days of invoice date.",
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("text output missing %q\n%s", w, out)
		}
	}

	if strings.Contains(out, "Tax (") {
		t.Error("tax line should be hidden at 0%")
	}
}

func TestTextRendererShowsTax(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextRenderer().Render(&buf, testDocument(t, 19)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "Tax (19%)") || !strings.Contains(out, "52.25 €") {
		t.Errorf("missing tax line:\n%s", out)
	}
	if !strings.Contains(out, "Amount due: 327.25 €") {
		t.Errorf("missing amount due:\n%s", out)
	}
}

func TestTextRendererOmitsEmptyTaxID(t *testing.T) {
	doc := testDocument(t, 0)
	doc.Personal.TaxID = ""

	var buf bytes.Buffer
	if err := NewTextRenderer().Render(&buf, doc); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(buf.String(), "Tax#") {
		t.Error("empty tax ID should not print a Tax# line")
	}
}

func TestHTMLRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := NewHTMLRenderer().Render(&buf, testDocument(t, 7)); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	out := buf.String()

	want := []string{
		"<title>Invoice 000224</title>",
		"Consulting &lt;backend&gt;",
		"Tax (7%)",
		"19.25 €",
		"294.25 €",
		"Payment is due within 45 days of invoice date.",
	}
	for _, w := range want {
		if !strings.Contains(out, w) {
			t.Errorf("html output missing %q", w)
		}
	}
}

func TestPDFRenderer(t *testing.T) {
	r := NewPDFRenderer()
	doc := testDocument(t, 0)

	var first bytes.Buffer
	if err := r.Render(&first, doc); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(first.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", first.Bytes()[:8])
	}

	if !bytes.Contains(first.Bytes(), []byte("%%EOF")) {
		t.Error("pdf output is missing its trailer")
	}
}

func TestPDFRendererManyItems(t *testing.T) {
	doc := testDocument(t, 0)
	lines := doc.Invoice.Lines
	for i := 0; i < 30; i++ {
		lines = append(lines, lines[0])
	}
	doc.Invoice.Lines = lines

	var buf bytes.Buffer
	if err := NewPDFRenderer().Render(&buf, doc); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
}
