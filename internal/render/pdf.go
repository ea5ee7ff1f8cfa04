package render

import (
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/muhammadidrees/raseed/internal/derivation"
)

const (
	pdfMargin  = 20.0
	pdfWidth   = 170.0 // A4 width minus margins
	lineHeight = 6.0
	paymentTop = 297.0 - 60 - 38
)

// column widths of the item table
var tableCols = [4]float64{85, 30, 20, 35}

// PDFRenderer lays the invoice out on a single A4 page
type PDFRenderer struct {
	font string
}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{font: "Helvetica"}
}

func (r *PDFRenderer) Extension() string   { return "pdf" }
func (r *PDFRenderer) ContentType() string { return "application/pdf" }

func (r *PDFRenderer) Render(w io.Writer, doc Document) error {
	inv := doc.Invoice

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle("Invoice "+inv.Number, true)
	pdf.SetCreator("raseed", true)
	pdf.SetCreationDate(inv.InvoiceDate)
	pdf.SetCatalogSort(true)
	pdf.AddPage()

	// core fonts are cp1252; the translator maps € and umlauts
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	r.header(pdf, tr, doc)
	y := r.parties(pdf, tr, doc, 62)
	y = r.table(pdf, tr, doc, y+8)
	// long item lists push payment details onto their own page
	if y > paymentTop-4 {
		pdf.AddPage()
	}
	r.payment(pdf, tr, doc)
	r.footer(pdf, tr, doc)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to lay out pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write pdf: %w", err)
	}
	return nil
}

func (r *PDFRenderer) header(pdf *gofpdf.Fpdf, tr func(string) string, doc Document) {
	inv := doc.Invoice

	pdf.SetXY(pdfMargin, pdfMargin)
	pdf.SetFont(r.font, "B", 24)
	pdf.CellFormat(80, 12, "INVOICE", "", 2, "L", false, 0, "")
	pdf.SetFont(r.font, "", 12)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(80, 7, "#"+inv.Number, "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	details := [][2]string{
		{"Issued Date:", inv.IssuedDate},
		{"Due Date:", inv.DueDateText},
		{"Period:", inv.Period},
		{"Terms:", inv.TermsLabel},
	}
	y := pdfMargin
	for _, d := range details {
		pdf.SetXY(110, y)
		pdf.SetFont(r.font, "B", 10)
		pdf.CellFormat(28, lineHeight, d[0], "", 0, "L", false, 0, "")
		pdf.SetFont(r.font, "", 10)
		pdf.CellFormat(52, lineHeight, tr(d[1]), "", 0, "R", false, 0, "")
		y += lineHeight
	}
}

// column writes a titled block of lines and returns the y below it
func (r *PDFRenderer) column(pdf *gofpdf.Fpdf, tr func(string) string, x, y float64, title string, lines []string) float64 {
	pdf.SetXY(x, y)
	pdf.SetFont(r.font, "B", 12)
	pdf.CellFormat(80, 8, title, "", 0, "L", false, 0, "")
	y += 8

	pdf.SetFont(r.font, "", 10)
	for _, l := range lines {
		if l == "" {
			continue
		}
		pdf.SetXY(x, y)
		pdf.CellFormat(80, 5, tr(l), "", 0, "L", false, 0, "")
		y += 5
	}
	return y
}

func (r *PDFRenderer) parties(pdf *gofpdf.Fpdf, tr func(string) string, doc Document, y float64) float64 {
	left := r.column(pdf, tr, pdfMargin, y, "Billed To:", []string{
		doc.Company.Name,
		doc.Company.Address.Street,
		doc.CompanyCityLine(),
	})
	right := r.column(pdf, tr, pdfMargin+pdfWidth/2, y, "From:", []string{
		doc.Personal.Name,
		doc.TaxIDLine(),
		doc.Personal.Email,
		doc.Personal.Address.Street,
		doc.PersonalCityLine(),
	})
	if right > left {
		return right
	}
	return left
}

func (r *PDFRenderer) table(pdf *gofpdf.Fpdf, tr func(string) string, doc Document, y float64) float64 {
	inv := doc.Invoice
	h := 8.0

	pdf.SetXY(pdfMargin, y)
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetFont(r.font, "B", 10)
	headers := []string{"Description", "Rate (€)", "Qty", "Line Total (€)"}
	for i, title := range headers {
		align := "C"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(tableCols[i], h, tr(title), "TB", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(r.font, "", 10)
	pdf.SetDrawColor(224, 224, 224)
	for _, item := range inv.Lines {
		rate, total := money(item)
		if pdf.GetY()+h > 297.0-pdfMargin {
			pdf.AddPage()
		}
		pdf.SetX(pdfMargin)
		pdf.CellFormat(tableCols[0], h, tr(item.Description), "B", 0, "L", false, 0, "")
		pdf.CellFormat(tableCols[1], h, rate, "B", 0, "C", false, 0, "")
		pdf.CellFormat(tableCols[2], h, quantity(item), "B", 0, "C", false, 0, "")
		pdf.CellFormat(tableCols[3], h, total, "B", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont(r.font, "B", 10)
	labelWidth := tableCols[0] + tableCols[1] + tableCols[2]
	totalRow := func(label, value string) {
		pdf.SetX(pdfMargin)
		pdf.CellFormat(labelWidth, h, tr(label), "T", 0, "R", true, 0, "")
		pdf.CellFormat(tableCols[3], h, tr(value), "T", 0, "C", true, 0, "")
		pdf.Ln(-1)
	}

	totalRow("Subtotal", derivation.FormatAmount(inv.Subtotal))
	if inv.ShowTax {
		totalRow(inv.TaxLabel(), derivation.FormatAmount(inv.Tax))
	}
	totalRow("Total", derivation.FormatAmount(inv.Total))

	return pdf.GetY()
}

func (r *PDFRenderer) payment(pdf *gofpdf.Fpdf, tr func(string) string, doc Document) {
	top := paymentTop
	pdf.SetFillColor(249, 249, 249)
	pdf.Rect(pdfMargin, top, pdfWidth, 38, "F")

	pdf.SetXY(pdfMargin+8, top+4)
	pdf.SetFont(r.font, "B", 14)
	pdf.CellFormat(pdfWidth-16, 8, "Payment Details:", "", 2, "L", false, 0, "")

	rows := [][2]string{
		{"Bank Name:", doc.Bank.Name},
		{"Account Title:", doc.Bank.AccountTitle},
		{"IBAN:", doc.Bank.IBAN},
		{"BIC:", doc.Bank.BIC},
	}
	for _, row := range rows {
		pdf.SetX(pdfMargin + 8)
		pdf.SetFont(r.font, "B", 10)
		pdf.CellFormat(50, lineHeight, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont(r.font, "", 10)
		pdf.CellFormat(pdfWidth-66, lineHeight, tr(row[1]), "", 1, "R", false, 0, "")
	}
}

func (r *PDFRenderer) footer(pdf *gofpdf.Fpdf, tr func(string) string, doc Document) {
	pdf.SetXY(pdfMargin, 297.0-24-10)
	pdf.SetFont(r.font, "", 10)
	pdf.SetTextColor(102, 102, 102)
	pdf.MultiCell(pdfWidth, 5, tr(doc.AmountDue()+"\n"+doc.ThankYou()), "", "C", false)
	pdf.SetTextColor(0, 0, 0)
}
