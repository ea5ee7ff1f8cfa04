package derivation

import (
	"fmt"
	"time"

	"github.com/muhammadidrees/raseed/internal/domain"
)

// DateLayout renders dates as DD/MM/YYYY
const DateLayout = "02/01/2006"

// FormatDate renders the calendar date of t as DD/MM/YYYY
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// TermDays returns the number of days the terms allow for payment.
// Custom terms without a positive day count, and unknown terms, allow zero days.
func TermDays(terms domain.PaymentTerms, customDays *int) int {
	if terms == domain.TermsCustom {
		if customDays == nil || *customDays <= 0 {
			return 0
		}
		return *customDays
	}
	days, _ := terms.FixedDays()
	return days
}

// ResolveDueDate adds the payment window of terms to the invoice date.
// Day addition rolls over months and years and respects leap years.
func ResolveDueDate(invoiceDate time.Time, terms domain.PaymentTerms, customDays *int) time.Time {
	return domain.DateOf(invoiceDate).AddDate(0, 0, TermDays(terms, customDays))
}

// GenerateInvoiceNumber returns 00MMYY for the month and year of the invoice date.
// Invoices dated in the same month share a number.
func GenerateInvoiceNumber(invoiceDate time.Time) string {
	y, m, _ := invoiceDate.Date()
	return fmt.Sprintf("00%02d%02d", int(m), y%100)
}

// MonthBounds returns the first and last day of the month containing t
func MonthBounds(t time.Time) (first, last time.Time) {
	y, m, _ := t.Date()
	first = time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	// day 0 of the next month is the last day of this one
	last = time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC)
	return first, last
}

// GeneratePeriod returns "DD/MM/YYYY - DD/MM/YYYY" spanning the invoice month
func GeneratePeriod(invoiceDate time.Time) string {
	first, last := MonthBounds(invoiceDate)
	return FormatDate(first) + " - " + FormatDate(last)
}
