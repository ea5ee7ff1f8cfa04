package domain

import (
	"errors"
	"fmt"
	"strings"
)

// PaymentTerms selects the payment window of an invoice
type PaymentTerms string

const (
	TermsDueOnReceipt PaymentTerms = "due_on_receipt"
	TermsNet15        PaymentTerms = "net_15"
	TermsNet30        PaymentTerms = "net_30"
	TermsNet60        PaymentTerms = "net_60"
	TermsCustom       PaymentTerms = "custom"
)

const (
	MinCustomDays = 1
	MaxCustomDays = 365
)

var ErrUnknownPaymentTerms = errors.New("unknown payment terms")

// AllPaymentTerms lists the terms in the order they are offered to the user
var AllPaymentTerms = []PaymentTerms{
	TermsDueOnReceipt,
	TermsNet15,
	TermsNet30,
	TermsNet60,
	TermsCustom,
}

// IsValid returns true if t is one of the known terms
func (t PaymentTerms) IsValid() bool {
	switch t {
	case TermsDueOnReceipt, TermsNet15, TermsNet30, TermsNet60, TermsCustom:
		return true
	}
	return false
}

// FixedDays returns the day offset of a fixed tier.
// ok is false for custom and unknown terms.
func (t PaymentTerms) FixedDays() (days int, ok bool) {
	switch t {
	case TermsDueOnReceipt:
		return 0, true
	case TermsNet15:
		return 15, true
	case TermsNet30:
		return 30, true
	case TermsNet60:
		return 60, true
	}
	return 0, false
}

// ParsePaymentTerms parses user input such as "net_30", "net30" or "Net 30"
func ParsePaymentTerms(s string) (PaymentTerms, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	switch norm {
	case "net15":
		norm = "net_15"
	case "net30":
		norm = "net_30"
	case "net60":
		norm = "net_60"
	case "receipt", "due_on_receipt", "":
		norm = "due_on_receipt"
	}

	t := PaymentTerms(norm)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownPaymentTerms, s)
	}
	return t, nil
}

// LegacyPaymentTerms converts stored or external data that bypassed input
// validation. Unrecognised values degrade to due on receipt; ok reports
// whether the value was recognised.
func LegacyPaymentTerms(s string) (t PaymentTerms, ok bool) {
	t, err := ParsePaymentTerms(s)
	if err != nil {
		return TermsDueOnReceipt, false
	}
	return t, true
}
