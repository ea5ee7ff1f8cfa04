package derivation

import (
	"fmt"

	"github.com/muhammadidrees/raseed/internal/domain"
)

func hasCustomDays(customDays *int) bool {
	return customDays != nil && *customDays > 0
}

// DescribeTerms returns the human readable label of the payment terms
func DescribeTerms(terms domain.PaymentTerms, customDays *int) string {
	switch terms {
	case domain.TermsDueOnReceipt:
		return "Due on Receipt"
	case domain.TermsNet15:
		return "Net 15"
	case domain.TermsNet30:
		return "Net 30"
	case domain.TermsNet60:
		return "Net 60"
	case domain.TermsCustom:
		if hasCustomDays(customDays) {
			return fmt.Sprintf("Net %d", *customDays)
		}
		return "Custom"
	default:
		return "Due on Receipt"
	}
}

const receiptClause = "due upon receipt of this invoice"

// PaymentSentence returns the clause describing when payment is owed,
// e.g. "due within 30 days of invoice date".
func PaymentSentence(terms domain.PaymentTerms, customDays *int) string {
	switch terms {
	case domain.TermsNet15, domain.TermsNet30, domain.TermsNet60:
		days, _ := terms.FixedDays()
		return fmt.Sprintf("due within %d days of invoice date", days)
	case domain.TermsCustom:
		if hasCustomDays(customDays) {
			return fmt.Sprintf("due within %d days of invoice date", *customDays)
		}
		return receiptClause
	default:
		return receiptClause
	}
}
