package repository

import (
	"context"

	"github.com/muhammadidrees/raseed/internal/domain"
)

// Fixed keys under which each draft is stored
const (
	KeyInvoiceData = "invoiceData"
	KeyPersonal    = "personalFormData"
	KeyCompany     = "companyFormData"
	KeyBank        = "bankFormData"
)

// AllKeys lists every draft key
var AllKeys = []string{KeyInvoiceData, KeyPersonal, KeyCompany, KeyBank}

// InvoiceDataRepository persists the invoice draft (date, terms, items).
// Load returns the default draft when nothing is stored.
type InvoiceDataRepository interface {
	Load(ctx context.Context) (*domain.InvoiceData, error)
	Save(ctx context.Context, data *domain.InvoiceData) error
}

// PersonalInfoRepository persists the issuer details
type PersonalInfoRepository interface {
	Load(ctx context.Context) (*domain.PersonalInfo, error)
	Save(ctx context.Context, info *domain.PersonalInfo) error
}

// CompanyInfoRepository persists the billed company details
type CompanyInfoRepository interface {
	Load(ctx context.Context) (*domain.CompanyInfo, error)
	Save(ctx context.Context, info *domain.CompanyInfo) error
}

// BankInfoRepository persists the payment details
type BankInfoRepository interface {
	Load(ctx context.Context) (*domain.BankInfo, error)
	Save(ctx context.Context, info *domain.BankInfo) error
}

// DraftResetter clears stored drafts
type DraftResetter interface {
	Reset(ctx context.Context, keys ...string) error
}
