package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/muhammadidrees/raseed/internal/derivation"
	"github.com/muhammadidrees/raseed/internal/domain"
	"github.com/muhammadidrees/raseed/internal/logger"
	"github.com/muhammadidrees/raseed/internal/render"
	"github.com/muhammadidrees/raseed/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var (
	ErrIncompleteRecord = errors.New("invoice record is incomplete")
	ErrUnknownPreset    = errors.New("unknown company preset")
	ErrItemNotFound     = errors.New("line item not found")
)

// IncompleteError lists the party fields that block a preview
type IncompleteError struct {
	Violations domain.Violations
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("%s: %s", ErrIncompleteRecord, e.Violations.Error())
}

func (e *IncompleteError) Unwrap() error {
	return ErrIncompleteRecord
}

// Reset scopes
const (
	ResetInvoice = "invoice"
	ResetAll     = "all"
)

// InvoiceService edits the stored drafts and turns them into invoices
type InvoiceService interface {
	// Record loads the current drafts as one record
	Record(ctx context.Context) (*domain.InvoiceRecord, error)

	SaveInvoiceData(ctx context.Context, data *domain.InvoiceData) error
	SavePersonal(ctx context.Context, info *domain.PersonalInfo) error
	SaveCompany(ctx context.Context, info *domain.CompanyInfo) error
	SaveBank(ctx context.Context, info *domain.BankInfo) error

	// ApplyCompanyPreset replaces the company draft with a configured preset
	ApplyCompanyPreset(ctx context.Context, slug string) (*domain.CompanyInfo, error)

	// AddItem appends a line item, defaulting to quantity 1 and price 0
	AddItem(ctx context.Context, description string, quantity, price float64) (domain.LineItem, error)
	UpdateItem(ctx context.Context, item domain.LineItem) error
	// RemoveItem deletes a line item; the first item cannot be removed
	RemoveItem(ctx context.Context, key string) error

	// Derive computes the invoice without checking party completeness
	Derive(ctx context.Context) (*derivation.DerivedInvoice, error)

	// Preview returns the renderable document once the record is complete
	Preview(ctx context.Context) (render.Document, error)

	// Render writes the invoice in the given format
	Render(ctx context.Context, w io.Writer, format string) error

	// Generate writes the invoice to outPath, or to the output directory when empty
	Generate(ctx context.Context, format, outPath string) (string, error)

	// Reset clears the invoice draft, or every draft for ResetAll
	Reset(ctx context.Context, scope string) error

	TaxRate() decimal.Decimal
}

// Options configures the invoice service
type Options struct {
	TaxRate   decimal.Decimal
	OutputDir string
	Presets   map[string]domain.CompanyInfo
}

type invoiceService struct {
	invoiceRepo  repository.InvoiceDataRepository
	personalRepo repository.PersonalInfoRepository
	companyRepo  repository.CompanyInfoRepository
	bankRepo     repository.BankInfoRepository
	drafts       repository.DraftResetter
	opts         Options
	log          zerolog.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceDataRepository,
	personalRepo repository.PersonalInfoRepository,
	companyRepo repository.CompanyInfoRepository,
	bankRepo repository.BankInfoRepository,
	drafts repository.DraftResetter,
	opts Options,
) InvoiceService {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		personalRepo: personalRepo,
		companyRepo:  companyRepo,
		bankRepo:     bankRepo,
		drafts:       drafts,
		opts:         opts,
		log:          logger.WithComponent("invoice_service"),
	}
}

func (s *invoiceService) TaxRate() decimal.Decimal {
	return s.opts.TaxRate
}

func (s *invoiceService) Record(ctx context.Context) (*domain.InvoiceRecord, error) {
	data, err := s.invoiceRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice data: %w", err)
	}
	personal, err := s.personalRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load personal info: %w", err)
	}
	company, err := s.companyRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load company info: %w", err)
	}
	bank, err := s.bankRepo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load bank info: %w", err)
	}

	return &domain.InvoiceRecord{
		Invoice:  *data,
		Personal: *personal,
		Company:  *company,
		Bank:     *bank,
	}, nil
}

func (s *invoiceService) SaveInvoiceData(ctx context.Context, data *domain.InvoiceData) error {
	if err := s.invoiceRepo.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save invoice data: %w", err)
	}
	return nil
}

func (s *invoiceService) SavePersonal(ctx context.Context, info *domain.PersonalInfo) error {
	if err := s.personalRepo.Save(ctx, info); err != nil {
		return fmt.Errorf("failed to save personal info: %w", err)
	}
	return nil
}

func (s *invoiceService) SaveCompany(ctx context.Context, info *domain.CompanyInfo) error {
	if err := s.companyRepo.Save(ctx, info); err != nil {
		return fmt.Errorf("failed to save company info: %w", err)
	}
	return nil
}

func (s *invoiceService) SaveBank(ctx context.Context, info *domain.BankInfo) error {
	if err := s.bankRepo.Save(ctx, info); err != nil {
		return fmt.Errorf("failed to save bank info: %w", err)
	}
	return nil
}

func (s *invoiceService) ApplyCompanyPreset(ctx context.Context, slug string) (*domain.CompanyInfo, error) {
	preset, ok := s.opts.Presets[strings.ToLower(strings.TrimSpace(slug))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, slug)
	}

	company := preset
	if err := s.SaveCompany(ctx, &company); err != nil {
		return nil, err
	}

	s.log.Info().Str("preset", slug).Msg("applied company preset")
	return &company, nil
}

func (s *invoiceService) AddItem(ctx context.Context, description string, quantity, price float64) (domain.LineItem, error) {
	data, err := s.invoiceRepo.Load(ctx)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("failed to load invoice data: %w", err)
	}

	item := data.AddItem()
	item.Description = strings.TrimSpace(description)
	item.Quantity = quantity
	item.Price = price
	data.Items[len(data.Items)-1] = item

	if err := item.Validate(); err != nil {
		return domain.LineItem{}, fmt.Errorf("invalid line item: %w", err)
	}
	if err := s.SaveInvoiceData(ctx, data); err != nil {
		return domain.LineItem{}, err
	}
	return item, nil
}

func (s *invoiceService) UpdateItem(ctx context.Context, item domain.LineItem) error {
	if err := item.Validate(); err != nil {
		return fmt.Errorf("invalid line item: %w", err)
	}

	data, err := s.invoiceRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load invoice data: %w", err)
	}

	existing := data.FindItem(item.Key)
	if existing == nil {
		return fmt.Errorf("%w: %s", ErrItemNotFound, item.Key)
	}
	*existing = item

	return s.SaveInvoiceData(ctx, data)
}

func (s *invoiceService) RemoveItem(ctx context.Context, key string) error {
	data, err := s.invoiceRepo.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load invoice data: %w", err)
	}

	if data.FindItem(key) == nil {
		return fmt.Errorf("%w: %s", ErrItemNotFound, key)
	}
	if err := data.RemoveItem(key); err != nil {
		return err
	}

	return s.SaveInvoiceData(ctx, data)
}

func (s *invoiceService) Derive(ctx context.Context) (*derivation.DerivedInvoice, error) {
	record, err := s.Record(ctx)
	if err != nil {
		return nil, err
	}
	return derivation.Derive(*record, s.opts.TaxRate)
}

func (s *invoiceService) Preview(ctx context.Context) (render.Document, error) {
	record, err := s.Record(ctx)
	if err != nil {
		return render.Document{}, err
	}

	if v := record.Check(); !v.Empty() {
		return render.Document{}, &IncompleteError{Violations: v}
	}

	inv, err := derivation.Derive(*record, s.opts.TaxRate)
	if err != nil {
		return render.Document{}, err
	}

	return render.NewDocument(*record, inv), nil
}

func (s *invoiceService) Render(ctx context.Context, w io.Writer, format string) error {
	renderer, err := render.ForFormat(format)
	if err != nil {
		return err
	}

	doc, err := s.Preview(ctx)
	if err != nil {
		return err
	}

	if err := renderer.Render(w, doc); err != nil {
		return fmt.Errorf("failed to render %s: %w", format, err)
	}
	return nil
}

func (s *invoiceService) Generate(ctx context.Context, format, outPath string) (string, error) {
	renderer, err := render.ForFormat(format)
	if err != nil {
		return "", err
	}

	doc, err := s.Preview(ctx)
	if err != nil {
		return "", err
	}

	if outPath == "" {
		outPath = filepath.Join(s.opts.OutputDir, render.FileName(doc, renderer))
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", outPath, err)
	}

	if err := renderer.Render(f, doc); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to render %s: %w", format, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	s.log.Info().
		Str("invoice_number", doc.Invoice.Number).
		Str("format", renderer.Extension()).
		Str("path", outPath).
		Msg("generated invoice")

	return outPath, nil
}

func (s *invoiceService) Reset(ctx context.Context, scope string) error {
	var keys []string
	switch scope {
	case ResetInvoice, "":
		keys = []string{repository.KeyInvoiceData}
	case ResetAll:
		keys = repository.AllKeys
	default:
		return fmt.Errorf("unknown reset scope %q", scope)
	}

	if err := s.drafts.Reset(ctx, keys...); err != nil {
		return fmt.Errorf("failed to reset drafts: %w", err)
	}
	return nil
}
