package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/muhammadidrees/raseed/internal/domain"
	"github.com/muhammadidrees/raseed/internal/repository"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// mock implementations
type mockInvoiceDataRepo struct {
	data  *domain.InvoiceData
	saved int
}

func (m *mockInvoiceDataRepo) Load(ctx context.Context) (*domain.InvoiceData, error) {
	if m.data == nil {
		return domain.NewInvoiceData(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)), nil
	}
	// return a copy so edits only stick after Save
	cp := *m.data
	cp.Items = append([]domain.LineItem(nil), m.data.Items...)
	return &cp, nil
}
func (m *mockInvoiceDataRepo) Save(ctx context.Context, data *domain.InvoiceData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	m.data = data
	m.saved++
	return nil
}

type mockPartyRepo[T any] struct {
	value T
	err   error
}

func (m *mockPartyRepo[T]) Load(ctx context.Context) (*T, error) {
	if m.err != nil {
		return nil, m.err
	}
	v := m.value
	return &v, nil
}
func (m *mockPartyRepo[T]) Save(ctx context.Context, v *T) error {
	m.value = *v
	return nil
}

type mockResetter struct {
	keys []string
}

func (m *mockResetter) Reset(ctx context.Context, keys ...string) error {
	m.keys = keys
	return nil
}

type fixture struct {
	svc      *invoiceService
	invoice  *mockInvoiceDataRepo
	personal *mockPartyRepo[domain.PersonalInfo]
	company  *mockPartyRepo[domain.CompanyInfo]
	bank     *mockPartyRepo[domain.BankInfo]
	drafts   *mockResetter
}

func newFixture(t *testing.T, complete bool) *fixture {
	t.Helper()

	f := &fixture{
		invoice:  &mockInvoiceDataRepo{},
		personal: &mockPartyRepo[domain.PersonalInfo]{},
		company:  &mockPartyRepo[domain.CompanyInfo]{},
		bank:     &mockPartyRepo[domain.BankInfo]{},
		drafts:   &mockResetter{},
	}

	if complete {
		f.personal.value = domain.PersonalInfo{Name: "Jane Doe", Address: domain.Address{Street: "Main 1", City: "Berlin", Zip: "10115"}}
		f.company.value = domain.CompanyInfo{Name: "Acme GmbH", Address: domain.Address{Street: "Market 2", City: "Hamburg", Zip: "20095"}}
		f.bank.value = domain.BankInfo{Name: "Bank", AccountTitle: "Jane Doe", IBAN: "DE00", BIC: "BIC"}
	}

	f.svc = &invoiceService{
		invoiceRepo:  f.invoice,
		personalRepo: f.personal,
		companyRepo:  f.company,
		bankRepo:     f.bank,
		drafts:       f.drafts,
		opts: Options{
			TaxRate:   decimal.Zero,
			OutputDir: t.TempDir(),
			Presets: map[string]domain.CompanyInfo{
				"makula": {Name: "Makula Technology GmbH", Address: domain.Address{Street: "c/o Mindspace Münzstr. 12", City: "Germany", Zip: "10178 Berlin"}},
			},
		},
		log: zerolog.Nop(),
	}
	return f
}

func TestAddUpdateRemoveItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	added, err := f.svc.AddItem(ctx, "  Consulting ", 2, 100)
	if err != nil {
		t.Fatalf("AddItem failed: %v", err)
	}
	if added.Description != "Consulting" || added.Key == "" {
		t.Errorf("unexpected item: %+v", added)
	}
	if len(f.invoice.data.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(f.invoice.data.Items))
	}

	added.Price = 120
	if err := f.svc.UpdateItem(ctx, added); err != nil {
		t.Fatalf("UpdateItem failed: %v", err)
	}
	if f.invoice.data.Items[1].Price != 120 {
		t.Errorf("price = %v, want 120", f.invoice.data.Items[1].Price)
	}

	first := f.invoice.data.Items[0].Key
	if err := f.svc.RemoveItem(ctx, first); err == nil {
		t.Error("expected error removing the first item")
	}
	if err := f.svc.RemoveItem(ctx, "missing"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
	if err := f.svc.RemoveItem(ctx, added.Key); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}
	if len(f.invoice.data.Items) != 1 {
		t.Errorf("expected 1 item after removal, got %d", len(f.invoice.data.Items))
	}
}

func TestAddItemRejectsNegativePrice(t *testing.T) {
	f := newFixture(t, true)

	if _, err := f.svc.AddItem(context.Background(), "Refund", 1, -10); err == nil {
		t.Fatal("expected error for negative price")
	}
	if f.invoice.saved != 0 {
		t.Error("invalid item should not be saved")
	}
}

func TestUpdateItemUnknownKey(t *testing.T) {
	f := newFixture(t, true)

	err := f.svc.UpdateItem(context.Background(), domain.LineItem{Key: "nope", Quantity: 1})
	if !errors.Is(err, ErrItemNotFound) {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestPreviewRequiresCompleteRecord(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.Preview(context.Background())
	if !errors.Is(err, ErrIncompleteRecord) {
		t.Fatalf("expected ErrIncompleteRecord, got %v", err)
	}

	var incomplete *IncompleteError
	if !errors.As(err, &incomplete) {
		t.Fatalf("expected *IncompleteError, got %T", err)
	}
	if _, ok := incomplete.Violations["bank.iban"]; !ok {
		t.Errorf("violations should name bank.iban: %v", incomplete.Violations)
	}
}

func TestPreview(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	data := domain.NewInvoiceData(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	data.Terms = domain.TermsNet15
	data.Items[0].Quantity = 2
	data.Items[0].Price = 100
	f.invoice.data = data

	doc, err := f.svc.Preview(ctx)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}

	if doc.Invoice.Number != "000124" {
		t.Errorf("number = %s", doc.Invoice.Number)
	}
	if doc.Invoice.DueDateText != "04/02/2024" {
		t.Errorf("due = %s, want 04/02/2024", doc.Invoice.DueDateText)
	}
	if doc.Company.Name != "Acme GmbH" {
		t.Errorf("company = %s", doc.Company.Name)
	}
}

func TestDeriveSkipsCompletenessCheck(t *testing.T) {
	f := newFixture(t, false)

	inv, err := f.svc.Derive(context.Background())
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if !inv.Total.IsZero() {
		t.Errorf("default draft total = %s, want 0", inv.Total)
	}
}

func TestRecordPropagatesLoadErrors(t *testing.T) {
	f := newFixture(t, true)
	f.bank.err = errors.New("disk on fire")

	if _, err := f.svc.Record(context.Background()); err == nil || !strings.Contains(err.Error(), "bank") {
		t.Errorf("expected bank load error, got %v", err)
	}
}

func TestApplyCompanyPreset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, false)

	company, err := f.svc.ApplyCompanyPreset(ctx, "Makula")
	if err != nil {
		t.Fatalf("ApplyCompanyPreset failed: %v", err)
	}
	if company.Name != "Makula Technology GmbH" || f.company.value.Address.Zip != "10178 Berlin" {
		t.Errorf("preset not saved: %+v", f.company.value)
	}

	if _, err := f.svc.ApplyCompanyPreset(ctx, "globex"); !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestRenderText(t *testing.T) {
	f := newFixture(t, true)

	var buf bytes.Buffer
	if err := f.svc.Render(context.Background(), &buf, "txt"); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Payment is due upon receipt of this invoice.") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}

	if err := f.svc.Render(context.Background(), &buf, "docx"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	path, err := f.svc.Generate(ctx, "pdf", "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if filepath.Base(path) != "invoice-000124.pdf" {
		t.Errorf("path = %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read generated file: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("generated file is not a PDF")
	}

	custom := filepath.Join(t.TempDir(), "out", "my-invoice.txt")
	path, err = f.svc.Generate(ctx, "txt", custom)
	if err != nil {
		t.Fatalf("Generate to custom path failed: %v", err)
	}
	if path != custom {
		t.Errorf("path = %s, want %s", path, custom)
	}
}

func TestGenerateIncomplete(t *testing.T) {
	f := newFixture(t, false)

	if _, err := f.svc.Generate(context.Background(), "pdf", ""); !errors.Is(err, ErrIncompleteRecord) {
		t.Errorf("expected ErrIncompleteRecord, got %v", err)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, true)

	if err := f.svc.Reset(ctx, ResetInvoice); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if len(f.drafts.keys) != 1 || f.drafts.keys[0] != repository.KeyInvoiceData {
		t.Errorf("keys = %v", f.drafts.keys)
	}

	if err := f.svc.Reset(ctx, ResetAll); err != nil {
		t.Fatalf("Reset all failed: %v", err)
	}
	if len(f.drafts.keys) != len(repository.AllKeys) {
		t.Errorf("keys = %v", f.drafts.keys)
	}

	if err := f.svc.Reset(ctx, "clients"); err == nil {
		t.Error("expected error for unknown scope")
	}
}
