package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/muhammadidrees/raseed/internal/db"
	"github.com/muhammadidrees/raseed/internal/domain"
	"github.com/rs/zerolog"
)

func openTestStore(t *testing.T) *DraftStore {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"), "test-key")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.RunMigrations(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return NewDraftStore(database)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newTestInvoiceRepo(store *DraftStore, now time.Time) *InvoiceDataRepo {
	repo := NewInvoiceDataRepo(store)
	repo.now = fixedClock(now)
	repo.log = zerolog.Nop()
	return repo
}

func TestInvoiceDataRepoLoadDefault(t *testing.T) {
	ctx := context.Background()
	today := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	repo := newTestInvoiceRepo(openTestStore(t), today)

	data, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if data.Date.Format(dateLayout) != "2024-06-03" {
		t.Errorf("date = %s, want today", data.Date.Format(dateLayout))
	}
	if data.Terms != domain.TermsDueOnReceipt {
		t.Errorf("terms = %s", data.Terms)
	}
	if len(data.Items) != 1 || data.Items[0].Quantity != 1 {
		t.Errorf("unexpected default items: %+v", data.Items)
	}
}

func TestInvoiceDataRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestInvoiceRepo(openTestStore(t), time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))

	days := 45
	data := domain.NewInvoiceData(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	data.SetTerms(domain.TermsCustom, &days)
	data.Items[0].Description = "Consulting"
	data.Items[0].Quantity = 2
	data.Items[0].Price = 100
	second := data.AddItem()
	data.Items[1].Description = "Support"
	data.Items[1].Price = 50

	if err := repo.Save(ctx, data); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Date.Format(dateLayout) != "2024-01-20" {
		t.Errorf("date = %s", loaded.Date.Format(dateLayout))
	}
	if loaded.Terms != domain.TermsCustom || loaded.CustomDays == nil || *loaded.CustomDays != 45 {
		t.Errorf("terms not preserved: %s %v", loaded.Terms, loaded.CustomDays)
	}
	if len(loaded.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(loaded.Items))
	}
	if loaded.Items[1].Key != second.Key || loaded.Items[1].Description != "Support" {
		t.Errorf("second item not preserved: %+v", loaded.Items[1])
	}
}

func TestInvoiceDataRepoSaveRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	repo := newTestInvoiceRepo(openTestStore(t), time.Now())

	data := domain.NewInvoiceData(time.Now())
	data.SetTerms(domain.TermsCustom, nil)

	if err := repo.Save(ctx, data); err == nil {
		t.Error("expected error saving custom terms without days")
	}
}

func TestInvoiceDataRepoLegacyDraft(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	today := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	repo := newTestInvoiceRepo(store, today)

	legacy := map[string]any{
		"date":     "2023-11-05T10:22:41.123Z",
		"dueTerms": "net_90",
		"items": []map[string]any{
			{"description": "Old item", "quantity": 3, "price": 12.5},
		},
	}
	if err := store.put(ctx, KeyInvoiceData, legacy); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	data, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if data.Date.Format(dateLayout) != "2023-11-05" {
		t.Errorf("date = %s, want 2023-11-05", data.Date.Format(dateLayout))
	}
	if data.Terms != domain.TermsDueOnReceipt {
		t.Errorf("unknown terms should fall back to due on receipt, got %s", data.Terms)
	}
	if len(data.Items) != 1 || data.Items[0].Key == "" || data.Items[0].Price != 12.5 {
		t.Errorf("unexpected items: %+v", data.Items)
	}
}

func TestInvoiceDataRepoUnreadableDate(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	today := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	repo := newTestInvoiceRepo(store, today)

	if err := store.put(ctx, KeyInvoiceData, map[string]any{"date": "yesterday-ish", "dueTerms": "net_15"}); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	data, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !data.Date.Equal(domain.DateOf(today)) {
		t.Errorf("date = %v, want today", data.Date)
	}
	if data.Terms != domain.TermsNet15 {
		t.Errorf("terms = %s", data.Terms)
	}
	if len(data.Items) != 1 {
		t.Errorf("missing items should become the default item, got %d", len(data.Items))
	}
}

func TestPartyRepos(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	personal := NewPersonalInfoRepo(store)
	company := NewCompanyInfoRepo(store)
	bank := NewBankInfoRepo(store)

	empty, err := personal.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if empty.Name != "" {
		t.Errorf("expected empty personal info, got %+v", empty)
	}

	p := &domain.PersonalInfo{Name: "Jane", Email: "jane@example.com", TaxID: "DE123", Address: domain.Address{Street: "Main 1", City: "Berlin", Zip: "10115"}}
	c := &domain.CompanyInfo{Name: "Acme", Address: domain.Address{Street: "Market 2", City: "Hamburg", Zip: "20095"}}
	b := &domain.BankInfo{Name: "Bank", AccountTitle: "Jane", IBAN: "DE89370400440532013000", BIC: "COBADEFFXXX"}

	if err := personal.Save(ctx, p); err != nil {
		t.Fatalf("save personal: %v", err)
	}
	if err := company.Save(ctx, c); err != nil {
		t.Fatalf("save company: %v", err)
	}
	if err := bank.Save(ctx, b); err != nil {
		t.Fatalf("save bank: %v", err)
	}

	gotP, _ := personal.Load(ctx)
	gotC, _ := company.Load(ctx)
	gotB, _ := bank.Load(ctx)

	if *gotP != *p {
		t.Errorf("personal = %+v, want %+v", gotP, p)
	}
	if *gotC != *c {
		t.Errorf("company = %+v, want %+v", gotC, c)
	}
	if *gotB != *b {
		t.Errorf("bank = %+v, want %+v", gotB, b)
	}

	// overwrite
	p.Name = "Jane Doe"
	if err := personal.Save(ctx, p); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	gotP, _ = personal.Load(ctx)
	if gotP.Name != "Jane Doe" {
		t.Errorf("name = %s after overwrite", gotP.Name)
	}
}

func TestDraftStoreReset(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)
	personal := NewPersonalInfoRepo(store)
	bank := NewBankInfoRepo(store)

	_ = personal.Save(ctx, &domain.PersonalInfo{Name: "Jane"})
	_ = bank.Save(ctx, &domain.BankInfo{Name: "Bank"})

	if err := store.Reset(ctx, KeyBank); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	gotB, _ := bank.Load(ctx)
	gotP, _ := personal.Load(ctx)
	if gotB.Name != "" {
		t.Error("bank draft should be cleared")
	}
	if gotP.Name != "Jane" {
		t.Error("personal draft should be kept")
	}

	if err := store.Reset(ctx); err != nil {
		t.Fatalf("Reset all failed: %v", err)
	}
	gotP, _ = personal.Load(ctx)
	if gotP.Name != "" {
		t.Error("personal draft should be cleared by full reset")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"2024-02-29", "2024-02-29", false},
		{"2024-02-29T23:10:00Z", "2024-02-29", false},
		{"2024-02-29T23:10:00.512+02:00", "2024-02-29", false},
		{"29/02/2024", "", true},
	}

	for _, tt := range tests {
		got, err := parseDate(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseDate(%q) error = %v", tt.in, err)
			continue
		}
		if !tt.wantErr && got.Format(dateLayout) != tt.want {
			t.Errorf("parseDate(%q) = %s, want %s", tt.in, got.Format(dateLayout), tt.want)
		}
	}
}
