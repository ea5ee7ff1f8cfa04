package domain

import (
	"errors"
	"math"
	"testing"
	"time"
)

func intPtr(n int) *int { return &n }

func TestNewInvoiceData(t *testing.T) {
	now := time.Date(2024, time.March, 14, 17, 45, 0, 0, time.Local)
	d := NewInvoiceData(now)

	if got := d.Date.Format("2006-01-02"); got != "2024-03-14" {
		t.Errorf("date = %s, want 2024-03-14", got)
	}
	if d.Date.Hour() != 0 || d.Date.Minute() != 0 {
		t.Errorf("date should carry no time of day, got %v", d.Date)
	}
	if d.Terms != TermsDueOnReceipt {
		t.Errorf("terms = %s, want %s", d.Terms, TermsDueOnReceipt)
	}
	if len(d.Items) != 1 {
		t.Fatalf("expected 1 default item, got %d", len(d.Items))
	}
	item := d.Items[0]
	if item.Quantity != 1 || item.Price != 0 || item.Description != "" {
		t.Errorf("unexpected default item: %+v", item)
	}
	if item.Key == "" {
		t.Error("default item should have a key")
	}
}

func TestNewLineItemKeysAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		key := NewLineItem().Key
		if seen[key] {
			t.Fatalf("duplicate key %s", key)
		}
		seen[key] = true
	}
}

func TestLineItemValidate(t *testing.T) {
	tests := []struct {
		name    string
		item    LineItem
		wantErr bool
	}{
		{"valid", LineItem{Quantity: 2, Price: 10.5}, false},
		{"zero", LineItem{Quantity: 0, Price: 0}, false},
		{"fractional quantity", LineItem{Quantity: 1.5, Price: 80}, false},
		{"negative quantity", LineItem{Quantity: -1, Price: 10}, true},
		{"negative price", LineItem{Quantity: 1, Price: -0.01}, true},
		{"nan quantity", LineItem{Quantity: math.NaN(), Price: 1}, true},
		{"inf price", LineItem{Quantity: 1, Price: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.item.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInvoiceDataValidate(t *testing.T) {
	base := func() *InvoiceData {
		return NewInvoiceData(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC))
	}

	tests := []struct {
		name    string
		mutate  func(d *InvoiceData)
		wantErr bool
	}{
		{"default draft", func(d *InvoiceData) {}, false},
		{"custom with days", func(d *InvoiceData) { d.SetTerms(TermsCustom, intPtr(45)) }, false},
		{"custom lower bound", func(d *InvoiceData) { d.SetTerms(TermsCustom, intPtr(1)) }, false},
		{"custom upper bound", func(d *InvoiceData) { d.SetTerms(TermsCustom, intPtr(365)) }, false},
		{"custom without days", func(d *InvoiceData) { d.SetTerms(TermsCustom, nil) }, true},
		{"custom zero days", func(d *InvoiceData) { d.SetTerms(TermsCustom, intPtr(0)) }, true},
		{"custom too many days", func(d *InvoiceData) { d.SetTerms(TermsCustom, intPtr(366)) }, true},
		{"custom days ignored for net", func(d *InvoiceData) { d.Terms = TermsNet30; d.CustomDays = intPtr(999) }, false},
		{"unknown terms", func(d *InvoiceData) { d.Terms = "net_90" }, true},
		{"zero date", func(d *InvoiceData) { d.Date = time.Time{} }, true},
		{"negative price", func(d *InvoiceData) { d.Items[0].Price = -5 }, true},
		{"missing key", func(d *InvoiceData) { d.Items[0].Key = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := base()
			tt.mutate(d)
			err := d.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInvoiceDataSetTermsDropsCustomDays(t *testing.T) {
	d := NewInvoiceData(time.Now())
	d.SetTerms(TermsCustom, intPtr(10))
	if d.EffectiveCustomDays() == nil || *d.EffectiveCustomDays() != 10 {
		t.Fatal("expected custom days to be kept for custom terms")
	}

	d.SetTerms(TermsNet15, intPtr(10))
	if d.CustomDays != nil {
		t.Error("custom days should be cleared for fixed terms")
	}
}

func TestInvoiceDataRemoveItem(t *testing.T) {
	d := NewInvoiceData(time.Now())
	first := d.Items[0]
	second := d.AddItem()
	third := d.AddItem()

	if err := d.RemoveItem(first.Key); err == nil {
		t.Error("expected error removing the first item")
	}
	if err := d.RemoveItem("missing"); err == nil {
		t.Error("expected error removing an unknown key")
	}
	if err := d.RemoveItem(second.Key); err != nil {
		t.Fatalf("RemoveItem failed: %v", err)
	}

	if len(d.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(d.Items))
	}
	if d.Items[0].Key != first.Key || d.Items[1].Key != third.Key {
		t.Error("remaining items are out of order")
	}
	if d.FindItem(third.Key) == nil {
		t.Error("FindItem should locate the third item")
	}
}

func TestParsePaymentTerms(t *testing.T) {
	tests := []struct {
		input   string
		want    PaymentTerms
		wantErr bool
	}{
		{"due_on_receipt", TermsDueOnReceipt, false},
		{"receipt", TermsDueOnReceipt, false},
		{"net_15", TermsNet15, false},
		{"Net 30", TermsNet30, false},
		{"net60", TermsNet60, false},
		{"NET-60", TermsNet60, false},
		{"custom", TermsCustom, false},
		{"net_90", "", true},
		{"weekly", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePaymentTerms(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownPaymentTerms) {
					t.Errorf("expected ErrUnknownPaymentTerms, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParsePaymentTerms(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestLegacyPaymentTerms(t *testing.T) {
	if got, ok := LegacyPaymentTerms("net_30"); !ok || got != TermsNet30 {
		t.Errorf("LegacyPaymentTerms(net_30) = %s, %v", got, ok)
	}
	if got, ok := LegacyPaymentTerms("biweekly"); ok || got != TermsDueOnReceipt {
		t.Errorf("LegacyPaymentTerms(biweekly) = %s, %v; want due_on_receipt, false", got, ok)
	}
}

func TestRecordCompleteness(t *testing.T) {
	r := &InvoiceRecord{
		Invoice: *NewInvoiceData(time.Now()),
		Personal: PersonalInfo{
			Name:    "Jane Doe",
			Address: Address{Street: "Main St 1", City: "Berlin", Zip: "10115"},
		},
		Company: CompanyInfo{
			Name:    "Acme GmbH",
			Address: Address{Street: "Market 2", City: "Hamburg", Zip: "20095"},
		},
		Bank: BankInfo{Name: "Bank", AccountTitle: "Jane Doe", IBAN: "DE00", BIC: "BICX"},
	}

	if !r.IsComplete() {
		t.Fatalf("expected complete record, violations: %v", r.Check())
	}

	r.Company.Address.Zip = "  "
	r.Bank.BIC = ""
	v := r.Check()
	if v.Empty() {
		t.Fatal("expected violations")
	}
	fields := v.Fields()
	if len(fields) != 2 || fields[0] != "bank.bic" || fields[1] != "company.address.zip" {
		t.Errorf("unexpected fields: %v", fields)
	}
	if v.Error() != "bank.bic: required, company.address.zip: required" {
		t.Errorf("unexpected message: %s", v.Error())
	}
}

func TestPersonalInfoOptionalFields(t *testing.T) {
	p := PersonalInfo{
		Name:    "Jane",
		Address: Address{Street: "a", City: "b", Zip: "c"},
	}
	if !p.IsComplete() {
		t.Error("email and tax ID should be optional")
	}
}
