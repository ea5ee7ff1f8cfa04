package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LineItem is one billable row of the invoice
type LineItem struct {
	Key         string  `json:"key"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
}

// NewLineItem creates an empty item with quantity 1 and a fresh key
func NewLineItem() LineItem {
	return LineItem{
		Key:      uuid.NewString(),
		Quantity: 1,
		Price:    0,
	}
}

// Validate returns an error if quantity or price is negative or not finite
func (li LineItem) Validate() error {
	if math.IsNaN(li.Quantity) || math.IsInf(li.Quantity, 0) {
		return errors.New("quantity must be a finite number")
	}
	if li.Quantity < 0 {
		return errors.New("quantity cannot be negative")
	}
	if math.IsNaN(li.Price) || math.IsInf(li.Price, 0) {
		return errors.New("price must be a finite number")
	}
	if li.Price < 0 {
		return errors.New("price cannot be negative")
	}
	return nil
}

// InvoiceData is the invoice part of a record: date, terms and items
type InvoiceData struct {
	Date       time.Time
	Terms      PaymentTerms
	CustomDays *int
	Items      []LineItem
}

// NewInvoiceData creates the default draft: due on receipt with one empty item
func NewInvoiceData(date time.Time) *InvoiceData {
	return &InvoiceData{
		Date:  DateOf(date),
		Terms: TermsDueOnReceipt,
		Items: []LineItem{NewLineItem()},
	}
}

// DateOf drops the time of day, keeping the calendar date of t
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EffectiveCustomDays returns the custom day count when it applies to the terms
func (d *InvoiceData) EffectiveCustomDays() *int {
	if d.Terms != TermsCustom {
		return nil
	}
	return d.CustomDays
}

// SetTerms changes the terms, dropping custom days unless terms is custom
func (d *InvoiceData) SetTerms(terms PaymentTerms, customDays *int) {
	d.Terms = terms
	if terms == TermsCustom {
		d.CustomDays = customDays
	} else {
		d.CustomDays = nil
	}
}

// AddItem appends a fresh item and returns it
func (d *InvoiceData) AddItem() LineItem {
	item := NewLineItem()
	d.Items = append(d.Items, item)
	return item
}

// RemoveItem deletes the item with the given key. The first item cannot be removed.
func (d *InvoiceData) RemoveItem(key string) error {
	for i, item := range d.Items {
		if item.Key != key {
			continue
		}
		if i == 0 {
			return errors.New("the first line item cannot be removed")
		}
		d.Items = append(d.Items[:i], d.Items[i+1:]...)
		return nil
	}
	return fmt.Errorf("line item not found: %s", key)
}

// FindItem returns a pointer to the item with the given key, or nil
func (d *InvoiceData) FindItem(key string) *LineItem {
	for i := range d.Items {
		if d.Items[i].Key == key {
			return &d.Items[i]
		}
	}
	return nil
}

// Validate returns an error if the invoice data is invalid
func (d *InvoiceData) Validate() error {
	if d.Date.IsZero() {
		return errors.New("invoice date is required")
	}
	if !d.Terms.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownPaymentTerms, string(d.Terms))
	}
	if d.Terms == TermsCustom {
		if d.CustomDays == nil {
			return errors.New("custom terms require a number of days")
		}
		if *d.CustomDays < MinCustomDays || *d.CustomDays > MaxCustomDays {
			return fmt.Errorf("custom days must be between %d and %d", MinCustomDays, MaxCustomDays)
		}
	}
	for i, item := range d.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
		if strings.TrimSpace(item.Key) == "" {
			return fmt.Errorf("item %d: key is required", i+1)
		}
	}
	return nil
}

// InvoiceRecord is everything needed to derive an invoice
type InvoiceRecord struct {
	Invoice  InvoiceData
	Personal PersonalInfo
	Company  CompanyInfo
	Bank     BankInfo
}

// Check returns the party fields still missing before a preview can be made
func (r *InvoiceRecord) Check() Violations {
	v := Violations{}
	v.Merge(r.Personal.Check())
	v.Merge(r.Company.Check())
	v.Merge(r.Bank.Check())
	return v
}

// IsComplete returns true if the issuer, payer and bank records are complete
func (r *InvoiceRecord) IsComplete() bool {
	return r.Check().Empty()
}
