package derivation

import (
	"errors"
	"fmt"
	"math"

	"github.com/muhammadidrees/raseed/internal/domain"
	"github.com/shopspring/decimal"
)

// CurrencySymbol is appended to every formatted amount
const CurrencySymbol = "€"

var ErrInvalidLineItem = errors.New("invalid line item")

// LineItemError identifies the item that could not be aggregated
type LineItemError struct {
	Index int
	Key   string
	Field string
	Value float64
}

func (e *LineItemError) Error() string {
	return fmt.Sprintf("item %d (%s): %s %v is not a finite non-negative number", e.Index+1, e.Key, e.Field, e.Value)
}

func (e *LineItemError) Unwrap() error {
	return ErrInvalidLineItem
}

var hundred = decimal.NewFromInt(100)

// Totals holds aggregated amounts at full precision
type Totals struct {
	LineTotals []decimal.Decimal
	Subtotal   decimal.Decimal
	Tax        decimal.Decimal
	Total      decimal.Decimal
}

func toDecimal(i int, item domain.LineItem, field string, v float64) (decimal.Decimal, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return decimal.Zero, &LineItemError{Index: i, Key: item.Key, Field: field, Value: v}
	}
	return decimal.NewFromFloat(v), nil
}

// Aggregate computes line totals, subtotal, tax and total.
// taxRate is a percentage. An empty item list yields zero totals.
func Aggregate(items []domain.LineItem, taxRate decimal.Decimal) (Totals, error) {
	totals := Totals{
		LineTotals: make([]decimal.Decimal, 0, len(items)),
		Subtotal:   decimal.Zero,
	}

	for i, item := range items {
		qty, err := toDecimal(i, item, "quantity", item.Quantity)
		if err != nil {
			return Totals{}, err
		}
		price, err := toDecimal(i, item, "price", item.Price)
		if err != nil {
			return Totals{}, err
		}

		line := qty.Mul(price)
		totals.LineTotals = append(totals.LineTotals, line)
		totals.Subtotal = totals.Subtotal.Add(line)
	}

	totals.Tax = totals.Subtotal.Mul(taxRate).Div(hundred)
	totals.Total = totals.Subtotal.Add(totals.Tax)
	return totals, nil
}

// ShowTax reports whether the tax line belongs on the document
func ShowTax(taxRate decimal.Decimal) bool {
	return taxRate.IsPositive()
}

// FormatNumber renders d with exactly two decimals
func FormatNumber(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatAmount renders d as "<amount> €"
func FormatAmount(d decimal.Decimal) string {
	return FormatNumber(d) + " " + CurrencySymbol
}
