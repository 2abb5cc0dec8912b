// Package money implements the exact-decimal pricing engine.
//
// All monetary values are decimals; nothing here round-trips through binary
// floating point. Rounding is half-up to two fractional digits, applied only
// where the totals contract says so.
package money

import (
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

// VATRate is the single fixed VAT rate (14%).
var VATRate = decimal.NewFromInt(14).Div(decimal.NewFromInt(100))

var (
	ErrInvalidQuantity     = errors.New("invalid_quantity")
	ErrInvalidPrice        = errors.New("invalid_price")
	ErrInvalidInstallation = errors.New("invalid_installation")
	ErrInvalidDiscount     = errors.New("invalid_discount")
)

var oneHundred = decimal.NewFromInt(100)

// LineItem is a priced quantity of one catalog model. Price is the snapshot
// taken at quote save time, not the live catalog price.
type LineItem struct {
	Model       string          `json:"model"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
}

// Totals is the full breakdown for a quotation.
type Totals struct {
	Subtotal        decimal.Decimal
	DiscountPercent decimal.Decimal
	DiscountAmount  decimal.Decimal
	Installation    decimal.Decimal
	TaxableBase     decimal.Decimal
	VAT             decimal.Decimal
	GrandTotal      decimal.Decimal
}

// MarshalJSON serializes every amount as a fixed two-decimal string so the
// boundary never sees a binary float.
func (t Totals) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{
		"subtotal":        t.Subtotal.StringFixed(2),
		"discountPercent": t.DiscountPercent.StringFixed(2),
		"discountAmount":  t.DiscountAmount.StringFixed(2),
		"installation":    t.Installation.StringFixed(2),
		"vat":             t.VAT.StringFixed(2),
		"total":           t.GrandTotal.StringFixed(2),
	})
}

// PriceQuote computes totals for a set of line items.
//
//	subtotal        = sum(price * quantity), unrounded
//	discount_amount = round(subtotal * discount/100)
//	taxable_base    = subtotal - discount_amount + installation
//	vat             = round(taxable_base * VATRate)
//	grand_total     = taxable_base + vat
func PriceQuote(items []LineItem, installation, discountPercent decimal.Decimal) (Totals, error) {
	if installation.IsNegative() {
		return Totals{}, ErrInvalidInstallation
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(oneHundred) {
		return Totals{}, ErrInvalidDiscount
	}

	subtotal := decimal.Zero
	for _, item := range items {
		if item.Quantity < 1 {
			return Totals{}, ErrInvalidQuantity
		}
		if item.Price.IsNegative() {
			return Totals{}, ErrInvalidPrice
		}
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	discountAmount := subtotal.Mul(discountPercent.Div(oneHundred)).Round(2)
	taxableBase := subtotal.Sub(discountAmount).Add(installation)
	vat := taxableBase.Mul(VATRate).Round(2)

	return Totals{
		Subtotal:        subtotal,
		DiscountPercent: discountPercent,
		DiscountAmount:  discountAmount,
		Installation:    installation,
		TaxableBase:     taxableBase,
		VAT:             vat,
		GrandTotal:      taxableBase.Add(vat),
	}, nil
}
