package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestPriceQuote_Breakdown(t *testing.T) {
	items := []LineItem{
		{Model: "HUB-1", Price: dec("100"), Quantity: 2},
		{Model: "BULB-1", Price: dec("50"), Quantity: 1},
	}

	totals, err := PriceQuote(items, dec("30"), dec("10"))
	require.NoError(t, err)

	assert.Equal(t, "250.00", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "25.00", totals.DiscountAmount.StringFixed(2))
	assert.Equal(t, "255.00", totals.TaxableBase.StringFixed(2))
	assert.Equal(t, "35.70", totals.VAT.StringFixed(2))
	assert.Equal(t, "290.70", totals.GrandTotal.StringFixed(2))
}

func TestPriceQuote_RoundingBoundary(t *testing.T) {
	// 0.05 * 0.14 = 0.0070, which rounds half-up to 0.01.
	items := []LineItem{{Model: "M", Price: dec("0.05"), Quantity: 1}}

	totals, err := PriceQuote(items, decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	assert.Equal(t, "0.05", totals.Subtotal.StringFixed(2))
	assert.Equal(t, "0.01", totals.VAT.StringFixed(2))
	assert.Equal(t, "0.06", totals.GrandTotal.StringFixed(2))
}

func TestPriceQuote_GrandTotalIdentity(t *testing.T) {
	items := []LineItem{
		{Model: "A", Price: dec("19.99"), Quantity: 3},
		{Model: "B", Price: dec("0.01"), Quantity: 7},
		{Model: "C", Price: dec("1234.56"), Quantity: 1},
	}

	totals, err := PriceQuote(items, dec("12.34"), dec("7.5"))
	require.NoError(t, err)

	want := totals.Subtotal.Sub(totals.DiscountAmount).Add(totals.Installation).Add(totals.VAT)
	assert.True(t, totals.GrandTotal.Equal(want),
		"grand total %s != %s", totals.GrandTotal, want)
}

func TestPriceQuote_ZeroDiscount(t *testing.T) {
	items := []LineItem{{Model: "A", Price: dec("80"), Quantity: 1}}

	totals, err := PriceQuote(items, dec("20"), decimal.Zero)
	require.NoError(t, err)

	assert.True(t, totals.DiscountAmount.IsZero())
	// (80 + 20) * 1.14 = 114.00
	assert.Equal(t, "114.00", totals.GrandTotal.StringFixed(2))
}

func TestPriceQuote_EmptyItems(t *testing.T) {
	totals, err := PriceQuote(nil, decimal.Zero, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "0.00", totals.GrandTotal.StringFixed(2))
}

func TestPriceQuote_Validation(t *testing.T) {
	tests := []struct {
		name         string
		items        []LineItem
		installation decimal.Decimal
		discount     decimal.Decimal
		wantErr      error
	}{
		{
			name:    "zero quantity",
			items:   []LineItem{{Model: "A", Price: dec("10"), Quantity: 0}},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "negative quantity",
			items:   []LineItem{{Model: "A", Price: dec("10"), Quantity: -2}},
			wantErr: ErrInvalidQuantity,
		},
		{
			name:    "negative price",
			items:   []LineItem{{Model: "A", Price: dec("-0.01"), Quantity: 1}},
			wantErr: ErrInvalidPrice,
		},
		{
			name:         "negative installation",
			items:        []LineItem{{Model: "A", Price: dec("10"), Quantity: 1}},
			installation: dec("-5"),
			wantErr:      ErrInvalidInstallation,
		},
		{
			name:     "discount above 100",
			items:    []LineItem{{Model: "A", Price: dec("10"), Quantity: 1}},
			discount: dec("100.01"),
			wantErr:  ErrInvalidDiscount,
		},
		{
			name:     "negative discount",
			items:    []LineItem{{Model: "A", Price: dec("10"), Quantity: 1}},
			discount: dec("-1"),
			wantErr:  ErrInvalidDiscount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PriceQuote(tt.items, tt.installation, tt.discount)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTotals_MarshalJSON(t *testing.T) {
	items := []LineItem{{Model: "A", Price: dec("100"), Quantity: 1}}
	totals, err := PriceQuote(items, decimal.Zero, decimal.Zero)
	require.NoError(t, err)

	raw, err := json.Marshal(totals)
	require.NoError(t, err)

	var out map[string]string
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "100.00", out["subtotal"])
	assert.Equal(t, "14.00", out["vat"])
	assert.Equal(t, "114.00", out["total"])
}

func TestLineItem_UnmarshalNumericPrice(t *testing.T) {
	var item LineItem
	require.NoError(t, json.Unmarshal([]byte(`{"model":"A","price":19.99,"quantity":2}`), &item))
	assert.Equal(t, "19.99", item.Price.String())

	require.NoError(t, json.Unmarshal([]byte(`{"model":"A","price":"7.25","quantity":1}`), &item))
	assert.Equal(t, "7.25", item.Price.String())
}
