package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() Document {
	return Document{
		Reference:    "QUO20250304JR001",
		CustomerName: "Acme Villas",
		ProjectName:  "Clubhouse automation",
		IssueDate:    "2025-03-04",
		Status:       "Draft",
		Lines: []Line{
			{Model: "HUB-1", Description: "Zigbee hub", Qty: 1, UnitPrice: "79.99", Amount: "79.99"},
			{Model: "BULB-1", Description: "Smart bulb", Qty: 4, UnitPrice: "9.50", Amount: "38.00"},
		},
		Subtotal:        "117.99",
		DiscountPercent: "0",
		DiscountAmount:  "0.00",
		Installation:    "30.00",
		VAT:             "20.72",
		Total:           "168.71",
	}
}

func TestRenderQuote_ProducesPDF(t *testing.T) {
	p := New()

	data, err := p.RenderQuote(context.Background(), sampleDocument())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output should be a PDF document")
}

func TestRenderContract_ProducesPDF(t *testing.T) {
	p := New()

	doc := sampleDocument()
	doc.Reference = "CTR20250304JR001"
	doc.Status = "Confirmed"

	data, err := p.RenderContract(context.Background(), doc)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderQuote_EmptyLines(t *testing.T) {
	p := New()

	doc := sampleDocument()
	doc.Lines = nil

	data, err := p.RenderQuote(context.Background(), doc)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
