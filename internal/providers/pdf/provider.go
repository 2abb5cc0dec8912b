package pdf

import (
	"context"
	"errors"
)

var ErrRender = errors.New("failed to render pdf")

// Line is a priced row of a quotation document.
type Line struct {
	Model       string
	Description string
	Qty         int
	UnitPrice   string
	Amount      string
}

// Document carries everything a rendered quotation or contract needs.
// All money fields arrive pre-formatted with two decimals.
type Document struct {
	Reference    string
	CustomerName string
	ProjectName  string
	IssueDate    string
	Status       string

	Lines []Line

	Subtotal        string
	DiscountPercent string
	DiscountAmount  string
	Installation    string
	VAT             string
	Total           string
}

type Provider interface {
	RenderQuote(ctx context.Context, doc Document) ([]byte, error)
	RenderContract(ctx context.Context, doc Document) ([]byte, error)
}
