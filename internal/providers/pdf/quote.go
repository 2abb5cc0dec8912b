package pdf

import (
	"context"
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

const companyName = "Radix Tech"

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) RenderQuote(ctx context.Context, doc Document) ([]byte, error) {
	return p.render("Quotation", doc, false)
}

func (p *PDFProvider) RenderContract(ctx context.Context, doc Document) ([]byte, error) {
	return p.render("Sales Contract", doc, true)
}

func (p *PDFProvider) render(title string, doc Document, contract bool) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, companyName, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
		}),
		text.NewCol(4, title, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Reference: "+doc.Reference, props.Text{Top: 0}),
			text.New("Date: "+doc.IssueDate, props.Text{Top: 4}),
			text.New("Status: "+doc.Status, props.Text{Top: 8}),
		),
		col.New(6).Add(
			text.New("Customer: "+doc.CustomerName, props.Text{Top: 0}),
			text.New("Project: "+doc.ProjectName, props.Text{Top: 4}),
		),
	)

	// Table header
	m.AddRow(10,
		text.NewCol(3, "Model", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(4, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(1, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, line := range doc.Lines {
		m.AddRow(8,
			text.NewCol(3, line.Model, props.Text{Size: 9}),
			text.NewCol(4, line.Description, props.Text{Size: 9}),
			text.NewCol(1, fmt.Sprintf("%d", line.Qty), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, line.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, doc.Subtotal, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Discount ("+doc.DiscountPercent+"%)", props.Text{Size: 9}),
		text.NewCol(2, "-"+doc.DiscountAmount, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Installation", props.Text{Size: 9}),
		text.NewCol(2, doc.Installation, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "VAT (14%)", props.Text{Size: 9}),
		text.NewCol(2, doc.VAT, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, doc.Total, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)

	if contract {
		m.AddRow(30,
			col.New(6).Add(
				text.New("Supplier signature", props.Text{Top: 12, Size: 9}),
				text.New("_______________________", props.Text{Top: 16, Size: 9}),
			),
			col.New(6).Add(
				text.New("Customer signature", props.Text{Top: 12, Size: 9}),
				text.New("_______________________", props.Text{Top: 16, Size: 9}),
			),
		)
	}

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return out.GetBytes(), nil
}
