package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"github.com/radixtech/quotehub/internal/money"
	"github.com/radixtech/quotehub/internal/providers/pdf"
	quotedomain "github.com/radixtech/quotehub/internal/quote/domain"
	"github.com/radixtech/quotehub/internal/quote/reference"
	"github.com/shopspring/decimal"
)

func buildDocument(payload *quotedomain.Payload, ref, status string, issued time.Time) (pdf.Document, error) {
	totals, err := money.PriceQuote(payload.Items, payload.InstallationCost, payload.DiscountPercent)
	if err != nil {
		return pdf.Document{}, err
	}

	lines := make([]pdf.Line, 0, len(payload.Items))
	for _, item := range payload.Items {
		amount := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		lines = append(lines, pdf.Line{
			Model:       item.Model,
			Description: item.Description,
			Qty:         item.Quantity,
			UnitPrice:   item.Price.StringFixed(2),
			Amount:      amount.StringFixed(2),
		})
	}

	return pdf.Document{
		Reference:       ref,
		CustomerName:    payload.CustomerName,
		ProjectName:     payload.ProjectName,
		IssueDate:       issued.Format("2006-01-02"),
		Status:          status,
		Lines:           lines,
		Subtotal:        totals.Subtotal.StringFixed(2),
		DiscountPercent: payload.DiscountPercent.String(),
		DiscountAmount:  totals.DiscountAmount.StringFixed(2),
		Installation:    totals.Installation.StringFixed(2),
		VAT:             totals.VAT.StringFixed(2),
		Total:           totals.GrandTotal.StringFixed(2),
	}, nil
}

func servePDF(c *gin.Context, name string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+name+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// ExportPDF renders an ad-hoc quotation straight from the request body,
// without requiring a saved quote.
func (s *Server) ExportPDF(c *gin.Context) {
	var payload quotedomain.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	ref := strings.TrimSpace(payload.ID)
	if ref == "" {
		ref = "QUO-DRAFT-" + ulid.Make().String()
	}

	doc, err := buildDocument(&payload, ref, quotedomain.StatusDraft, s.now())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data, err := s.pdfProvider.RenderQuote(c.Request.Context(), doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	servePDF(c, ref, data)
}

func (s *Server) UserQuotePDF(c *gin.Context) {
	s.renderStoredQuote(c, principalFrom(currentUser(c)))
}

func (s *Server) AdminQuotePDF(c *gin.Context) {
	s.renderStoredQuote(c, adminPrincipal(c))
}

func (s *Server) renderStoredQuote(c *gin.Context, principal quotedomain.Principal) {
	id := strings.TrimSpace(c.Param("id"))
	record, payload, err := s.quoteSvc.GetRecord(c.Request.Context(), principal, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	doc, err := buildDocument(payload, record.ID, record.Status, record.CreatedAt)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data, err := s.pdfProvider.RenderQuote(c.Request.Context(), doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	servePDF(c, record.ID, data)
}

func (s *Server) UserGenerateContract(c *gin.Context) {
	s.renderContract(c, principalFrom(currentUser(c)))
}

func (s *Server) AdminGenerateContract(c *gin.Context) {
	s.renderContract(c, adminPrincipal(c))
}

// renderContract produces the signed-sale document. Only Confirmed quotes
// have a contract.
func (s *Server) renderContract(c *gin.Context, principal quotedomain.Principal) {
	id := strings.TrimSpace(c.Param("id"))
	record, payload, err := s.quoteSvc.GetRecord(c.Request.Context(), principal, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if record.Status != quotedomain.StatusConfirmed {
		AbortWithError(c, quotedomain.ErrNotConfirmed)
		return
	}

	ref := reference.ContractRef(record.ID)
	doc, err := buildDocument(payload, ref, record.Status, record.CreatedAt)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	data, err := s.pdfProvider.RenderContract(c.Request.Context(), doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	servePDF(c, ref, data)
}

// adminPrincipal bypasses ownership checks; callers are already gated by
// the role policy.
func adminPrincipal(c *gin.Context) quotedomain.Principal {
	p := principalFrom(currentUser(c))
	p.Admin = true
	return p
}
