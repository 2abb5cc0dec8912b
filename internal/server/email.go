package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/radixtech/quotehub/internal/money"
	"github.com/radixtech/quotehub/internal/providers/email"
	quotedomain "github.com/radixtech/quotehub/internal/quote/domain"
)

// GenerateEmail drafts a follow-up message for a quotation. The quote does
// not have to be saved; the body is priced from the submitted payload.
func (s *Server) GenerateEmail(c *gin.Context) {
	var payload quotedomain.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	totals, err := money.PriceQuote(payload.Items, payload.InstallationCost, payload.DiscountPercent)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	draft, err := s.emailSvc.Compose(c.Request.Context(),
		strings.TrimSpace(payload.CustomerName),
		strings.TrimSpace(payload.ID),
		totals.GrandTotal.StringFixed(2),
	)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, draft)
}

type sendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func (s *Server) SendEmail(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	err := s.emailSvc.Send(c.Request.Context(), req.To, email.Draft{
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email sent"})
}
