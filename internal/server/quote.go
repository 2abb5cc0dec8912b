package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/radixtech/quotehub/internal/money"
	quotedomain "github.com/radixtech/quotehub/internal/quote/domain"
	"github.com/shopspring/decimal"
)

type calculateRequest struct {
	Items            []money.LineItem `json:"items"`
	InstallationCost decimal.Decimal  `json:"installationCost"`
	DiscountPercent  decimal.Decimal  `json:"discountPercent"`
}

func (s *Server) Calculate(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	totals, err := money.PriceQuote(req.Items, req.InstallationCost, req.DiscountPercent)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}

func (s *Server) SaveQuote(c *gin.Context) {
	var payload quotedomain.Payload
	if err := c.ShouldBindJSON(&payload); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	id, err := s.quoteSvc.Save(c.Request.Context(), principalFrom(currentUser(c)), payload)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (s *Server) LoadQuotes(c *gin.Context) {
	summaries, err := s.quoteSvc.ListMine(c.Request.Context(), principalFrom(currentUser(c)))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (s *Server) LoadQuote(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	payload, err := s.quoteSvc.Get(c.Request.Context(), principalFrom(currentUser(c)), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, payload)
}

func (s *Server) AllQuotes(c *gin.Context) {
	summaries, err := s.quoteSvc.ListAll(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (s *Server) ConfirmQuote(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if err := s.quoteSvc.Confirm(c.Request.Context(), id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "quote confirmed", "id": id})
}
