package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/radixtech/quotehub/internal/catalog/domain"
)

// Curated bundles offered alongside individual products, keyed by package
// name with model -> quantity entries so clients can price them against the
// catalog.
var packages = map[string]map[string]int{
	"1BR Platinum": {"MixPad M2 black L&N connection": 1},
	"2BR Silver":   {"MixPad 7 Ultra Silver": 1},
}

func (s *Server) ListProducts(c *gin.Context) {
	grouped, err := s.catalogSvc.ListGrouped(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, grouped)
}

func (s *Server) ListPackages(c *gin.Context) {
	c.JSON(http.StatusOK, packages)
}

type updateStockRequest struct {
	Model string `json:"model"`
	Stock int    `json:"stock"`
}

func (s *Server) UpdateStock(c *gin.Context) {
	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := s.catalogSvc.SetStock(c.Request.Context(), strings.TrimSpace(req.Model), req.Stock); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "stock updated"})
}

func (s *Server) CreateProduct(c *gin.Context) {
	var req catalogdomain.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	product, err := s.catalogSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": product})
}

func (s *Server) UpdateProduct(c *gin.Context) {
	model := strings.TrimSpace(c.Param("model"))

	var req catalogdomain.UpsertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	product, err := s.catalogSvc.Update(c.Request.Context(), model, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": product})
}

func (s *Server) DeleteProduct(c *gin.Context) {
	model := strings.TrimSpace(c.Param("model"))
	if err := s.catalogSvc.Delete(c.Request.Context(), model); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (s *Server) ClearCatalog(c *gin.Context) {
	if err := s.catalogSvc.Clear(c.Request.Context()); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "catalog cleared"})
}

func (s *Server) BulkLinkImages(c *gin.Context) {
	result, err := s.linker.Link(c.Request.Context(), s.cfg.UploadDir)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"linked":  result.Linked,
		"updated": result.UpdatedModels,
	})
}
