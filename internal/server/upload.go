package server

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gosimple/slug"
	"github.com/oklog/ulid/v2"
)

// UploadImage stores a product photo under a collision-free name and links
// it to the product.
func (s *Server) UploadImage(c *gin.Context) {
	model := strings.TrimSpace(c.Param("model"))
	if model == "" {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		AbortWithError(c, err)
		return
	}

	filename := fmt.Sprintf("%s_%d.png", slug.Make(model), s.now().Unix())
	if err := c.SaveUploadedFile(file, filepath.Join(s.cfg.UploadDir, filename)); err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.catalogSvc.SetImage(c.Request.Context(), model, filename); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "image uploaded",
		"filename": filename,
		"url":      "/uploads/" + filename,
	})
}

// UploadPrices ingests a spreadsheet of catalog rows. The workbook is kept
// on disk under a unique name for audit.
func (s *Server) UploadPrices(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	src, err := file.Open()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer src.Close()

	if err := os.MkdirAll(s.cfg.UploadDir, 0o755); err != nil {
		AbortWithError(c, err)
		return
	}

	storedName := fmt.Sprintf("%s_%s", ulid.Make().String(), filepath.Base(file.Filename))
	dst, err := os.Create(filepath.Join(s.cfg.UploadDir, storedName))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		AbortWithError(c, err)
		return
	}
	if err := dst.Close(); err != nil {
		AbortWithError(c, err)
		return
	}

	stored, err := os.Open(filepath.Join(s.cfg.UploadDir, storedName))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer stored.Close()

	stats, err := s.importerSvc.Import(c.Request.Context(), stored, storedName)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "import complete",
		"inserted": stats.Inserted,
		"updated":  stats.Updated,
	})
}
