package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) DashboardStats(c *gin.Context) {
	stats, err := s.dashboardSvc.Stats(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
