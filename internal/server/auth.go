package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/radixtech/quotehub/internal/auth/domain"
	"github.com/radixtech/quotehub/internal/auth/token"
)

type userView struct {
	ID    int64  `json:"id,string"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func viewOf(u *authdomain.User) userView {
	return userView{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

func (s *Server) Register(c *gin.Context) {
	var req authdomain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	user, err := s.authSvc.Register(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registration received, awaiting approval",
		"user":    viewOf(user),
	})
}

func (s *Server) Login(c *gin.Context) {
	var req authdomain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	signed, user, err := s.authSvc.Login(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.sessions.Set(c, signed, s.now().Add(token.TokenTTL))
	c.JSON(http.StatusOK, gin.H{"user": viewOf(user)})
}

func (s *Server) Logout(c *gin.Context) {
	s.sessions.Clear(c)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (s *Server) AuthStatus(c *gin.Context) {
	raw, ok := s.sessions.ReadToken(c)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	user, err := s.authSvc.Authenticate(c.Request.Context(), raw)
	if err != nil {
		s.sessions.Clear(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          viewOf(user),
	})
}
