package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/radixtech/quotehub/internal/auth/domain"
)

type adminUserView struct {
	userView
	IsApproved bool `json:"is_approved"`
}

func adminViewOf(u authdomain.User) adminUserView {
	return adminUserView{
		userView: userView{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
			Role:  u.Role,
		},
		IsApproved: u.IsApproved,
	}
}

func (s *Server) ListUsers(c *gin.Context) {
	users, err := s.authSvc.ListUsers(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	views := make([]adminUserView, 0, len(users))
	for _, u := range users {
		views = append(views, adminViewOf(u))
	}

	// currentUserId lets the admin UI disable self-delete and self-demote
	// controls.
	c.JSON(http.StatusOK, gin.H{
		"users":         views,
		"currentUserId": strconv.FormatInt(currentUser(c).ID, 10),
	})
}

func (s *Server) CreateUser(c *gin.Context) {
	var req authdomain.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	user, err := s.authSvc.CreateUser(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": viewOf(user)})
}

func (s *Server) UpdateUser(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req authdomain.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	user, err := s.authSvc.UpdateUser(c.Request.Context(), currentUser(c).ID, id, req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": viewOf(user)})
}

func (s *Server) DeleteUser(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	if err := s.authSvc.DeleteUser(c.Request.Context(), currentUser(c).ID, id); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func (s *Server) ApproveUser(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	user, err := s.authSvc.ApproveUser(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": viewOf(user)})
}

func parseUserID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(c.Param("id")), 10, 64)
	if err != nil || id == 0 {
		return 0, ErrInvalidRequest
	}
	return id, nil
}
