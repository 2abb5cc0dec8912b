package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	authdomain "github.com/radixtech/quotehub/internal/auth/domain"
	quotedomain "github.com/radixtech/quotehub/internal/quote/domain"
)

const contextUserKey = "currentUser"

// AuthRequired resolves the session cookie to a live user and stores it on
// the request context. API callers without a valid credential get 401.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		user, err := s.authSvc.Authenticate(c.Request.Context(), raw)
		if err != nil {
			s.sessions.Clear(c)
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserKey, user)
		c.Next()
	}
}

// PageAuthRequired guards HTML pages: unauthenticated browsers are redirected
// to the login page instead of receiving a JSON error.
func (s *Server) PageAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := s.sessions.ReadToken(c)
		if !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		user, err := s.authSvc.Authenticate(c.Request.Context(), raw)
		if err != nil {
			s.sessions.Clear(c)
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// PageAdminRequired keeps admin-only pages away from regular accounts.
// Runs after PageAuthRequired, so a resolved user is already on the context.
func (s *Server) PageAdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || !user.IsAdmin() {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireCapability gates a route on the role policy.
func (s *Server) RequireCapability(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if err := s.authzSvc.Authorize(user.Role, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) *authdomain.User {
	v, ok := c.Get(contextUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*authdomain.User)
	if !ok {
		return nil
	}
	return user
}

func principalFrom(user *authdomain.User) quotedomain.Principal {
	return quotedomain.Principal{
		UserID: user.ID,
		Name:   user.Name,
		Admin:  user.IsAdmin(),
	}
}
