package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/airsight/airsight/services/api/auth"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// handleLogin exchanges credentials for an access token
// POST /api/login
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}

	p, err := s.deps.Users.Authenticate(req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}
	if err != nil {
		abortError(c, http.StatusInternalServerError, err.Error())
		return
	}

	token, err := s.deps.Tokens.Issue(p)
	if err != nil {
		s.log.Error("issue token", zap.Error(err))
		abortError(c, http.StatusInternalServerError, "could not issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"role":  p.Role,
	})
}

// handleMe describes the authenticated caller
// GET /api/me
func (s *Server) handleMe(c *gin.Context) {
	p, _ := auth.FromContext(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"email":         p.Email,
			"role":          p.Role,
			"role_label":    p.Role.Label(),
			"default_route": p.Role.DefaultRoute(),
		},
	})
}
