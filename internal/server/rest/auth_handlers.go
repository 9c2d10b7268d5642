package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myhome-soft/myhome/internal/common"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// handleLogin verifies credentials and returns the identity in response
// headers: userId carries the public user id and token the signed bearer
// token. The body stays empty. Unknown accounts and wrong passwords are
// indistinguishable to the caller.
func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	userID, token, err := s.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) || errors.Is(err, common.ErrCredentialsIncorrect) {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		s.writeError(c, err)
		return
	}

	c.Header("userId", userID)
	c.Header("token", token)
	c.Status(http.StatusOK)
}
