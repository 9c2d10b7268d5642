package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/myhome-soft/myhome/internal/common"
)

// writeError maps service errors onto HTTP statuses. Anything unrecognized
// becomes a bare 500; internals are logged, never echoed to the client.
func (s *Server) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		c.AbortWithStatus(http.StatusNotFound)
	case errors.Is(err, common.ErrEmailTaken):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case errors.Is(err, common.ErrTokenInvalid),
		errors.Is(err, common.ErrTokenExpired),
		errors.Is(err, common.ErrTokenAlreadyUsed):
		c.AbortWithStatus(http.StatusBadRequest)
	case errors.Is(err, common.ErrUnauthorized):
		c.AbortWithStatus(http.StatusUnauthorized)
	default:
		s.logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
