package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/myhome-soft/myhome/internal/server/models"
)

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type userResponse struct {
	UserID         string `json:"userId"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	EmailConfirmed bool   `json:"emailConfirmed"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		UserID:         u.UserID,
		Name:           u.Name,
		Email:          u.Email,
		EmailConfirmed: u.EmailConfirmed,
	}
}

func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	user, err := s.users.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (s *Server) handleConfirmEmail(c *gin.Context) {
	err := s.users.ConfirmEmail(c.Request.Context(), c.Param("userID"), c.Param("token"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) handleResendEmailConfirm(c *gin.Context) {
	if err := s.users.ResendEmailConfirm(c.Request.Context(), c.Param("userID")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (s *Server) handleForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if err := s.users.RequestResetPassword(c.Request.Context(), req.Email); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

type resetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

func (s *Server) handleResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	if err := s.users.ResetPassword(c.Request.Context(), req.Email, req.Token, req.NewPassword); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (s *Server) handleGetUser(c *gin.Context) {
	user, err := s.users.GetUser(c.Request.Context(), c.Param("userID"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

// pagination reads limit/offset query parameters with sane bounds.
func pagination(c *gin.Context) (limit int, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit < 1 || limit > 200 {
		limit = 50
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func (s *Server) handleListUsers(c *gin.Context) {
	limit, offset := pagination(c)

	users, err := s.users.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toUserResponse(u))
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}
