package rest

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/myhome-soft/myhome/internal/server/models"
)

type schedulePaymentRequest struct {
	Charge      float64   `json:"charge" binding:"required,gt=0"`
	Type        string    `json:"type" binding:"required"`
	Description string    `json:"description"`
	Recurring   bool      `json:"recurring"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
	MemberID    string    `json:"memberId" binding:"required"`
}

type paymentResponse struct {
	PaymentID   string    `json:"paymentId"`
	Charge      float64   `json:"charge"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Recurring   bool      `json:"recurring"`
	DueDate     time.Time `json:"dueDate"`
	AdminID     string    `json:"adminId"`
	MemberID    string    `json:"memberId"`
}

func toPaymentResponse(p *models.Payment) paymentResponse {
	return paymentResponse{
		PaymentID:   p.PaymentID,
		Charge:      p.Charge,
		Type:        p.Type,
		Description: p.Description,
		Recurring:   p.Recurring,
		DueDate:     p.DueDate,
		AdminID:     p.AdminID,
		MemberID:    p.MemberID,
	}
}

// handleSchedulePayment creates a payment charged to a member. The admin is
// always the authenticated caller; it cannot be set from the body.
func (s *Server) handleSchedulePayment(c *gin.Context) {
	var req schedulePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	payment, err := s.payments.SchedulePayment(c.Request.Context(), &models.Payment{
		Charge:      req.Charge,
		Type:        req.Type,
		Description: req.Description,
		Recurring:   req.Recurring,
		DueDate:     req.DueDate,
		AdminID:     c.GetString(ctxUserIDKey),
		MemberID:    req.MemberID,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPaymentResponse(payment))
}

func (s *Server) handleGetPayment(c *gin.Context) {
	payment, err := s.payments.GetPayment(c.Request.Context(), c.Param("paymentID"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(payment))
}

func (s *Server) handleListMemberPayments(c *gin.Context) {
	payments, err := s.payments.ListPaymentsByMember(c.Request.Context(), c.Param("memberID"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"payments": out})
}

func (s *Server) handleListAdminPayments(c *gin.Context) {
	payments, err := s.payments.ListPaymentsByAdmin(c.Request.Context(), c.Param("adminID"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	c.JSON(http.StatusOK, gin.H{"payments": out})
}
