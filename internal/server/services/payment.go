package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/myhome-soft/myhome/internal/server/models"
	"github.com/myhome-soft/myhome/internal/server/repositories"
)

// PaymentService schedules and looks up member payments.
type PaymentService struct {
	db          *sql.DB
	repomanager repositories.RepositoryManager
}

func NewPaymentService(db *sql.DB, m repositories.RepositoryManager) *PaymentService {
	return &PaymentService{db: db, repomanager: m}
}

// SchedulePayment creates a payment for a house member. The member and the
// scheduling admin must both exist.
func (s *PaymentService) SchedulePayment(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	if _, err := s.repomanager.Houses(s.db).FindMemberByMemberID(ctx, payment.MemberID); err != nil {
		return nil, err
	}
	if _, err := s.repomanager.Users(s.db).FindByUserID(ctx, payment.AdminID); err != nil {
		return nil, err
	}

	payment.PaymentID = uuid.NewString()
	return s.repomanager.Payments(s.db).Create(ctx, payment)
}

func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	return s.repomanager.Payments(s.db).FindByPaymentID(ctx, paymentID)
}

func (s *PaymentService) ListPaymentsByMember(ctx context.Context, memberID string) ([]*models.Payment, error) {
	if _, err := s.repomanager.Houses(s.db).FindMemberByMemberID(ctx, memberID); err != nil {
		return nil, err
	}
	return s.repomanager.Payments(s.db).ListByMember(ctx, memberID)
}

func (s *PaymentService) ListPaymentsByAdmin(ctx context.Context, adminID string) ([]*models.Payment, error) {
	if _, err := s.repomanager.Users(s.db).FindByUserID(ctx, adminID); err != nil {
		return nil, err
	}
	return s.repomanager.Payments(s.db).ListByAdmin(ctx, adminID)
}
