package payments

import (
	"context"

	"github.com/myhome-soft/myhome/internal/server/models"
)

// Repository stores payments scheduled for house members.
type Repository interface {
	Create(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	FindByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error)
	ListByMember(ctx context.Context, memberID string) ([]*models.Payment, error)
	ListByAdmin(ctx context.Context, adminID string) ([]*models.Payment, error)
}
