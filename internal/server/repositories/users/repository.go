// Package users provides the PostgreSQL-backed repository for user accounts.
package users

import (
	"context"

	"github.com/myhome-soft/myhome/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUserID(ctx context.Context, userID string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]*models.User, error)
	UpdatePassword(ctx context.Context, userID, encryptedPassword string) error
	ConfirmEmail(ctx context.Context, userID string) error
}
