// Package securitytokens persists the single-use tokens backing email
// confirmation and password reset.
package securitytokens

import (
	"context"

	"github.com/myhome-soft/myhome/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, token *models.SecurityToken) (*models.SecurityToken, error)
	FindByOwner(ctx context.Context, ownerUserID string) ([]*models.SecurityToken, error)

	// Consume marks the token used. The update is conditional on the token
	// still being unused, which makes concurrent consumption of the same
	// token value succeed exactly once.
	Consume(ctx context.Context, token string) error

	// DeleteUnusedByType removes the owner's pending tokens of one type,
	// used when a fresh confirmation token supersedes earlier ones.
	DeleteUnusedByType(ctx context.Context, ownerUserID string, tokenType models.SecurityTokenType) error
}
