package communities

import (
	"context"

	"github.com/myhome-soft/myhome/internal/server/models"
)

// Repository stores communities and their admin membership.
type Repository interface {
	Create(ctx context.Context, community *models.Community) (*models.Community, error)
	FindByCommunityID(ctx context.Context, communityID string) (*models.Community, error)
	List(ctx context.Context, limit int, offset int) ([]*models.Community, error)
	Delete(ctx context.Context, communityID string) error
	AddAdmin(ctx context.Context, communityID string, adminUserID string) error
	RemoveAdmin(ctx context.Context, communityID string, adminUserID string) error
	FindAdmins(ctx context.Context, communityID string) ([]*models.User, error)
	FindCommunitiesByAdmin(ctx context.Context, adminUserID string) ([]*models.Community, error)
}
