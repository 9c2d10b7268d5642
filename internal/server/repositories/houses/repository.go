package houses

import (
	"context"

	"github.com/myhome-soft/myhome/internal/server/models"
)

// Repository stores community houses and their members.
type Repository interface {
	Create(ctx context.Context, house *models.CommunityHouse) (*models.CommunityHouse, error)
	FindByHouseID(ctx context.Context, houseID string) (*models.CommunityHouse, error)
	List(ctx context.Context, limit int, offset int) ([]*models.CommunityHouse, error)
	ListByCommunity(ctx context.Context, communityID string) ([]*models.CommunityHouse, error)
	Delete(ctx context.Context, houseID string) error

	AddMember(ctx context.Context, member *models.HouseMember) (*models.HouseMember, error)
	FindMemberByMemberID(ctx context.Context, memberID string) (*models.HouseMember, error)
	ListMembers(ctx context.Context, houseID string) ([]*models.HouseMember, error)
	DeleteMember(ctx context.Context, houseID string, memberID string) error
}
