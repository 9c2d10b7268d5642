package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/myhome-soft/myhome/internal/dbx"
	"github.com/myhome-soft/myhome/internal/server/models"
	"github.com/myhome-soft/myhome/internal/server/repositories"
)

// CommunityService manages communities and their admin membership.
type CommunityService struct {
	db          *sql.DB
	repomanager repositories.RepositoryManager
}

func NewCommunityService(db *sql.DB, m repositories.RepositoryManager) *CommunityService {
	return &CommunityService{db: db, repomanager: m}
}

// CreateCommunity creates a community and enrolls the creating user as its
// first admin, in one transaction.
func (s *CommunityService) CreateCommunity(ctx context.Context, name string, district string, creatorUserID string) (*models.Community, error) {
	community := &models.Community{
		CommunityID: uuid.NewString(),
		Name:        name,
		District:    district,
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Communities(tx)

		var err error
		community, err = repo.Create(ctx, community)
		if err != nil {
			return fmt.Errorf("error creating community: %w", err)
		}

		return repo.AddAdmin(ctx, community.CommunityID, creatorUserID)
	})
	if err != nil {
		return nil, err
	}

	return community, nil
}

func (s *CommunityService) GetCommunity(ctx context.Context, communityID string) (*models.Community, error) {
	return s.repomanager.Communities(s.db).FindByCommunityID(ctx, communityID)
}

func (s *CommunityService) ListCommunities(ctx context.Context, limit int, offset int) ([]*models.Community, error) {
	return s.repomanager.Communities(s.db).List(ctx, limit, offset)
}

func (s *CommunityService) DeleteCommunity(ctx context.Context, communityID string) error {
	return s.repomanager.Communities(s.db).Delete(ctx, communityID)
}

// AddAdmins enrolls users as admins of an existing community. The community
// must exist; unknown ids yield common.ErrNotFound.
func (s *CommunityService) AddAdmins(ctx context.Context, communityID string, adminUserIDs []string) error {
	if _, err := s.repomanager.Communities(s.db).FindByCommunityID(ctx, communityID); err != nil {
		return err
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Communities(tx)
		for _, adminID := range adminUserIDs {
			if err := repo.AddAdmin(ctx, communityID, adminID); err != nil {
				return fmt.Errorf("error adding admin %s: %w", adminID, err)
			}
		}
		return nil
	})
}

func (s *CommunityService) RemoveAdmin(ctx context.Context, communityID string, adminUserID string) error {
	return s.repomanager.Communities(s.db).RemoveAdmin(ctx, communityID, adminUserID)
}

// FindCommunityAdmins returns the admins of a community. An unknown
// community yields common.ErrNotFound rather than an empty list.
func (s *CommunityService) FindCommunityAdmins(ctx context.Context, communityID string) ([]*models.User, error) {
	if _, err := s.repomanager.Communities(s.db).FindByCommunityID(ctx, communityID); err != nil {
		return nil, err
	}
	return s.repomanager.Communities(s.db).FindAdmins(ctx, communityID)
}

func (s *CommunityService) ListCommunitiesByAdmin(ctx context.Context, adminUserID string) ([]*models.Community, error) {
	return s.repomanager.Communities(s.db).FindCommunitiesByAdmin(ctx, adminUserID)
}

// IsCommunityAdmin reports whether the user administers the community.
// Unknown communities yield common.ErrNotFound.
func (s *CommunityService) IsCommunityAdmin(ctx context.Context, communityID string, userID string) (bool, error) {
	admins, err := s.FindCommunityAdmins(ctx, communityID)
	if err != nil {
		return false, err
	}
	for _, admin := range admins {
		if admin.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}
