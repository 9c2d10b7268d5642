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

// HouseService manages community houses and their members.
type HouseService struct {
	db          *sql.DB
	repomanager repositories.RepositoryManager
}

func NewHouseService(db *sql.DB, m repositories.RepositoryManager) *HouseService {
	return &HouseService{db: db, repomanager: m}
}

// AddHouses registers houses in a community. The community must exist.
func (s *HouseService) AddHouses(ctx context.Context, communityID string, names []string) ([]*models.CommunityHouse, error) {
	if _, err := s.repomanager.Communities(s.db).FindByCommunityID(ctx, communityID); err != nil {
		return nil, err
	}

	var houses []*models.CommunityHouse

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Houses(tx)
		for _, name := range names {
			house, err := repo.Create(ctx, &models.CommunityHouse{
				HouseID:     uuid.NewString(),
				CommunityID: communityID,
				Name:        name,
			})
			if err != nil {
				return fmt.Errorf("error creating house: %w", err)
			}
			houses = append(houses, house)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return houses, nil
}

func (s *HouseService) GetHouse(ctx context.Context, houseID string) (*models.CommunityHouse, error) {
	return s.repomanager.Houses(s.db).FindByHouseID(ctx, houseID)
}

func (s *HouseService) ListHouses(ctx context.Context, limit int, offset int) ([]*models.CommunityHouse, error) {
	return s.repomanager.Houses(s.db).List(ctx, limit, offset)
}

func (s *HouseService) ListHousesByCommunity(ctx context.Context, communityID string) ([]*models.CommunityHouse, error) {
	if _, err := s.repomanager.Communities(s.db).FindByCommunityID(ctx, communityID); err != nil {
		return nil, err
	}
	return s.repomanager.Houses(s.db).ListByCommunity(ctx, communityID)
}

// DeleteHouse removes a house together with its members.
func (s *HouseService) DeleteHouse(ctx context.Context, houseID string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Houses(tx)

		members, err := repo.ListMembers(ctx, houseID)
		if err != nil {
			return err
		}
		for _, member := range members {
			if err := repo.DeleteMember(ctx, houseID, member.MemberID); err != nil {
				return err
			}
		}

		return repo.Delete(ctx, houseID)
	})
}

// AddMembers registers residents in a house. The house must exist.
func (s *HouseService) AddMembers(ctx context.Context, houseID string, names []string) ([]*models.HouseMember, error) {
	if _, err := s.repomanager.Houses(s.db).FindByHouseID(ctx, houseID); err != nil {
		return nil, err
	}

	var members []*models.HouseMember

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Houses(tx)
		for _, name := range names {
			member, err := repo.AddMember(ctx, &models.HouseMember{
				MemberID: uuid.NewString(),
				HouseID:  houseID,
				Name:     name,
			})
			if err != nil {
				return fmt.Errorf("error adding member: %w", err)
			}
			members = append(members, member)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (s *HouseService) ListMembers(ctx context.Context, houseID string) ([]*models.HouseMember, error) {
	if _, err := s.repomanager.Houses(s.db).FindByHouseID(ctx, houseID); err != nil {
		return nil, err
	}
	return s.repomanager.Houses(s.db).ListMembers(ctx, houseID)
}

func (s *HouseService) DeleteMember(ctx context.Context, houseID string, memberID string) error {
	return s.repomanager.Houses(s.db).DeleteMember(ctx, houseID, memberID)
}
