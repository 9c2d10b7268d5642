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

// AmenityService manages a community's bookable amenities.
type AmenityService struct {
	db          *sql.DB
	repomanager repositories.RepositoryManager
}

func NewAmenityService(db *sql.DB, m repositories.RepositoryManager) *AmenityService {
	return &AmenityService{db: db, repomanager: m}
}

// AmenityInput holds the caller-supplied fields of a new amenity.
type AmenityInput struct {
	Name        string
	Description string
	Price       float64
}

// CreateAmenities registers amenities in a community. The community must
// exist; unknown ids yield common.ErrNotFound.
func (s *AmenityService) CreateAmenities(ctx context.Context, communityID string, inputs []AmenityInput) ([]*models.Amenity, error) {
	if _, err := s.repomanager.Communities(s.db).FindByCommunityID(ctx, communityID); err != nil {
		return nil, err
	}

	var amenities []*models.Amenity

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Amenities(tx)
		for _, input := range inputs {
			amenity, err := repo.Create(ctx, &models.Amenity{
				AmenityID:   uuid.NewString(),
				CommunityID: communityID,
				Name:        input.Name,
				Description: input.Description,
				Price:       input.Price,
			})
			if err != nil {
				return fmt.Errorf("error creating amenity: %w", err)
			}
			amenities = append(amenities, amenity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return amenities, nil
}

func (s *AmenityService) GetAmenity(ctx context.Context, amenityID string) (*models.Amenity, error) {
	return s.repomanager.Amenities(s.db).FindByAmenityID(ctx, amenityID)
}

func (s *AmenityService) ListAmenitiesByCommunity(ctx context.Context, communityID string) ([]*models.Amenity, error) {
	if _, err := s.repomanager.Communities(s.db).FindByCommunityID(ctx, communityID); err != nil {
		return nil, err
	}
	return s.repomanager.Amenities(s.db).ListByCommunity(ctx, communityID)
}

func (s *AmenityService) UpdateAmenity(ctx context.Context, amenityID string, input AmenityInput) error {
	return s.repomanager.Amenities(s.db).Update(ctx, &models.Amenity{
		AmenityID:   amenityID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
	})
}

func (s *AmenityService) DeleteAmenity(ctx context.Context, amenityID string) error {
	return s.repomanager.Amenities(s.db).Delete(ctx, amenityID)
}

// BookAmenity reserves an amenity for a member over a time range.
func (s *AmenityService) BookAmenity(ctx context.Context, booking *models.AmenityBooking) (*models.AmenityBooking, error) {
	if _, err := s.repomanager.Amenities(s.db).FindByAmenityID(ctx, booking.AmenityID); err != nil {
		return nil, err
	}

	booking.BookingID = uuid.NewString()
	return s.repomanager.Amenities(s.db).CreateBooking(ctx, booking)
}

func (s *AmenityService) DeleteBooking(ctx context.Context, amenityID string, bookingID string) error {
	return s.repomanager.Amenities(s.db).DeleteBooking(ctx, amenityID, bookingID)
}
