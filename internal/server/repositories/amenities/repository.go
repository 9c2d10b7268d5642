package amenities

import (
	"context"

	"github.com/myhome-soft/myhome/internal/server/models"
)

// Repository stores amenities and their bookings.
type Repository interface {
	Create(ctx context.Context, amenity *models.Amenity) (*models.Amenity, error)
	FindByAmenityID(ctx context.Context, amenityID string) (*models.Amenity, error)
	ListByCommunity(ctx context.Context, communityID string) ([]*models.Amenity, error)
	Update(ctx context.Context, amenity *models.Amenity) error
	Delete(ctx context.Context, amenityID string) error

	CreateBooking(ctx context.Context, booking *models.AmenityBooking) (*models.AmenityBooking, error)
	DeleteBooking(ctx context.Context, amenityID string, bookingID string) error
}
