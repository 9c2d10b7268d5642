package amenities

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/myhome-soft/myhome/internal/common"
	"github.com/myhome-soft/myhome/internal/dbx"
	"github.com/myhome-soft/myhome/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, amenity *models.Amenity) (*models.Amenity, error) {
	query := `
		INSERT INTO amenities (amenity_id, community_id, name, description, price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		amenity.AmenityID, amenity.CommunityID, amenity.Name, amenity.Description, amenity.Price).Scan(&amenity.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return amenity, nil
}

func (r *PostgresRepository) FindByAmenityID(ctx context.Context, amenityID string) (*models.Amenity, error) {
	query := `
		SELECT id, amenity_id, community_id, name, description, price
		FROM amenities
		WHERE amenity_id = $1
	`
	a := &models.Amenity{}
	err := r.db.QueryRowContext(ctx, query, amenityID).Scan(&a.ID, &a.AmenityID, &a.CommunityID, &a.Name, &a.Description, &a.Price)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

func (r *PostgresRepository) ListByCommunity(ctx context.Context, communityID string) ([]*models.Amenity, error) {
	query := `
		SELECT id, amenity_id, community_id, name, description, price
		FROM amenities
		WHERE community_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, communityID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Amenity
	for rows.Next() {
		a := &models.Amenity{}
		if err := rows.Scan(&a.ID, &a.AmenityID, &a.CommunityID, &a.Name, &a.Description, &a.Price); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, amenity *models.Amenity) error {
	query := `
		UPDATE amenities SET name = $2, description = $3, price = $4
		WHERE amenity_id = $1
	`
	res, err := r.db.ExecContext(ctx, query, amenity.AmenityID, amenity.Name, amenity.Description, amenity.Price)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, amenityID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM amenities WHERE amenity_id = $1`, amenityID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) CreateBooking(ctx context.Context, booking *models.AmenityBooking) (*models.AmenityBooking, error) {
	query := `
		INSERT INTO amenity_bookings (booking_id, amenity_id, member_id, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		booking.BookingID, booking.AmenityID, booking.MemberID, booking.StartDate, booking.EndDate).Scan(&booking.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return booking, nil
}

func (r *PostgresRepository) DeleteBooking(ctx context.Context, amenityID string, bookingID string) error {
	query := `
		DELETE FROM amenity_bookings
		WHERE amenity_id = $1 AND booking_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, amenityID, bookingID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}
