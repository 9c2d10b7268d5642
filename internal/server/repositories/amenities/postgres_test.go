package amenities

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/myhome-soft/myhome/internal/common"
	"github.com/myhome-soft/myhome/internal/server/models"
)

func newMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresRepository(db), mock, func() { db.Close() }
}

func TestPostgresRepository_Create(t *testing.T) {
	repo, mock, closeFn := newMock(t)
	defer closeFn()

	mock.ExpectQuery(`INSERT INTO amenities`).
		WithArgs("am-1", "com-1", "Pool", "Outdoor pool", 25.0).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(4)))

	a, err := repo.Create(context.Background(), &models.Amenity{
		AmenityID: "am-1", CommunityID: "com-1", Name: "Pool", Description: "Outdoor pool", Price: 25.0,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), a.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Update_NotFound(t *testing.T) {
	repo, mock, closeFn := newMock(t)
	defer closeFn()

	mock.ExpectExec(`UPDATE amenities SET`).
		WithArgs("missing", "Pool", "Outdoor pool", 25.0).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.Amenity{
		AmenityID: "missing", Name: "Pool", Description: "Outdoor pool", Price: 25.0,
	})
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListByCommunity(t *testing.T) {
	repo, mock, closeFn := newMock(t)
	defer closeFn()

	rows := sqlmock.NewRows([]string{"id", "amenity_id", "community_id", "name", "description", "price"}).
		AddRow(int64(1), "am-1", "com-1", "Pool", "", 25.0).
		AddRow(int64(2), "am-2", "com-1", "Gym", "", 10.0)
	mock.ExpectQuery(`FROM amenities\s+WHERE community_id`).
		WithArgs("com-1").
		WillReturnRows(rows)

	as, err := repo.ListByCommunity(context.Background(), "com-1")
	require.NoError(t, err)
	require.Len(t, as, 2)
	assert.Equal(t, "Gym", as[1].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_CreateBooking(t *testing.T) {
	repo, mock, closeFn := newMock(t)
	defer closeFn()

	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	mock.ExpectQuery(`INSERT INTO amenity_bookings`).
		WithArgs("bk-1", "am-1", "mem-1", start, end).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	b, err := repo.CreateBooking(context.Background(), &models.AmenityBooking{
		BookingID: "bk-1", AmenityID: "am-1", MemberID: "mem-1", StartDate: start, EndDate: end,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), b.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_DeleteBooking_NotFound(t *testing.T) {
	repo, mock, closeFn := newMock(t)
	defer closeFn()

	mock.ExpectExec(`DELETE FROM amenity_bookings`).
		WithArgs("am-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteBooking(context.Background(), "am-1", "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
