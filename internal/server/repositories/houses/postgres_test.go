package houses

import (
	"context"
	"testing"

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

	mock.ExpectQuery(`INSERT INTO community_houses`).
		WithArgs("house-1", "com-1", "Block A").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	h, err := repo.Create(context.Background(), &models.CommunityHouse{HouseID: "house-1", CommunityID: "com-1", Name: "Block A"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), h.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_FindByHouseID_NotFound(t *testing.T) {
	repo, mock, closeFn := newMock(t)
	defer closeFn()

	mock.ExpectQuery(`SELECT id, house_id, community_id, name\s+FROM community_houses`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "house_id", "community_id", "name"}))

	_, err := repo.FindByHouseID(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_ListByCommunity(t *testing.T) {
	repo, mock, closeFn := newMock(t)
	defer closeFn()

	rows := sqlmock.NewRows([]string{"id", "house_id", "community_id", "name"}).
		AddRow(int64(1), "house-1", "com-1", "Block A").
		AddRow(int64(2), "house-2", "com-1", "Block B")
	mock.ExpectQuery(`FROM community_houses\s+WHERE community_id`).
		WithArgs("com-1").
		WillReturnRows(rows)

	hs, err := repo.ListByCommunity(context.Background(), "com-1")
	require.NoError(t, err)
	require.Len(t, hs, 2)
	assert.Equal(t, "house-2", hs[1].HouseID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_AddMember(t *testing.T) {
	repo, mock, closeFn := newMock(t)
	defer closeFn()

	mock.ExpectQuery(`INSERT INTO house_members`).
		WithArgs("mem-1", "house-1", "Ada").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	m, err := repo.AddMember(context.Background(), &models.HouseMember{MemberID: "mem-1", HouseID: "house-1", Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), m.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_DeleteMember_NotFound(t *testing.T) {
	repo, mock, closeFn := newMock(t)
	defer closeFn()

	mock.ExpectExec(`DELETE FROM house_members`).
		WithArgs("house-1", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteMember(context.Background(), "house-1", "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
