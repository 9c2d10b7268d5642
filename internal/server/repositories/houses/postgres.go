package houses

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

func (r *PostgresRepository) Create(ctx context.Context, house *models.CommunityHouse) (*models.CommunityHouse, error) {
	query := `
		INSERT INTO community_houses (house_id, community_id, name)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, house.HouseID, house.CommunityID, house.Name).Scan(&house.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return house, nil
}

func (r *PostgresRepository) FindByHouseID(ctx context.Context, houseID string) (*models.CommunityHouse, error) {
	query := `
		SELECT id, house_id, community_id, name
		FROM community_houses
		WHERE house_id = $1
	`
	h := &models.CommunityHouse{}
	err := r.db.QueryRowContext(ctx, query, houseID).Scan(&h.ID, &h.HouseID, &h.CommunityID, &h.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return h, nil
}

func (r *PostgresRepository) List(ctx context.Context, limit int, offset int) ([]*models.CommunityHouse, error) {
	query := `
		SELECT id, house_id, community_id, name
		FROM community_houses
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return scanHouses(rows)
}

func (r *PostgresRepository) ListByCommunity(ctx context.Context, communityID string) ([]*models.CommunityHouse, error) {
	query := `
		SELECT id, house_id, community_id, name
		FROM community_houses
		WHERE community_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, communityID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()
	return scanHouses(rows)
}

func scanHouses(rows *sql.Rows) ([]*models.CommunityHouse, error) {
	var result []*models.CommunityHouse
	for rows.Next() {
		h := &models.CommunityHouse{}
		if err := rows.Scan(&h.ID, &h.HouseID, &h.CommunityID, &h.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, houseID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM community_houses WHERE house_id = $1`, houseID)
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

func (r *PostgresRepository) AddMember(ctx context.Context, member *models.HouseMember) (*models.HouseMember, error) {
	query := `
		INSERT INTO house_members (member_id, house_id, name)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, member.MemberID, member.HouseID, member.Name).Scan(&member.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return member, nil
}

func (r *PostgresRepository) FindMemberByMemberID(ctx context.Context, memberID string) (*models.HouseMember, error) {
	query := `
		SELECT id, member_id, house_id, name
		FROM house_members
		WHERE member_id = $1
	`
	m := &models.HouseMember{}
	err := r.db.QueryRowContext(ctx, query, memberID).Scan(&m.ID, &m.MemberID, &m.HouseID, &m.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return m, nil
}

func (r *PostgresRepository) ListMembers(ctx context.Context, houseID string) ([]*models.HouseMember, error) {
	query := `
		SELECT id, member_id, house_id, name
		FROM house_members
		WHERE house_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, houseID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.HouseMember
	for rows.Next() {
		m := &models.HouseMember{}
		if err := rows.Scan(&m.ID, &m.MemberID, &m.HouseID, &m.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) DeleteMember(ctx context.Context, houseID string, memberID string) error {
	query := `
		DELETE FROM house_members
		WHERE house_id = $1 AND member_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, houseID, memberID)
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
