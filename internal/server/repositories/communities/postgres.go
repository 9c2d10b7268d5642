package communities

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

func (r *PostgresRepository) Create(ctx context.Context, community *models.Community) (*models.Community, error) {
	query := `
		INSERT INTO communities (community_id, name, district)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, community.CommunityID, community.Name, community.District).Scan(&community.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return community, nil
}

func (r *PostgresRepository) FindByCommunityID(ctx context.Context, communityID string) (*models.Community, error) {
	query := `
		SELECT id, community_id, name, district
		FROM communities
		WHERE community_id = $1
	`
	c := &models.Community{}
	err := r.db.QueryRowContext(ctx, query, communityID).Scan(&c.ID, &c.CommunityID, &c.Name, &c.District)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) List(ctx context.Context, limit int, offset int) ([]*models.Community, error) {
	query := `
		SELECT id, community_id, name, district
		FROM communities
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Community
	for rows.Next() {
		c := &models.Community{}
		if err := rows.Scan(&c.ID, &c.CommunityID, &c.Name, &c.District); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, communityID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM communities WHERE community_id = $1`, communityID)
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

func (r *PostgresRepository) AddAdmin(ctx context.Context, communityID string, adminUserID string) error {
	query := `
		INSERT INTO community_admins (community_id, admin_user_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	if _, err := r.db.ExecContext(ctx, query, communityID, adminUserID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) RemoveAdmin(ctx context.Context, communityID string, adminUserID string) error {
	query := `
		DELETE FROM community_admins
		WHERE community_id = $1 AND admin_user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, communityID, adminUserID)
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

func (r *PostgresRepository) FindAdmins(ctx context.Context, communityID string) ([]*models.User, error) {
	query := `
		SELECT u.id, u.user_id, u.name, u.email, u.encrypted_password, u.email_confirmed
		FROM users u
		JOIN community_admins ca ON ca.admin_user_id = u.user_id
		WHERE ca.community_id = $1
		ORDER BY u.id
	`
	rows, err := r.db.QueryContext(ctx, query, communityID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.User
	for rows.Next() {
		u := &models.User{}
		if err := rows.Scan(&u.ID, &u.UserID, &u.Name, &u.Email, &u.EncryptedPassword, &u.EmailConfirmed); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

func (r *PostgresRepository) FindCommunitiesByAdmin(ctx context.Context, adminUserID string) ([]*models.Community, error) {
	query := `
		SELECT c.id, c.community_id, c.name, c.district
		FROM communities c
		JOIN community_admins ca ON ca.community_id = c.community_id
		WHERE ca.admin_user_id = $1
		ORDER BY c.id
	`
	rows, err := r.db.QueryContext(ctx, query, adminUserID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Community
	for rows.Next() {
		c := &models.Community{}
		if err := rows.Scan(&c.ID, &c.CommunityID, &c.Name, &c.District); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
