package securitytokens

import (
	"context"
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

func (r *PostgresRepository) Create(ctx context.Context, token *models.SecurityToken) (*models.SecurityToken, error) {
	query := `
		INSERT INTO security_tokens (token_type, token, creation_date, expiry_date, used, owner_user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		token.TokenType, token.Token, token.CreationDate, token.ExpiryDate, token.Used, token.OwnerUserID).Scan(&token.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return token, nil
}

func (r *PostgresRepository) FindByOwner(ctx context.Context, ownerUserID string) ([]*models.SecurityToken, error) {
	query := `
		SELECT id, token_type, token, creation_date, expiry_date, used, owner_user_id
		FROM security_tokens
		WHERE owner_user_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.SecurityToken
	for rows.Next() {
		st := &models.SecurityToken{}
		if err := rows.Scan(&st.ID, &st.TokenType, &st.Token, &st.CreationDate, &st.ExpiryDate, &st.Used, &st.OwnerUserID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}

// Consume flips used to true for an unused token in a single conditional
// update. Zero affected rows means the token was already consumed (or never
// existed), reported as common.ErrTokenAlreadyUsed either way.
func (r *PostgresRepository) Consume(ctx context.Context, token string) error {
	query := `
		UPDATE security_tokens SET used = TRUE
		WHERE token = $1 AND used = FALSE
	`
	res, err := r.db.ExecContext(ctx, query, token)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrTokenAlreadyUsed
	}
	return nil
}

func (r *PostgresRepository) DeleteUnusedByType(ctx context.Context, ownerUserID string, tokenType models.SecurityTokenType) error {
	query := `
		DELETE FROM security_tokens
		WHERE owner_user_id = $1 AND token_type = $2 AND used = FALSE
	`
	if _, err := r.db.ExecContext(ctx, query, ownerUserID, tokenType); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
