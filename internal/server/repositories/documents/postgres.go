package documents

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

func (r *PostgresRepository) Upsert(ctx context.Context, doc *models.MemberDocument) (*models.MemberDocument, error) {
	query := `
		INSERT INTO member_documents (member_id, filename, storage_key, uploaded_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (member_id) DO UPDATE
		SET filename = EXCLUDED.filename, storage_key = EXCLUDED.storage_key, uploaded_at = EXCLUDED.uploaded_at
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query, doc.MemberID, doc.Filename, doc.StorageKey, doc.UploadedAt).Scan(&doc.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc, nil
}

func (r *PostgresRepository) FindByMember(ctx context.Context, memberID string) (*models.MemberDocument, error) {
	query := `
		SELECT id, member_id, filename, storage_key, uploaded_at
		FROM member_documents
		WHERE member_id = $1
	`
	d := &models.MemberDocument{}
	err := r.db.QueryRowContext(ctx, query, memberID).Scan(&d.ID, &d.MemberID, &d.Filename, &d.StorageKey, &d.UploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return d, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, memberID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM member_documents WHERE member_id = $1`, memberID)
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
