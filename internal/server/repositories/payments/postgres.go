package payments

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

const selectColumns = `id, payment_id, charge, payment_type, description, recurring, due_date, admin_id, member_id`

func (r *PostgresRepository) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	query := `
		INSERT INTO payments (payment_id, charge, payment_type, description, recurring, due_date, admin_id, member_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		payment.PaymentID, payment.Charge, payment.Type, payment.Description,
		payment.Recurring, payment.DueDate, payment.AdminID, payment.MemberID).Scan(&payment.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return payment, nil
}

func (r *PostgresRepository) FindByPaymentID(ctx context.Context, paymentID string) (*models.Payment, error) {
	query := `SELECT ` + selectColumns + ` FROM payments WHERE payment_id = $1`
	p := &models.Payment{}
	err := r.db.QueryRowContext(ctx, query, paymentID).Scan(
		&p.ID, &p.PaymentID, &p.Charge, &p.Type, &p.Description, &p.Recurring, &p.DueDate, &p.AdminID, &p.MemberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

func (r *PostgresRepository) ListByMember(ctx context.Context, memberID string) ([]*models.Payment, error) {
	query := `SELECT ` + selectColumns + ` FROM payments WHERE member_id = $1 ORDER BY id`
	return r.list(ctx, query, memberID)
}

func (r *PostgresRepository) ListByAdmin(ctx context.Context, adminID string) ([]*models.Payment, error) {
	query := `SELECT ` + selectColumns + ` FROM payments WHERE admin_id = $1 ORDER BY id`
	return r.list(ctx, query, adminID)
}

func (r *PostgresRepository) list(ctx context.Context, query string, arg string) ([]*models.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		if err := rows.Scan(&p.ID, &p.PaymentID, &p.Charge, &p.Type, &p.Description, &p.Recurring, &p.DueDate, &p.AdminID, &p.MemberID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return result, nil
}
