package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/myhome-soft/myhome/internal/dbx"
	"github.com/myhome-soft/myhome/internal/server/migrations"
	"github.com/myhome-soft/myhome/internal/server/repositories/amenities"
	"github.com/myhome-soft/myhome/internal/server/repositories/communities"
	"github.com/myhome-soft/myhome/internal/server/repositories/documents"
	"github.com/myhome-soft/myhome/internal/server/repositories/houses"
	"github.com/myhome-soft/myhome/internal/server/repositories/payments"
	"github.com/myhome-soft/myhome/internal/server/repositories/securitytokens"
	"github.com/myhome-soft/myhome/internal/server/repositories/users"
)

// RepositoryManager hands out repositories bound to a particular executor.
// Passing a transaction from dbx.WithTx makes every repository call inside
// the closure part of that transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	SecurityTokens(db dbx.DBTX) securitytokens.Repository
	Communities(db dbx.DBTX) communities.Repository
	Houses(db dbx.DBTX) houses.Repository
	Amenities(db dbx.DBTX) amenities.Repository
	Payments(db dbx.DBTX) payments.Repository
	Documents(db dbx.DBTX) documents.Repository
}

type PostgresRepositoryManager struct{}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) SecurityTokens(db dbx.DBTX) securitytokens.Repository {
	return securitytokens.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Communities(db dbx.DBTX) communities.Repository {
	return communities.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Houses(db dbx.DBTX) houses.Repository {
	return houses.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Amenities(db dbx.DBTX) amenities.Repository {
	return amenities.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Payments(db dbx.DBTX) payments.Repository {
	return payments.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Documents(db dbx.DBTX) documents.Repository {
	return documents.NewPostgresRepository(db)
}
