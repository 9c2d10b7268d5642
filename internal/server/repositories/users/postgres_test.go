package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/myhome-soft/myhome/internal/common"
	"github.com/myhome-soft/myhome/internal/server/models"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*INSERT\s+INTO\s+users\s*\(user_id,\s*name,\s*email,\s*encrypted_password,\s*email_confirmed\)`

	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(42))
	mock.ExpectQuery(q).
		WithArgs("u-1", "Alice", "alice@example.com", "hash", false).
		WillReturnRows(rows)

	u := &models.User{UserID: "u-1", Name: "Alice", Email: "alice@example.com", EncryptedPassword: "hash"}
	got, err := repo.Create(context.Background(), u)
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if got.ID != 42 {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestFindByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1`

	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "email", "encrypted_password", "email_confirmed"}).
		AddRow(int64(1), "u-1", "Alice", "alice@example.com", "hash", true)
	mock.ExpectQuery(q).WithArgs("alice@example.com").WillReturnRows(rows)

	got, err := repo.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail error: %v", err)
	}
	if got.UserID != "u-1" || !got.EmailConfirmed {
		t.Fatalf("unexpected user: %+v", got)
	}
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+.*FROM\s+users\s+WHERE\s+email\s*=\s*\$1`
	mock.ExpectQuery(q).WithArgs("ghost@example.com").WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("want common.ErrNotFound, got %v", err)
	}
}

func TestUpdatePassword(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+users\s+SET\s+encrypted_password\s*=\s*\$2\s+WHERE\s+user_id\s*=\s*\$1`
	mock.ExpectExec(q).WithArgs("u-1", "newhash").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.UpdatePassword(context.Background(), "u-1", "newhash"); err != nil {
		t.Fatalf("UpdatePassword error: %v", err)
	}
}

func TestConfirmEmail(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*UPDATE\s+users\s+SET\s+email_confirmed\s*=\s*TRUE\s+WHERE\s+user_id\s*=\s*\$1`
	mock.ExpectExec(q).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ConfirmEmail(context.Background(), "u-1"); err != nil {
		t.Fatalf("ConfirmEmail error: %v", err)
	}
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^\s*SELECT\s+.*FROM\s+users\s+ORDER\s+BY\s+id\s+LIMIT\s+\$1\s+OFFSET\s+\$2`
	rows := sqlmock.NewRows([]string{"id", "user_id", "name", "email", "encrypted_password", "email_confirmed"}).
		AddRow(int64(1), "u-1", "Alice", "a@example.com", "h", true).
		AddRow(int64(2), "u-2", "Bob", "b@example.com", "h", false)
	mock.ExpectQuery(q).WithArgs(50, 0).WillReturnRows(rows)

	got, err := repo.List(context.Background(), 50, 0)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(got) != 2 || got[1].UserID != "u-2" {
		t.Fatalf("unexpected users: %+v", got)
	}
}
