package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/myhome-soft/myhome/internal/common"
	"github.com/myhome-soft/myhome/internal/server/config"
	"github.com/myhome-soft/myhome/internal/server/models"
)

func newUserService(db *sql.DB, rm *fakeRepoManager, mailer *fakeMailSender) *UserService {
	cfg := &config.Config{
		EmailConfirmTokenLifetime:  24 * time.Hour,
		PasswordResetTokenLifetime: 24 * time.Hour,
	}
	tokens := NewSecurityTokenService(rm, cfg)
	return NewUserService(db, rm, tokens, mailer, nopLogger{})
}

func TestRegister_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{users: &fakeUsersRepo{}, tokens: &fakeTokensRepo{}}
	mailer := &fakeMailSender{}
	s := newUserService(db, rm, mailer)

	user, err := s.Register(context.Background(), "Ada", "ada@example.com", "secret")
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.UserID == "" {
		t.Error("empty user id")
	}
	if user.EmailConfirmed {
		t.Error("new account already confirmed")
	}
	if user.EncryptedPassword == "secret" {
		t.Error("password stored in plaintext")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.EncryptedPassword), []byte("secret")); err != nil {
		t.Errorf("stored hash does not match password: %v", err)
	}
	if len(rm.tokens.tokens) != 1 {
		t.Fatalf("want one confirm token, got %d", len(rm.tokens.tokens))
	}
	if len(mailer.created) != 1 || mailer.created[0] != rm.tokens.tokens[0].Token {
		t.Errorf("confirm token not mailed: %v", mailer.created)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("sql expectations: %v", err)
	}
}

func TestRegister_EmailTaken(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{users: &fakeUsersRepo{users: []*models.User{{Email: "ada@example.com"}}}}
	s := newUserService(db, rm, &fakeMailSender{})

	_, err := s.Register(context.Background(), "Ada", "ada@example.com", "secret")
	if !errors.Is(err, common.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}

func TestRegister_MailFailureIsNotFatal(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{users: &fakeUsersRepo{}, tokens: &fakeTokensRepo{}}
	s := newUserService(db, rm, &fakeMailSender{err: errBoom{}})

	if _, err := s.Register(context.Background(), "Ada", "ada@example.com", "secret"); err != nil {
		t.Fatalf("Register error: %v", err)
	}
}

func TestConfirmEmail_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{
		users: &fakeUsersRepo{users: []*models.User{{UserID: "u1", Email: "ada@example.com"}}},
		tokens: &fakeTokensRepo{tokens: []*models.SecurityToken{{
			TokenType:   models.TokenTypeEmailConfirm,
			Token:       "tok",
			ExpiryDate:  today().AddDate(0, 0, 1),
			OwnerUserID: "u1",
		}}},
	}
	mailer := &fakeMailSender{}
	s := newUserService(db, rm, mailer)

	if err := s.ConfirmEmail(context.Background(), "u1", "tok"); err != nil {
		t.Fatalf("ConfirmEmail error: %v", err)
	}
	if !rm.users.users[0].EmailConfirmed {
		t.Error("account not confirmed")
	}
	if !rm.tokens.tokens[0].Used {
		t.Error("token not consumed")
	}
	if len(mailer.confirmed) != 1 {
		t.Errorf("confirmation mail not sent: %v", mailer.confirmed)
	}
}

func TestConfirmEmail_AlreadyConfirmed(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		users:  &fakeUsersRepo{users: []*models.User{{UserID: "u1", EmailConfirmed: true}}},
		tokens: &fakeTokensRepo{},
	}
	s := newUserService(db, rm, &fakeMailSender{})

	err := s.ConfirmEmail(context.Background(), "u1", "tok")
	if !errors.Is(err, common.ErrTokenInvalid) {
		t.Fatalf("want ErrTokenInvalid, got %v", err)
	}
}

func TestConfirmEmail_UnknownToken(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		users:  &fakeUsersRepo{users: []*models.User{{UserID: "u1"}}},
		tokens: &fakeTokensRepo{},
	}
	s := newUserService(db, rm, &fakeMailSender{})

	err := s.ConfirmEmail(context.Background(), "u1", "missing")
	if !errors.Is(err, common.ErrTokenInvalid) {
		t.Fatalf("want ErrTokenInvalid, got %v", err)
	}
}

func TestResendEmailConfirm_ReplacesToken(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	rm := &fakeRepoManager{
		users: &fakeUsersRepo{users: []*models.User{{UserID: "u1", Email: "ada@example.com"}}},
		tokens: &fakeTokensRepo{tokens: []*models.SecurityToken{{
			TokenType:   models.TokenTypeEmailConfirm,
			Token:       "stale",
			ExpiryDate:  today().AddDate(0, 0, 1),
			OwnerUserID: "u1",
		}}},
	}
	mailer := &fakeMailSender{}
	s := newUserService(db, rm, mailer)

	if err := s.ResendEmailConfirm(context.Background(), "u1"); err != nil {
		t.Fatalf("ResendEmailConfirm error: %v", err)
	}
	if len(rm.tokens.tokens) != 1 {
		t.Fatalf("want one token after reissue, got %d", len(rm.tokens.tokens))
	}
	if rm.tokens.tokens[0].Token == "stale" {
		t.Error("stale token survived reissue")
	}
	if len(mailer.created) != 1 {
		t.Errorf("new token not mailed: %v", mailer.created)
	}
}

func TestRequestResetPassword_UnknownEmailIsSilent(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{users: &fakeUsersRepo{}, tokens: &fakeTokensRepo{}}
	mailer := &fakeMailSender{}
	s := newUserService(db, rm, mailer)

	if err := s.RequestResetPassword(context.Background(), "nobody@example.com"); err != nil {
		t.Fatalf("RequestResetPassword error: %v", err)
	}
	if len(mailer.recoverCodes) != 0 {
		t.Errorf("mail sent for unknown email: %v", mailer.recoverCodes)
	}
}

func TestResetPassword_Success(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	old := "$2a$04$oldhash"
	rm := &fakeRepoManager{
		users: &fakeUsersRepo{users: []*models.User{{UserID: "u1", Email: "ada@example.com", EncryptedPassword: old}}},
		tokens: &fakeTokensRepo{tokens: []*models.SecurityToken{{
			TokenType:   models.TokenTypeReset,
			Token:       "tok",
			ExpiryDate:  today().AddDate(0, 0, 1),
			OwnerUserID: "u1",
		}}},
	}
	mailer := &fakeMailSender{}
	s := newUserService(db, rm, mailer)

	if err := s.ResetPassword(context.Background(), "ada@example.com", "tok", "newpass"); err != nil {
		t.Fatalf("ResetPassword error: %v", err)
	}
	if rm.users.users[0].EncryptedPassword == old {
		t.Error("password not updated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(rm.users.users[0].EncryptedPassword), []byte("newpass")); err != nil {
		t.Errorf("new hash does not match password: %v", err)
	}
	if !rm.tokens.tokens[0].Used {
		t.Error("reset token not consumed")
	}
	if len(mailer.changed) != 1 {
		t.Errorf("password changed mail not sent: %v", mailer.changed)
	}
}

func TestResetPassword_ReusedToken(t *testing.T) {
	db, _ := newSQLMockDB(t)
	defer db.Close()

	rm := &fakeRepoManager{
		users: &fakeUsersRepo{users: []*models.User{{UserID: "u1", Email: "ada@example.com"}}},
		tokens: &fakeTokensRepo{tokens: []*models.SecurityToken{{
			TokenType:   models.TokenTypeReset,
			Token:       "tok",
			ExpiryDate:  today().AddDate(0, 0, 1),
			Used:        true,
			OwnerUserID: "u1",
		}}},
	}
	s := newUserService(db, rm, &fakeMailSender{})

	err := s.ResetPassword(context.Background(), "ada@example.com", "tok", "newpass")
	if !errors.Is(err, common.ErrTokenInvalid) {
		t.Fatalf("want ErrTokenInvalid, got %v", err)
	}
}
