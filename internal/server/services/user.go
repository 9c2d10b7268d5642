package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/myhome-soft/myhome/internal/common"
	"github.com/myhome-soft/myhome/internal/dbx"
	"github.com/myhome-soft/myhome/internal/logging"
	"github.com/myhome-soft/myhome/internal/server/mail"
	"github.com/myhome-soft/myhome/internal/server/models"
	"github.com/myhome-soft/myhome/internal/server/repositories"
)

// UserService covers account lifecycle: registration, email confirmation
// and password reset. Mail delivery failures are logged but never fail the
// operation; the tokens stay valid and can be reissued.
type UserService struct {
	db          *sql.DB
	repomanager repositories.RepositoryManager
	tokens      *SecurityTokenService
	mailer      mail.Sender
	logger      logging.Logger
}

func NewUserService(db *sql.DB, m repositories.RepositoryManager, tokens *SecurityTokenService, mailer mail.Sender, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		mailer:      mailer,
		logger:      logger.With("service", "users"),
	}
}

// Register creates an unconfirmed account and issues an email confirmation
// token, both in one transaction. A duplicate email yields
// common.ErrEmailTaken.
func (s *UserService) Register(ctx context.Context, name string, email string, password string) (*models.User, error) {
	_, err := s.repomanager.Users(s.db).FindByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrEmailTaken
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		UserID:            uuid.NewString(),
		Name:              name,
		Email:             email,
		EncryptedPassword: string(hash),
	}

	var confirmToken *models.SecurityToken

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		user, err = s.repomanager.Users(tx).Create(ctx, user)
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}

		confirmToken, err = s.tokens.CreateEmailConfirmToken(ctx, tx, user.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := s.mailer.SendAccountCreated(ctx, user, confirmToken.Token); err != nil {
		s.logger.Warn(ctx, "failed to send account created mail", "user_id", user.UserID, "error", err)
	}

	return user, nil
}

// ConfirmEmail consumes a confirmation token and marks the account
// confirmed. Confirming an already confirmed account or presenting an
// unknown, expired or used token yields common.ErrTokenInvalid.
func (s *UserService) ConfirmEmail(ctx context.Context, userID string, token string) error {
	user, err := s.repomanager.Users(s.db).FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrTokenInvalid
		}
		return fmt.Errorf("error searching user: %w", err)
	}
	if user.EmailConfirmed {
		return common.ErrTokenInvalid
	}

	if _, err := s.tokens.FindValidToken(ctx, s.db, userID, models.TokenTypeEmailConfirm, token); err != nil {
		return err
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.tokens.UseToken(ctx, tx, token); err != nil {
			return err
		}
		return s.repomanager.Users(tx).ConfirmEmail(ctx, userID)
	})
	if err != nil {
		return err
	}

	if err := s.mailer.SendAccountConfirmed(ctx, user); err != nil {
		s.logger.Warn(ctx, "failed to send account confirmed mail", "user_id", userID, "error", err)
	}

	return nil
}

// ResendEmailConfirm discards any pending confirmation tokens and issues a
// fresh one, so only the latest mail works.
func (s *UserService) ResendEmailConfirm(ctx context.Context, userID string) error {
	user, err := s.repomanager.Users(s.db).FindByUserID(ctx, userID)
	if err != nil {
		return err
	}
	if user.EmailConfirmed {
		return common.ErrTokenInvalid
	}

	var confirmToken *models.SecurityToken

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.tokens.DiscardUnused(ctx, tx, userID, models.TokenTypeEmailConfirm); err != nil {
			return err
		}
		confirmToken, err = s.tokens.CreateEmailConfirmToken(ctx, tx, userID)
		return err
	})
	if err != nil {
		return err
	}

	if err := s.mailer.SendAccountCreated(ctx, user, confirmToken.Token); err != nil {
		s.logger.Warn(ctx, "failed to send account created mail", "user_id", userID, "error", err)
	}

	return nil
}

// RequestResetPassword issues a password reset token and mails it. An
// unknown email is not an error so the endpoint does not reveal which
// addresses have accounts.
func (s *UserService) RequestResetPassword(ctx context.Context, email string) error {
	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Info(ctx, "password reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("error searching user: %w", err)
	}

	var resetToken *models.SecurityToken

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.tokens.DiscardUnused(ctx, tx, user.UserID, models.TokenTypeReset); err != nil {
			return err
		}
		resetToken, err = s.tokens.CreatePasswordResetToken(ctx, tx, user.UserID)
		return err
	})
	if err != nil {
		return err
	}

	if err := s.mailer.SendPasswordRecoverCode(ctx, user, resetToken.Token); err != nil {
		s.logger.Warn(ctx, "failed to send password recover mail", "user_id", user.UserID, "error", err)
	}

	return nil
}

// ResetPassword consumes a reset token and stores the new password hash.
func (s *UserService) ResetPassword(ctx context.Context, email string, token string, newPassword string) error {
	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrTokenInvalid
		}
		return fmt.Errorf("error searching user: %w", err)
	}

	if _, err := s.tokens.FindValidToken(ctx, s.db, user.UserID, models.TokenTypeReset, token); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.tokens.UseToken(ctx, tx, token); err != nil {
			return err
		}
		return s.repomanager.Users(tx).UpdatePassword(ctx, user.UserID, string(hash))
	})
	if err != nil {
		return err
	}

	if err := s.mailer.SendPasswordSuccessfullyChanged(ctx, user); err != nil {
		s.logger.Warn(ctx, "failed to send password changed mail", "user_id", user.UserID, "error", err)
	}

	return nil
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).FindByUserID(ctx, userID)
}

func (s *UserService) ListUsers(ctx context.Context, limit int, offset int) ([]*models.User, error) {
	return s.repomanager.Users(s.db).List(ctx, limit, offset)
}
