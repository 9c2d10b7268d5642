package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/myhome-soft/myhome/internal/common"
	"github.com/myhome-soft/myhome/internal/dbx"
	"github.com/myhome-soft/myhome/internal/server/config"
	"github.com/myhome-soft/myhome/internal/server/models"
	"github.com/myhome-soft/myhome/internal/server/repositories"
)

// SecurityTokenService issues and consumes the single-use tokens backing
// email confirmation and password reset. Methods take an explicit executor
// so callers can run them inside a surrounding transaction.
type SecurityTokenService struct {
	repomanager          repositories.RepositoryManager
	emailConfirmLifetime time.Duration
	resetLifetime        time.Duration
}

func NewSecurityTokenService(m repositories.RepositoryManager, cfg *config.Config) *SecurityTokenService {
	return &SecurityTokenService{
		repomanager:          m,
		emailConfirmLifetime: cfg.EmailConfirmTokenLifetime,
		resetLifetime:        cfg.PasswordResetTokenLifetime,
	}
}

// today returns the current calendar date with the time part zeroed.
func today() time.Time {
	y, m, d := time.Now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (s *SecurityTokenService) create(ctx context.Context, db dbx.DBTX, tokenType models.SecurityTokenType, lifetime time.Duration, ownerUserID string) (*models.SecurityToken, error) {
	creation := today()
	token := &models.SecurityToken{
		TokenType:    tokenType,
		Token:        uuid.NewString(),
		CreationDate: creation,
		ExpiryDate:   creation.AddDate(0, 0, int(lifetime.Hours()/24)),
		OwnerUserID:  ownerUserID,
	}

	token, err := s.repomanager.SecurityTokens(db).Create(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("error creating security token: %w", err)
	}
	return token, nil
}

func (s *SecurityTokenService) CreateEmailConfirmToken(ctx context.Context, db dbx.DBTX, ownerUserID string) (*models.SecurityToken, error) {
	return s.create(ctx, db, models.TokenTypeEmailConfirm, s.emailConfirmLifetime, ownerUserID)
}

func (s *SecurityTokenService) CreatePasswordResetToken(ctx context.Context, db dbx.DBTX, ownerUserID string) (*models.SecurityToken, error) {
	return s.create(ctx, db, models.TokenTypeReset, s.resetLifetime, ownerUserID)
}

// UseToken marks the token consumed. Concurrent calls for the same token
// value succeed at most once; losers get common.ErrTokenAlreadyUsed.
func (s *SecurityTokenService) UseToken(ctx context.Context, db dbx.DBTX, token string) error {
	return s.repomanager.SecurityTokens(db).Consume(ctx, token)
}

// FindValidToken looks for an unused token of the given type and value among
// the owner's tokens. A token is eligible only while its expiry date is
// strictly after today, so a token expiring today is already invalid.
func (s *SecurityTokenService) FindValidToken(ctx context.Context, db dbx.DBTX, ownerUserID string, tokenType models.SecurityTokenType, token string) (*models.SecurityToken, error) {
	tokens, err := s.repomanager.SecurityTokens(db).FindByOwner(ctx, ownerUserID)
	if err != nil {
		return nil, fmt.Errorf("error loading security tokens: %w", err)
	}

	for _, st := range tokens {
		if st.Used || st.TokenType != tokenType || st.Token != token {
			continue
		}
		if !st.ExpiryDate.After(today()) {
			continue
		}
		return st, nil
	}

	return nil, common.ErrTokenInvalid
}

// DiscardUnused removes the owner's not-yet-consumed tokens of one type.
// Called before reissuing so only the latest token can succeed.
func (s *SecurityTokenService) DiscardUnused(ctx context.Context, db dbx.DBTX, ownerUserID string, tokenType models.SecurityTokenType) error {
	return s.repomanager.SecurityTokens(db).DeleteUnusedByType(ctx, ownerUserID, tokenType)
}
