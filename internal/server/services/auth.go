package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/myhome-soft/myhome/internal/common"
	"github.com/myhome-soft/myhome/internal/server/auth"
	"github.com/myhome-soft/myhome/internal/server/config"
	"github.com/myhome-soft/myhome/internal/server/repositories"
)

// AuthService checks credentials and issues bearer tokens.
type AuthService struct {
	db              *sql.DB
	repomanager     repositories.RepositoryManager
	jwtSecret       []byte
	tokenExpiration time.Duration
}

func NewAuthService(db *sql.DB, m repositories.RepositoryManager, cfg *config.Config) *AuthService {
	return &AuthService{
		db:              db,
		repomanager:     m,
		jwtSecret:       []byte(cfg.TokenSecret),
		tokenExpiration: cfg.TokenExpiration,
	}
}

// Login verifies the email and password and returns the user id together
// with a signed bearer token. A missing account yields common.ErrNotFound
// and a wrong password common.ErrCredentialsIncorrect; transports are
// expected to collapse both into the same response.
func (s *AuthService) Login(ctx context.Context, email string, password string) (string, string, error) {
	user, err := s.repomanager.Users(s.db).FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", "", common.ErrNotFound
		}
		return "", "", fmt.Errorf("error searching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.EncryptedPassword), []byte(password)); err != nil {
		return "", "", common.ErrCredentialsIncorrect
	}

	token, err := auth.Encode(auth.AppJwt{
		UserID:     user.UserID,
		Expiration: time.Now().Add(s.tokenExpiration),
	}, s.jwtSecret)
	if err != nil {
		return "", "", fmt.Errorf("error encoding token: %w", err)
	}

	return user.UserID, token, nil
}
