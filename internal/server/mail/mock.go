package mail

import (
	"context"

	"github.com/myhome-soft/myhome/internal/logging"
	"github.com/myhome-soft/myhome/internal/server/models"
)

// MockSender logs each message instead of delivering it. Tokens are logged
// in full so they can be copied out of dev logs.
type MockSender struct {
	logger logging.Logger
}

func NewMockSender(logger logging.Logger) *MockSender {
	return &MockSender{logger: logger.With("component", "mail")}
}

func (s *MockSender) SendAccountCreated(ctx context.Context, user *models.User, confirmToken string) error {
	s.logger.Info(ctx, "mail: account created", "to", user.Email, "confirm_token", confirmToken)
	return nil
}

func (s *MockSender) SendAccountConfirmed(ctx context.Context, user *models.User) error {
	s.logger.Info(ctx, "mail: account confirmed", "to", user.Email)
	return nil
}

func (s *MockSender) SendPasswordRecoverCode(ctx context.Context, user *models.User, resetToken string) error {
	s.logger.Info(ctx, "mail: password recover code", "to", user.Email, "reset_token", resetToken)
	return nil
}

func (s *MockSender) SendPasswordSuccessfullyChanged(ctx context.Context, user *models.User) error {
	s.logger.Info(ctx, "mail: password changed", "to", user.Email)
	return nil
}
