// Package mail sends transactional account emails. The SMTP sender renders
// embedded HTML templates; the mock sender just logs and is used in dev and
// in tests.
package mail

import (
	"context"

	"github.com/myhome-soft/myhome/internal/server/models"
)

type Sender interface {
	SendAccountCreated(ctx context.Context, user *models.User, confirmToken string) error
	SendAccountConfirmed(ctx context.Context, user *models.User) error
	SendPasswordRecoverCode(ctx context.Context, user *models.User, resetToken string) error
	SendPasswordSuccessfullyChanged(ctx context.Context, user *models.User) error
}
