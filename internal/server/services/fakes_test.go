package services

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/myhome-soft/myhome/internal/common"
	"github.com/myhome-soft/myhome/internal/dbx"
	"github.com/myhome-soft/myhome/internal/logging"
	"github.com/myhome-soft/myhome/internal/server/models"
	amenitiesrepo "github.com/myhome-soft/myhome/internal/server/repositories/amenities"
	communitiesrepo "github.com/myhome-soft/myhome/internal/server/repositories/communities"
	documentsrepo "github.com/myhome-soft/myhome/internal/server/repositories/documents"
	housesrepo "github.com/myhome-soft/myhome/internal/server/repositories/houses"
	paymentsrepo "github.com/myhome-soft/myhome/internal/server/repositories/payments"
	tokensrepo "github.com/myhome-soft/myhome/internal/server/repositories/securitytokens"
	usersrepo "github.com/myhome-soft/myhome/internal/server/repositories/users"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

// --- fake repositories ---

type fakeUsersRepo struct {
	users     []*models.User
	nextID    int64
	createErr error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	u.ID = f.nextID
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUsersRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) FindByUserID(_ context.Context, userID string) (*models.User, error) {
	for _, u := range f.users {
		if u.UserID == userID {
			return u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsersRepo) List(_ context.Context, limit, offset int) ([]*models.User, error) {
	return f.users, nil
}

func (f *fakeUsersRepo) UpdatePassword(_ context.Context, userID, encryptedPassword string) error {
	for _, u := range f.users {
		if u.UserID == userID {
			u.EncryptedPassword = encryptedPassword
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeUsersRepo) ConfirmEmail(_ context.Context, userID string) error {
	for _, u := range f.users {
		if u.UserID == userID {
			u.EmailConfirmed = true
			return nil
		}
	}
	return common.ErrNotFound
}

type fakeTokensRepo struct {
	mu     sync.Mutex
	tokens []*models.SecurityToken
	nextID int64
}

func (f *fakeTokensRepo) Create(_ context.Context, token *models.SecurityToken) (*models.SecurityToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	token.ID = f.nextID
	f.tokens = append(f.tokens, token)
	return token, nil
}

func (f *fakeTokensRepo) FindByOwner(_ context.Context, ownerUserID string) ([]*models.SecurityToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*models.SecurityToken
	for _, st := range f.tokens {
		if st.OwnerUserID == ownerUserID {
			copied := *st
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeTokensRepo) Consume(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, st := range f.tokens {
		if st.Token == token && !st.Used {
			st.Used = true
			return nil
		}
	}
	return common.ErrTokenAlreadyUsed
}

func (f *fakeTokensRepo) DeleteUnusedByType(_ context.Context, ownerUserID string, tokenType models.SecurityTokenType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.tokens[:0]
	for _, st := range f.tokens {
		if st.OwnerUserID == ownerUserID && st.TokenType == tokenType && !st.Used {
			continue
		}
		kept = append(kept, st)
	}
	f.tokens = kept
	return nil
}

type fakeCommunitiesRepo struct {
	communities []*models.Community
	admins      map[string][]*models.User
	nextID      int64
}

func (f *fakeCommunitiesRepo) Create(_ context.Context, c *models.Community) (*models.Community, error) {
	f.nextID++
	c.ID = f.nextID
	f.communities = append(f.communities, c)
	return c, nil
}

func (f *fakeCommunitiesRepo) FindByCommunityID(_ context.Context, communityID string) (*models.Community, error) {
	for _, c := range f.communities {
		if c.CommunityID == communityID {
			return c, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeCommunitiesRepo) List(_ context.Context, limit, offset int) ([]*models.Community, error) {
	return f.communities, nil
}

func (f *fakeCommunitiesRepo) Delete(_ context.Context, communityID string) error {
	for i, c := range f.communities {
		if c.CommunityID == communityID {
			f.communities = append(f.communities[:i], f.communities[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeCommunitiesRepo) AddAdmin(_ context.Context, communityID string, adminUserID string) error {
	if f.admins == nil {
		f.admins = map[string][]*models.User{}
	}
	f.admins[communityID] = append(f.admins[communityID], &models.User{UserID: adminUserID})
	return nil
}

func (f *fakeCommunitiesRepo) RemoveAdmin(_ context.Context, communityID string, adminUserID string) error {
	admins := f.admins[communityID]
	for i, a := range admins {
		if a.UserID == adminUserID {
			f.admins[communityID] = append(admins[:i], admins[i+1:]...)
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakeCommunitiesRepo) FindAdmins(_ context.Context, communityID string) ([]*models.User, error) {
	return f.admins[communityID], nil
}

func (f *fakeCommunitiesRepo) FindCommunitiesByAdmin(_ context.Context, adminUserID string) ([]*models.Community, error) {
	var result []*models.Community
	for _, c := range f.communities {
		for _, a := range f.admins[c.CommunityID] {
			if a.UserID == adminUserID {
				result = append(result, c)
				break
			}
		}
	}
	return result, nil
}

// --- fake repository manager ---

type fakeRepoManager struct {
	users       *fakeUsersRepo
	tokens      *fakeTokensRepo
	communities *fakeCommunitiesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository           { return m.users }
func (m *fakeRepoManager) SecurityTokens(dbx.DBTX) tokensrepo.Repository { return m.tokens }
func (m *fakeRepoManager) Communities(dbx.DBTX) communitiesrepo.Repository {
	return m.communities
}

func (m *fakeRepoManager) Houses(dbx.DBTX) housesrepo.Repository       { return nil }
func (m *fakeRepoManager) Amenities(dbx.DBTX) amenitiesrepo.Repository { return nil }
func (m *fakeRepoManager) Payments(dbx.DBTX) paymentsrepo.Repository   { return nil }
func (m *fakeRepoManager) Documents(dbx.DBTX) documentsrepo.Repository { return nil }

// --- fake mail sender ---

type fakeMailSender struct {
	created      []string
	confirmed    []string
	recoverCodes []string
	changed      []string
	err          error
}

func (f *fakeMailSender) SendAccountCreated(_ context.Context, user *models.User, confirmToken string) error {
	f.created = append(f.created, confirmToken)
	return f.err
}

func (f *fakeMailSender) SendAccountConfirmed(_ context.Context, user *models.User) error {
	f.confirmed = append(f.confirmed, user.UserID)
	return f.err
}

func (f *fakeMailSender) SendPasswordRecoverCode(_ context.Context, user *models.User, resetToken string) error {
	f.recoverCodes = append(f.recoverCodes, resetToken)
	return f.err
}

func (f *fakeMailSender) SendPasswordSuccessfullyChanged(_ context.Context, user *models.User) error {
	f.changed = append(f.changed, user.UserID)
	return f.err
}
