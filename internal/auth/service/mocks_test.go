package service_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/AlibekovAA/carsle-auth/internal/auth/service"
	"github.com/AlibekovAA/carsle-auth/internal/common/clock"
	"github.com/AlibekovAA/carsle-auth/internal/common/logger"
	"github.com/AlibekovAA/carsle-auth/internal/common/token"
	userdomain "github.com/AlibekovAA/carsle-auth/internal/user/domain"
	userrepo "github.com/AlibekovAA/carsle-auth/internal/user/repository"
)

const testJWTSecret = "test-secret-key-that-is-long-enough-32"

type mockUserRepo struct {
	createFunc         func(ctx context.Context, user userdomain.User) (userdomain.User, error)
	findByEmailFunc    func(ctx context.Context, email string) (userdomain.User, error)
	findByUsernameFunc func(ctx context.Context, username string) (userdomain.User, error)
	findByIDFunc       func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
	updateEmailFunc    func(ctx context.Context, id userdomain.ID, email string) (userdomain.User, error)
	deleteFunc         func(ctx context.Context, id userdomain.ID) error
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) (userdomain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByUsername(ctx context.Context, username string) (userdomain.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) UpdateEmail(ctx context.Context, id userdomain.ID, email string) (userdomain.User, error) {
	if m.updateEmailFunc != nil {
		return m.updateEmailFunc(ctx, id, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) Delete(ctx context.Context, id userdomain.ID) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

type mockHasher struct {
	hashFunc   func(password string) (string, error)
	verifyFunc func(password, hash string) (bool, error)
}

func (m *mockHasher) Hash(password string) (string, error) {
	if m.hashFunc != nil {
		return m.hashFunc(password)
	}
	return "hashed_" + password, nil
}

func (m *mockHasher) Verify(password, hash string) (bool, error) {
	if m.verifyFunc != nil {
		return m.verifyFunc(password, hash)
	}
	return hash == "hashed_"+password, nil
}

type mockIDGenerator struct {
	newIDFunc func() (string, error)
}

func (m *mockIDGenerator) NewID() (string, error) {
	if m.newIDFunc != nil {
		return m.newIDFunc()
	}
	return "user-123", nil
}

type mockReferralChecker struct {
	checkFunc func(ctx context.Context, code string) error
}

func (m *mockReferralChecker) Check(ctx context.Context, code string) error {
	if m.checkFunc != nil {
		return m.checkFunc(ctx, code)
	}
	return nil
}

type testDeps struct {
	repo      *mockUserRepo
	hasher    *mockHasher
	ids       *mockIDGenerator
	referrals *mockReferralChecker
	clock     *clock.MockClock
	tokens    *token.Service
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, "test", "debug")
}

func setupAuthService(t *testing.T) (*service.AuthService, testDeps) {
	t.Helper()

	deps := testDeps{
		repo:      &mockUserRepo{},
		hasher:    &mockHasher{},
		ids:       &mockIDGenerator{},
		referrals: &mockReferralChecker{},
		clock:     clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)),
	}
	deps.tokens = token.NewService(testJWTSecret, time.Hour, deps.clock)

	svc := service.NewAuthService(service.AuthServiceDeps{
		Repo:        deps.repo,
		Hasher:      deps.hasher,
		Tokens:      deps.tokens,
		IDGenerator: deps.ids,
		Clock:       deps.clock,
		Referrals:   deps.referrals,
		Log:         testLogger(),
	})

	return svc, deps
}

func storedUser(d testDeps) userdomain.User {
	return userdomain.User{
		ID:           "user-123",
		FullName:     "Test User",
		Username:     "testuser",
		Email:        "test@gmail.com",
		PasswordHash: "hashed_TestPass123!",
		CreatedAt:    d.clock.Now(),
	}
}

func issueFor(t *testing.T, d testDeps, user userdomain.User) string {
	t.Helper()
	raw, err := d.tokens.Issue(&token.Payload{UserID: string(user.ID), Email: user.Email})
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	return raw
}

func newTestTokens() *token.Service {
	return token.NewService(testJWTSecret, time.Hour, nil)
}
