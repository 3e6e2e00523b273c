package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/repositories"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
	"github.com/ekaplan/prepsphere/internal/pkg/auth"
)

type userFixture struct {
	svc       *UserService
	userRepo  *repositories.UserRepository
	tokenRepo *repositories.TokenRepository
}

func newUserFixture(t *testing.T) *userFixture {
	t.Helper()
	store := newServiceStore(t)
	userRepo := repositories.NewUserRepository(store)
	tokenRepo := repositories.NewTokenRepository(store)
	return &userFixture{
		svc:       NewUserService(userRepo, tokenRepo, zerolog.Nop()),
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

func (f *userFixture) createUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{Name: "Priya Nair", Email: email, PasswordHash: hash}
	require.NoError(t, f.userRepo.CreateUser(context.Background(), user))
	return user
}

func TestGetProfileReturnsUser(t *testing.T) {
	f := newUserFixture(t)
	user := f.createUser(t, "priya@example.com", "Sup3rSecret")

	resp, err := f.svc.GetProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "priya@example.com", resp.Email)
	assert.Equal(t, "Priya Nair", resp.Name)
}

func TestUpdateProfileTrimsFields(t *testing.T) {
	f := newUserFixture(t)
	user := f.createUser(t, "priya@example.com", "Sup3rSecret")

	resp, err := f.svc.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{
		Name:  "  Priya N.  ",
		Phone: " 555-0104 ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Priya N.", resp.Name)
	assert.Equal(t, "555-0104", resp.Phone)
}

func TestUpdateProfileRejectsBlankName(t *testing.T) {
	f := newUserFixture(t)
	user := f.createUser(t, "priya@example.com", "Sup3rSecret")

	_, err := f.svc.UpdateProfile(context.Background(), user.ID, &dto.UpdateProfileRequest{Name: "   "})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	user := f.createUser(t, "priya@example.com", "Sup3rSecret")
	require.NoError(t, f.tokenRepo.CreateToken(ctx, "refresh-1", user.ID, time.Now().Add(time.Hour)))

	err := f.svc.ChangePassword(ctx, user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "Sup3rSecret",
		NewPassword:     "N3wSecret99",
	})
	require.NoError(t, err)

	updated, err := f.userRepo.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(updated.PasswordHash, "N3wSecret99"))
	assert.False(t, auth.CheckPassword(updated.PasswordHash, "Sup3rSecret"))

	_, _, err = f.tokenRepo.GetTokenByValue(ctx, "refresh-1")
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestChangePasswordRejectsWrongCurrent(t *testing.T) {
	f := newUserFixture(t)
	user := f.createUser(t, "priya@example.com", "Sup3rSecret")

	err := f.svc.ChangePassword(context.Background(), user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "nope",
		NewPassword:     "N3wSecret99",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestSetUserStatusDeactivationRevokesTokens(t *testing.T) {
	f := newUserFixture(t)
	ctx := context.Background()
	user := f.createUser(t, "priya@example.com", "Sup3rSecret")
	require.NoError(t, f.tokenRepo.CreateToken(ctx, "refresh-2", user.ID, time.Now().Add(time.Hour)))

	resp, err := f.svc.SetUserStatus(ctx, user.ID, false)
	require.NoError(t, err)
	assert.False(t, resp.IsActive)

	_, _, err = f.tokenRepo.GetTokenByValue(ctx, "refresh-2")
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	resp, err = f.svc.SetUserStatus(ctx, user.ID, true)
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
}

func TestListUsersAdminView(t *testing.T) {
	f := newUserFixture(t)
	f.createUser(t, "a@example.com", "Sup3rSecret")
	f.createUser(t, "b@example.com", "Sup3rSecret")

	resp, err := f.svc.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
	assert.Len(t, resp.Users, 2)
}

func TestChangePasswordEnforcesPolicy(t *testing.T) {
	f := newUserFixture(t)
	user := f.createUser(t, "priya@example.com", "Sup3rSecret")

	err := f.svc.ChangePassword(context.Background(), user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "Sup3rSecret",
		NewPassword:     "lettersonly",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	unchanged, err := f.userRepo.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(unchanged.PasswordHash, "Sup3rSecret"))
}
