package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
)

func TestCreateAndGetToken(t *testing.T) {
	repo := NewTokenRepository(newTestStore(t))
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour)

	require.NoError(t, repo.CreateToken(ctx, "tok-1", "u1", expiry))

	userID, gotExpiry, err := repo.GetTokenByValue(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.WithinDuration(t, expiry, gotExpiry, time.Second)

	_, _, err = repo.GetTokenByValue(ctx, "unknown")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestGetTokenRejectsExpired(t *testing.T) {
	repo := NewTokenRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateToken(ctx, "tok-old", "u1", time.Now().Add(-time.Minute)))

	_, _, err := repo.GetTokenByValue(ctx, "tok-old")
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestRevokeToken(t *testing.T) {
	repo := NewTokenRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateToken(ctx, "tok-1", "u1", time.Now().Add(time.Hour)))
	require.NoError(t, repo.RevokeToken(ctx, "tok-1"))

	_, _, err := repo.GetTokenByValue(ctx, "tok-1")
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	err = repo.RevokeToken(ctx, "unknown")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestRevokeAllUserTokens(t *testing.T) {
	repo := NewTokenRepository(newTestStore(t))
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour)

	require.NoError(t, repo.CreateToken(ctx, "tok-1", "u1", expiry))
	require.NoError(t, repo.CreateToken(ctx, "tok-2", "u1", expiry))
	require.NoError(t, repo.CreateToken(ctx, "tok-3", "u2", expiry))

	require.NoError(t, repo.RevokeAllUserTokens(ctx, "u1"))

	_, _, err := repo.GetTokenByValue(ctx, "tok-1")
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
	_, _, err = repo.GetTokenByValue(ctx, "tok-2")
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)

	// Another user's tokens are untouched
	userID, _, err := repo.GetTokenByValue(ctx, "tok-3")
	require.NoError(t, err)
	assert.Equal(t, "u2", userID)

	// Revoking for a user with no tokens is a no-op
	require.NoError(t, repo.RevokeAllUserTokens(ctx, "u99"))
}

func TestCleanupExpiredTokens(t *testing.T) {
	repo := NewTokenRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateToken(ctx, "tok-live", "u1", time.Now().Add(time.Hour)))
	require.NoError(t, repo.CreateToken(ctx, "tok-dead", "u1", time.Now().Add(-time.Hour)))

	deleted, err := repo.CleanupExpiredTokens(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, _, err = repo.GetTokenByValue(ctx, "tok-live")
	assert.NoError(t, err)
	_, _, err = repo.GetTokenByValue(ctx, "tok-dead")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}
