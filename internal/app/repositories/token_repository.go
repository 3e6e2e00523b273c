package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
	"github.com/ekaplan/prepsphere/internal/pkg/jsonstore"
	"github.com/ekaplan/prepsphere/internal/pkg/logger"
)

// RefreshToken is a stored refresh token record
type RefreshToken struct {
	Token      string    `json:"token"`
	UserID     string    `json:"userId"`
	ExpiryDate time.Time `json:"expiryDate"`
	IsRevoked  bool      `json:"isRevoked"`
	CreatedAt  time.Time `json:"createdAt"`
}

// TokenRepository handles refresh token operations against refresh-tokens.json
type TokenRepository struct {
	tokens *jsonstore.Collection[RefreshToken]
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(store *jsonstore.Store) *TokenRepository {
	path := store.Path(refreshTokensFile)
	return &TokenRepository{
		tokens: jsonstore.NewCollection(store, path, func(t RefreshToken) string { return t.Token }),
	}
}

// CreateToken stores a new refresh token
func (r *TokenRepository) CreateToken(ctx context.Context, token string, userID string, expiryDate time.Time) error {
	record := RefreshToken{
		Token:      token,
		UserID:     userID,
		ExpiryDate: expiryDate,
		CreatedAt:  time.Now(),
	}
	if err := r.tokens.Add(record); err != nil {
		if errors.Is(err, apperrors.ErrResourceAlreadyExists) {
			// Shouldn't happen with UUID tokens, but handle defensively
			logger.Warn().Str("userID", userID).Msg("Attempted to create duplicate refresh token")
			return apperrors.ErrTokenInvalid
		}
		logger.Error().Err(err).Str("userID", userID).Msg("Error creating refresh token")
		return fmt.Errorf("error creating token: %w", err)
	}
	return nil
}

// GetTokenByValue retrieves token information by value, rejecting revoked
// and expired tokens.
func (r *TokenRepository) GetTokenByValue(ctx context.Context, token string) (string, time.Time, error) {
	record, err := r.tokens.Find(token)
	if err != nil {
		return "", time.Time{}, apperrors.ErrTokenNotFound
	}

	if record.IsRevoked {
		return "", time.Time{}, apperrors.ErrTokenRevoked
	}
	if record.ExpiryDate.Before(time.Now()) {
		return "", time.Time{}, apperrors.ErrTokenExpired
	}

	return record.UserID, record.ExpiryDate, nil
}

// RevokeToken revokes a token
func (r *TokenRepository) RevokeToken(ctx context.Context, token string) error {
	_, err := r.tokens.Update(token, func(t *RefreshToken) error {
		t.IsRevoked = true
		return nil
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return apperrors.ErrTokenNotFound
		}
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// RevokeAllUserTokens revokes every active token for a user
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID string) error {
	err := r.tokens.Mutate(func(items []RefreshToken) ([]RefreshToken, error) {
		// It's okay if the user had no active tokens
		for i := range items {
			if items[i].UserID == userID {
				items[i].IsRevoked = true
			}
		}
		return items, nil
	})
	if err != nil {
		logger.Error().Err(err).Str("userID", userID).Msg("Error revoking user tokens")
		return fmt.Errorf("error revoking user tokens: %w", err)
	}
	return nil
}

// CleanupExpiredTokens removes expired tokens and revoked tokens older than
// 30 days, returning how many were removed.
func (r *TokenRepository) CleanupExpiredTokens(ctx context.Context) (int, error) {
	thirtyDaysAgo := time.Now().Add(-30 * 24 * time.Hour)
	now := time.Now()

	deleted := 0
	err := r.tokens.Mutate(func(items []RefreshToken) ([]RefreshToken, error) {
		kept := items[:0:0]
		for _, t := range items {
			expired := t.ExpiryDate.Before(now)
			staleRevoked := t.IsRevoked && t.CreatedAt.Before(thirtyDaysAgo)
			if !expired && !staleRevoked {
				kept = append(kept, t)
			}
		}
		deleted = len(items) - len(kept)
		return kept, nil
	})
	if err != nil {
		return 0, fmt.Errorf("error cleaning up tokens: %w", err)
	}

	if deleted > 0 {
		logger.Info().Int("deletedCount", deleted).Msg("Cleaned up expired/old revoked tokens")
	}
	return deleted, nil
}
