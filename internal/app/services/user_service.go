package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/repositories"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
	"github.com/ekaplan/prepsphere/internal/pkg/auth"
)

// UserService handles user profile and administration operations
type UserService struct {
	userRepo  *repositories.UserRepository
	tokenRepo *repositories.TokenRepository
	logger    zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo *repositories.UserRepository, tokenRepo *repositories.TokenRepository, logger zerolog.Logger) *UserService {
	return &UserService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		logger:    logger,
	}
}

// GetProfile returns the profile of the given user
func (s *UserService) GetProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// UpdateProfile updates the caller's name and phone
func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}

	user, err := s.userRepo.UpdateUser(ctx, userID, func(u *models.User) error {
		u.Name = strings.TrimSpace(req.Name)
		u.Phone = strings.TrimSpace(req.Phone)
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// ChangePassword verifies the current password and sets a new one. All of the
// user's refresh tokens are revoked afterwards.
func (s *UserService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return apperrors.ErrInvalidCredentials
	}
	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if _, err := s.userRepo.UpdateUser(ctx, userID, func(u *models.User) error {
		u.PasswordHash = hashedPassword
		return nil
	}); err != nil {
		return err
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("userId", userID).Msg("Failed to revoke tokens after password change")
	}
	return nil
}

// ListUsers returns every user account (admin only)
func (s *UserService) ListUsers(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := s.userRepo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	resp := dto.ToUserListResponse(users)
	return &resp, nil
}

// SetUserStatus activates or deactivates an account (admin only).
// Deactivation revokes the user's refresh tokens.
func (s *UserService) SetUserStatus(ctx context.Context, userID string, isActive bool) (*dto.UserResponse, error) {
	user, err := s.userRepo.UpdateUser(ctx, userID, func(u *models.User) error {
		u.IsActive = isActive
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !isActive {
		if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
			s.logger.Warn().Err(err).Str("userId", userID).Msg("Failed to revoke tokens for deactivated user")
		}
	}

	resp := dto.ToUserResponse(user)
	return &resp, nil
}
