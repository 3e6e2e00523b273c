package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/repositories"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
	"github.com/ekaplan/prepsphere/internal/pkg/auth"
	"github.com/ekaplan/prepsphere/internal/pkg/email"
	"github.com/ekaplan/prepsphere/internal/pkg/otp"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// AuthService handles authentication operations
type AuthService struct {
	userRepo     *repositories.UserRepository
	tokenRepo    *repositories.TokenRepository
	settingsRepo *repositories.SettingsRepository
	jwtService   *auth.JWTService
	otpStore     *otp.Store
	emailService email.EmailService
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo *repositories.UserRepository,
	tokenRepo *repositories.TokenRepository,
	settingsRepo *repositories.SettingsRepository,
	jwtService *auth.JWTService,
	otpStore *otp.Store,
	emailService email.EmailService,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		settingsRepo: settingsRepo,
		jwtService:   jwtService,
		otpStore:     otpStore,
		emailService: emailService,
		logger:       logger,
	}
}

// validateEmail validates an email address
func (s *AuthService) validateEmail(address string) error {
	if strings.TrimSpace(address) == "" {
		return fmt.Errorf("%w: email cannot be empty", apperrors.ErrValidationFailed)
	}
	if !emailRegex.MatchString(address) {
		return apperrors.ErrInvalidEmail
	}
	return nil
}

// validatePassword checks if password meets requirements. Shared with the
// authenticated password-change flow.
func validatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password cannot be empty", apperrors.ErrValidationFailed)
	}
	if len(password) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters long", apperrors.ErrInvalidPassword)
	}

	hasLetter := false
	hasDigit := false
	for _, char := range password {
		if unicode.IsLetter(char) {
			hasLetter = true
		}
		if unicode.IsDigit(char) {
			hasDigit = true
		}
	}
	if !hasLetter {
		return fmt.Errorf("%w: password must contain at least one letter", apperrors.ErrInvalidPassword)
	}
	if !hasDigit {
		return fmt.Errorf("%w: password must contain at least one digit", apperrors.ErrInvalidPassword)
	}
	return nil
}

// Register registers a new user account
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := s.validateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading platform settings: %w", err)
	}
	if !settings.RegistrationOpen {
		return nil, apperrors.NewForbiddenError("registration is currently closed")
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: hashedPassword,
		Name:         strings.TrimSpace(req.Name),
		Phone:        strings.TrimSpace(req.Phone),
		IsActive:     true,
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.emailService.SendWelcomeEmail(user.Email, user.Name); err != nil {
		s.logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send welcome email")
	}

	return s.generateAuthResponse(ctx, user)
}

// Login authenticates a user and returns a token pair
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	now := time.Now()
	user, err = s.userRepo.UpdateUser(ctx, user.ID, func(u *models.User) error {
		u.LastLoginAt = &now
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error recording login time: %w", err)
	}

	return s.generateAuthResponse(ctx, user)
}

// RefreshToken exchanges a valid refresh token for a new token pair.
// The old refresh token is revoked so each token works exactly once.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	userID, _, err := s.tokenRepo.GetTokenByValue(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		return nil, fmt.Errorf("error revoking refresh token: %w", err)
	}

	return s.generateAuthResponse(ctx, user)
}

// Logout revokes the given refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.tokenRepo.RevokeToken(ctx, refreshToken); err != nil {
		if errors.Is(err, apperrors.ErrTokenNotFound) {
			return nil
		}
		return err
	}
	return nil
}

// ForgotPassword starts a password reset by emailing a verification code.
// A missing account is not reported to the caller.
func (s *AuthService) ForgotPassword(ctx context.Context, address string) error {
	user, err := s.userRepo.GetUserByEmail(ctx, address)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Info().Str("email", address).Msg("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	code, err := s.otpStore.Issue(user.Email)
	if err != nil {
		return fmt.Errorf("error issuing verification code: %w", err)
	}

	if err := s.emailService.SendPasswordResetEmail(user.Email, user.Name, code); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send password reset email")
		return fmt.Errorf("error sending password reset email: %w", err)
	}
	return nil
}

// ResetPassword completes a password reset with the emailed code. All of the
// user's refresh tokens are revoked on success.
func (s *AuthService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}

	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrOTPInvalid
		}
		return err
	}

	if err := s.otpStore.Verify(user.Email, req.Code); err != nil {
		return err
	}

	hashedPassword, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}

	if _, err := s.userRepo.UpdateUser(ctx, user.ID, func(u *models.User) error {
		u.PasswordHash = hashedPassword
		return nil
	}); err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, user.ID); err != nil {
		s.logger.Warn().Err(err).Str("userId", user.ID).Msg("Failed to revoke tokens after password reset")
	}
	return nil
}

// generateAuthResponse creates a token pair, persists the refresh token and
// builds the authentication response
func (s *AuthService) generateAuthResponse(ctx context.Context, user *models.User) (*dto.AuthResponse, error) {
	accessToken, refreshToken, expiresIn, refreshExpiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("error generating tokens: %w", err)
	}

	if err := s.tokenRepo.CreateToken(ctx, refreshToken, user.ID, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, fmt.Errorf("error storing refresh token: %w", err)
	}

	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken:           accessToken,
			TokenType:             "Bearer",
			ExpiresIn:             int64(expiresIn),
			RefreshToken:          refreshToken,
			RefreshTokenExpiresIn: int64(refreshExpiresIn),
		},
		User: dto.ToUserResponse(user),
	}, nil
}
