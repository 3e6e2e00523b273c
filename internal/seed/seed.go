package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/app/repositories"
	"github.com/ekaplan/prepsphere/internal/config"
	"github.com/ekaplan/prepsphere/internal/pkg/apperrors"
	"github.com/ekaplan/prepsphere/internal/pkg/auth"
)

// CreateDefaultData seeds the platform settings record and the admin account
// on first boot. Existing records are left alone.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories, cfg *config.Config, lgr zerolog.Logger) error {
	var finalErr error

	// Settings file is created with defaults if missing
	settings, err := repos.SettingsRepository.GetSettings(ctx)
	if err != nil {
		lgr.Error().Err(err).Msg("Error reading platform settings")
		finalErr = errors.Join(finalErr, err)
	} else if err := repos.SettingsRepository.ReplaceSettings(ctx, settings); err != nil {
		lgr.Error().Err(err).Msg("Error seeding platform settings")
		finalErr = errors.Join(finalErr, err)
	}

	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		lgr.Info().Msg("Admin credentials not configured, skipping admin seed")
		return finalErr
	}

	if _, err := repos.UserRepository.GetUserByEmail(ctx, cfg.Admin.Email); err == nil {
		return finalErr
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		lgr.Error().Err(err).Msg("Error checking for admin account")
		return errors.Join(finalErr, err)
	}

	hashedPassword, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing admin password")
		return errors.Join(finalErr, err)
	}

	admin := &models.User{
		Email:        cfg.Admin.Email,
		PasswordHash: hashedPassword,
		Name:         "Administrator",
		IsActive:     true,
	}
	if err := repos.UserRepository.CreateUser(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin account")
		return errors.Join(finalErr, err)
	}

	// CreateUser defaults new accounts to USER
	if _, err := repos.UserRepository.UpdateUser(ctx, admin.ID, func(u *models.User) error {
		u.RoleType = models.RoleAdmin
		return nil
	}); err != nil {
		lgr.Error().Err(err).Msg("Error promoting admin account")
		return errors.Join(finalErr, err)
	}

	lgr.Info().Str("email", cfg.Admin.Email).Msg("Admin account created")
	return finalErr
}
