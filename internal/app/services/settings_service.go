package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/app/models/dto"
	"github.com/ekaplan/prepsphere/internal/app/repositories"
)

// SettingsService handles the platform settings singleton
type SettingsService struct {
	settingsRepo *repositories.SettingsRepository
	logger       zerolog.Logger
}

// NewSettingsService creates a new SettingsService
func NewSettingsService(settingsRepo *repositories.SettingsRepository, logger zerolog.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// GetSettings returns the current platform settings
func (s *SettingsService) GetSettings(ctx context.Context) (*dto.SettingsResponse, error) {
	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	resp := dto.ToSettingsResponse(settings)
	return &resp, nil
}

// UpdateSettings replaces the settings record (admin only)
func (s *SettingsService) UpdateSettings(ctx context.Context, req *dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	settings := &models.PlatformSettings{
		PlatformName:       req.PlatformName,
		SupportEmail:       req.SupportEmail,
		MaintenanceMode:    req.MaintenanceMode,
		RegistrationOpen:   req.RegistrationOpen,
		DailyPracticeSize:  req.DailyPracticeSize,
		AnnouncementBanner: req.AnnouncementBanner,
	}
	if err := s.settingsRepo.ReplaceSettings(ctx, settings); err != nil {
		return nil, err
	}

	s.logger.Info().Str("platform", settings.PlatformName).Msg("Platform settings updated")
	resp := dto.ToSettingsResponse(settings)
	return &resp, nil
}
