package dto

import "github.com/ekaplan/prepsphere/internal/app/models"

// UpdateSettingsRequest replaces the platform settings record (admin only)
type UpdateSettingsRequest struct {
	PlatformName       string `json:"platformName" binding:"required"`
	SupportEmail       string `json:"supportEmail" binding:"required,email"`
	MaintenanceMode    bool   `json:"maintenanceMode"`
	RegistrationOpen   bool   `json:"registrationOpen"`
	DailyPracticeSize  int    `json:"dailyPracticeSize" binding:"min=1,max=100"`
	AnnouncementBanner string `json:"announcementBanner,omitempty"`
}

// SettingsResponse represents the platform settings
type SettingsResponse struct {
	PlatformName       string `json:"platformName"`
	SupportEmail       string `json:"supportEmail"`
	MaintenanceMode    bool   `json:"maintenanceMode"`
	RegistrationOpen   bool   `json:"registrationOpen"`
	DailyPracticeSize  int    `json:"dailyPracticeSize"`
	AnnouncementBanner string `json:"announcementBanner,omitempty"`
	UpdatedAt          string `json:"updatedAt"`
}

// ToSettingsResponse maps stored settings to the API representation
func ToSettingsResponse(s *models.PlatformSettings) SettingsResponse {
	return SettingsResponse{
		PlatformName:       s.PlatformName,
		SupportEmail:       s.SupportEmail,
		MaintenanceMode:    s.MaintenanceMode,
		RegistrationOpen:   s.RegistrationOpen,
		DailyPracticeSize:  s.DailyPracticeSize,
		AnnouncementBanner: s.AnnouncementBanner,
		UpdatedAt:          s.UpdatedAt.Format(timeFormat),
	}
}
