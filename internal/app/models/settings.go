package models

import (
	"time"
)

// PlatformSettings is the global singleton record stored in
// platform-settings.json. Updates replace the whole record.
type PlatformSettings struct {
	PlatformName       string    `json:"platformName"`
	SupportEmail       string    `json:"supportEmail"`
	MaintenanceMode    bool      `json:"maintenanceMode"`
	RegistrationOpen   bool      `json:"registrationOpen"`
	DailyPracticeSize  int       `json:"dailyPracticeSize"` // questions per daily practice set
	AnnouncementBanner string    `json:"announcementBanner,omitempty"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// DefaultPlatformSettings returns the settings seeded on first boot.
func DefaultPlatformSettings() PlatformSettings {
	return PlatformSettings{
		PlatformName:      "PrepSphere",
		SupportEmail:      "support@prepsphere.app",
		RegistrationOpen:  true,
		DailyPracticeSize: 10,
		UpdatedAt:         time.Now(),
	}
}
