package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/ekaplan/prepsphere/internal/app/models"
	"github.com/ekaplan/prepsphere/internal/pkg/jsonstore"
)

// SettingsRepository handles the platform-settings.json singleton record
type SettingsRepository struct {
	store *jsonstore.Store
}

// NewSettingsRepository creates a new SettingsRepository
func NewSettingsRepository(store *jsonstore.Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

func (r *SettingsRepository) path() string {
	return r.store.Path(settingsFile)
}

// GetSettings returns the current platform settings, falling back to
// defaults when the file is absent
func (r *SettingsRepository) GetSettings(ctx context.Context) (*models.PlatformSettings, error) {
	settings := jsonstore.Read(r.store, r.path(), models.DefaultPlatformSettings())
	return &settings, nil
}

// ReplaceSettings overwrites the settings record with the given value
func (r *SettingsRepository) ReplaceSettings(ctx context.Context, settings *models.PlatformSettings) error {
	settings.UpdatedAt = time.Now()
	if err := jsonstore.Write(r.store, r.path(), settings); err != nil {
		return fmt.Errorf("error saving platform settings: %w", err)
	}
	return nil
}
