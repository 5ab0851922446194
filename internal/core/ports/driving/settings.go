package driving

import "github.com/custodia-labs/pew/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, falling back to defaults
	// for anything unset or invalid.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetDataSource switches the backend the tables are loaded from.
	SetDataSource(source domain.DataSource) error

	// Validate checks that the current settings can be used.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
