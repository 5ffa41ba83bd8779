package driving

import (
	"time"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetPollingInterval updates the delay between document status checks.
	SetPollingInterval(interval time.Duration) error

	// SetStorageBackend selects where the sandbox keeps its records.
	SetStorageBackend(backend domain.StorageBackend) error

	// Validate checks if current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
