package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
	"github.com/custodia-labs/docpay-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docpay-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyPollingInterval = "polling.interval"
	keySandboxStorage  = "sandbox.storage"
	keySandboxDataDir  = "sandbox.data_dir"
	keySandboxBaseURL  = "sandbox.base_url"
	keySandboxPolls    = "sandbox.processing_polls"
	keySandboxRate     = "sandbox.requests_per_second"
	keySandboxBurst    = "sandbox.burst"
)

// SettingKeys lists every config key the settings service reads.
func SettingKeys() []string {
	return []string{
		keyPollingInterval,
		keySandboxStorage,
		keySandboxDataDir,
		keySandboxBaseURL,
		keySandboxPolls,
		keySandboxRate,
		keySandboxBurst,
	}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or unparsable values fall back to their defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Polling: domain.PollingSettings{
			Interval: s.getDuration(keyPollingInterval, defaults.Polling.Interval),
		},
		Sandbox: domain.SandboxSettings{
			Storage:           s.getStorageBackend(defaults.Sandbox.Storage),
			DataDir:           s.configStore.GetString(keySandboxDataDir), // No default - resolved against the config dir
			BaseURL:           s.getString(keySandboxBaseURL, defaults.Sandbox.BaseURL),
			ProcessingPolls:   s.getInt(keySandboxPolls, defaults.Sandbox.ProcessingPolls),
			RequestsPerSecond: s.getInt(keySandboxRate, defaults.Sandbox.RequestsPerSecond),
			Burst:             s.getInt(keySandboxBurst, defaults.Sandbox.Burst),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	if err := s.configStore.Set(keyPollingInterval, settings.Polling.Interval.String()); err != nil {
		return fmt.Errorf("save polling interval: %w", err)
	}
	if err := s.configStore.Set(keySandboxStorage, settings.Sandbox.Storage.String()); err != nil {
		return fmt.Errorf("save sandbox storage: %w", err)
	}
	if settings.Sandbox.DataDir != "" {
		if err := s.configStore.Set(keySandboxDataDir, settings.Sandbox.DataDir); err != nil {
			return fmt.Errorf("save sandbox data_dir: %w", err)
		}
	}
	if err := s.configStore.Set(keySandboxBaseURL, settings.Sandbox.BaseURL); err != nil {
		return fmt.Errorf("save sandbox base_url: %w", err)
	}
	if err := s.configStore.Set(keySandboxPolls, settings.Sandbox.ProcessingPolls); err != nil {
		return fmt.Errorf("save sandbox processing_polls: %w", err)
	}
	if err := s.configStore.Set(keySandboxRate, settings.Sandbox.RequestsPerSecond); err != nil {
		return fmt.Errorf("save sandbox requests_per_second: %w", err)
	}
	if err := s.configStore.Set(keySandboxBurst, settings.Sandbox.Burst); err != nil {
		return fmt.Errorf("save sandbox burst: %w", err)
	}

	return nil
}

// SetPollingInterval updates the delay between document status checks.
func (s *SettingsService) SetPollingInterval(interval time.Duration) error {
	if interval <= 0 {
		return fmt.Errorf("%w: polling interval must be positive", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Polling.Interval = interval

	return s.Save(settings)
}

// SetStorageBackend selects where the sandbox keeps its records.
func (s *SettingsService) SetStorageBackend(backend domain.StorageBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, backend)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Sandbox.Storage = backend

	return s.Save(settings)
}

// Validate checks if current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return settings.Validate()
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		return defaultVal
	}
	return d
}

func (s *SettingsService) getStorageBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(keySandboxStorage)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
