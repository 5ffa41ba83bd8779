package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docpay-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	require.NotNil(t, service)
}

func TestSettingsService_NilStore(t *testing.T) {
	service := NewSettingsService(nil)

	_, err := service.Get()
	assert.ErrorIs(t, err, domain.ErrNotImplemented)

	defaults := domain.DefaultAppSettings()
	assert.ErrorIs(t, service.Save(&defaults), domain.ErrNotImplemented)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"polling.interval":            "250ms",
		"sandbox.storage":             "memory",
		"sandbox.data_dir":            "/tmp/docpay",
		"sandbox.base_url":            "https://example.test",
		"sandbox.processing_polls":    int64(0),
		"sandbox.requests_per_second": int64(5),
		"sandbox.burst":               int64(10),
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, settings.Polling.Interval)
	assert.Equal(t, domain.StorageBackendMemory, settings.Sandbox.Storage)
	assert.Equal(t, "/tmp/docpay", settings.Sandbox.DataDir)
	assert.Equal(t, "https://example.test", settings.Sandbox.BaseURL)
	assert.Equal(t, 0, settings.Sandbox.ProcessingPolls)
	assert.Equal(t, 5, settings.Sandbox.RequestsPerSecond)
	assert.Equal(t, 10, settings.Sandbox.Burst)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore(map[string]any{
		"polling.interval": "soon",
		"sandbox.storage":  "floppy",
	})
	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Polling.Interval, settings.Polling.Interval)
	assert.Equal(t, defaults.Sandbox.Storage, settings.Sandbox.Storage)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Polling.Interval = 3 * time.Second
	settings.Sandbox.Storage = domain.StorageBackendMemory
	settings.Sandbox.ProcessingPolls = 4

	require.NoError(t, service.Save(&settings))

	assert.Equal(t, "3s", store.GetString("polling.interval"))
	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
}

func TestSettingsService_Save_RejectsInvalid(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Sandbox.Burst = 0

	err := service.Save(&settings)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, store.Keys())
}

func TestSettingsService_SetPollingInterval(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetPollingInterval(500*time.Millisecond))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, settings.Polling.Interval)

	assert.ErrorIs(t, service.SetPollingInterval(0), domain.ErrInvalidInput)
}

func TestSettingsService_SetStorageBackend(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetStorageBackend(domain.StorageBackendMemory))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StorageBackendMemory, settings.Sandbox.Storage)

	assert.ErrorIs(t, service.SetStorageBackend("tape"), domain.ErrInvalidInput)
}

func TestSettingsService_Validate(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)
	require.NoError(t, service.Validate())

	_ = store.Set("sandbox.burst", -1)
	assert.ErrorIs(t, service.Validate(), domain.ErrInvalidInput)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(nil)
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}

func TestSettingKeys(t *testing.T) {
	keys := SettingKeys()
	assert.Contains(t, keys, "polling.interval")
	assert.Contains(t, keys, "sandbox.storage")
	assert.Len(t, keys, 7)
}
