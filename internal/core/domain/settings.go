package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// StorageBackend selects where the sandbox backend keeps its records.
type StorageBackend string

// Available storage backends.
const (
	// StorageBackendMemory keeps records in process memory only.
	StorageBackendMemory StorageBackend = "memory"

	// StorageBackendSQLite persists records to a SQLite database.
	StorageBackendSQLite StorageBackend = "sqlite"
)

// IsValid returns true if the storage backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageBackendMemory, StorageBackendSQLite:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageBackendMemory:
		return "Memory (lost on exit)"
	case StorageBackendSQLite:
		return "SQLite (persisted to the data directory)"
	default:
		return unknownDescription
	}
}

// PollingSettings controls how document processing is awaited.
type PollingSettings struct {
	// Interval is the delay between two document status checks.
	Interval time.Duration
}

// SandboxSettings configures the local emulated backend.
type SandboxSettings struct {
	// Storage selects the record store.
	Storage StorageBackend

	// DataDir holds the SQLite database. Empty means <config dir>/data.
	DataDir string

	// BaseURL prefixes every resource location the sandbox hands out.
	BaseURL string

	// ProcessingPolls is how many status reads a new document stays PENDING for.
	ProcessingPolls int

	// RequestsPerSecond is the sustained request rate the sandbox accepts.
	RequestsPerSecond int

	// Burst is the number of requests allowed above the sustained rate.
	Burst int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Polling holds document polling settings.
	Polling PollingSettings

	// Sandbox holds sandbox backend settings.
	Sandbox SandboxSettings
}

// Validate checks the settings for values the services cannot run with.
func (s AppSettings) Validate() error {
	if s.Polling.Interval <= 0 {
		return fmt.Errorf("%w: polling interval must be positive", ErrInvalidInput)
	}
	if !s.Sandbox.Storage.IsValid() {
		return fmt.Errorf("%w: storage backend %q", ErrInvalidInput, s.Sandbox.Storage)
	}
	if s.Sandbox.ProcessingPolls < 0 {
		return fmt.Errorf("%w: processing polls must not be negative", ErrInvalidInput)
	}
	if s.Sandbox.RequestsPerSecond <= 0 || s.Sandbox.Burst <= 0 {
		return fmt.Errorf("%w: rate limit must be positive", ErrInvalidInput)
	}
	return nil
}

// DefaultPollingInterval is the delay between document status checks.
const DefaultPollingInterval = time.Second

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Polling: PollingSettings{
			Interval: DefaultPollingInterval,
		},
		Sandbox: SandboxSettings{
			Storage:           StorageBackendSQLite,
			BaseURL:           "https://sandbox.docpay.local",
			ProcessingPolls:   1,
			RequestsPerSecond: 20,
			Burst:             40,
		},
	}
}

// AllStorageBackends returns all available storage backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{
		StorageBackendMemory,
		StorageBackendSQLite,
	}
}
