package cli

import (
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/docpay-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driven/sandbox"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docpay-cli/internal/adapters/driven/taskmanager"
	"github.com/custodia-labs/docpay-cli/internal/core/domain"
	"github.com/custodia-labs/docpay-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docpay-cli/internal/core/services"
	"github.com/custodia-labs/docpay-cli/internal/logger"
)

// app holds the wired services and the resources they own.
type app struct {
	config    *file.ConfigStore
	settings  *services.SettingsService
	documents *services.DocumentManager

	backend *sandbox.Backend
	tasks   *taskmanager.Manager
}

// newApp loads the configuration. Unless configOnly is set it also wires
// the sandbox backend, the task manager and the document manager.
func newApp(dir string, inMemory, configOnly bool) (*app, error) {
	if dir == "" {
		d, err := file.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve config directory: %w", err)
		}
		dir = d
	}

	cfg, err := file.NewConfigStore(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	settingsSvc := services.NewSettingsService(cfg)
	a := &app{config: cfg, settings: settingsSvc}
	if configOnly {
		return a, nil
	}

	settings, err := settingsSvc.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to read settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", cfg.Path(), err)
	}
	if inMemory {
		settings.Sandbox.Storage = domain.StorageBackendMemory
	}

	store, err := openRecordStore(settings.Sandbox, dir)
	if err != nil {
		return nil, err
	}

	backend := sandbox.New(store, sandbox.ConfigFromSettings(settings.Sandbox))
	tasks := taskmanager.New(backend, taskmanager.WithPollInterval(settings.Polling.Interval))

	logger.Debug("wired sandbox (%s storage, %s polling)", settings.Sandbox.Storage, settings.Polling.Interval)

	a.backend = backend
	a.tasks = tasks
	a.documents = services.NewDocumentManager(tasks)
	return a, nil
}

func openRecordStore(s domain.SandboxSettings, configDir string) (driven.RecordStore, error) {
	if s.Storage == domain.StorageBackendMemory {
		return memory.NewRecordStore(), nil
	}

	dataDir := s.DataDir
	if dataDir == "" {
		dataDir = filepath.Join(configDir, "data")
	}
	db, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open sandbox database: %w", err)
	}
	logger.Debug("sandbox database: %s", db.Path())
	return db.RecordStore(), nil
}

// Close stops in-flight tasks and closes the record store.
func (a *app) Close() error {
	if a.tasks == nil {
		return nil
	}
	if err := a.tasks.Close(); err != nil {
		return err
	}
	return a.backend.Close()
}
