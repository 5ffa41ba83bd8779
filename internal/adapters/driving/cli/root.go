// Package cli implements the docpay command line interface.
package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docpay-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docpay-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docpay-cli/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by the commands. They are built by the root command's
// pre-run hook unless already set.
var (
	documentManager driving.DocumentManager
	settingsService driving.SettingsService
	configStore     driven.ConfigStore
	shutdown        func() error
)

// Root flags.
var (
	verbose   bool
	configDir string
	ephemeral bool
)

// Command annotations controlling which services are wired.
const (
	skipWiring = "docpay.skip-wiring"
	configOnly = "docpay.config-only"
)

var rootCmd = &cobra.Command{
	Use:   "docpay",
	Short: "Upload documents, read extractions and manage payment requests",
	Long: `docpay drives a document processing backend from the command line.

Upload invoices and other documents, wait for the backend to extract
payment details, send corrections as feedback and create or resolve
payment requests for banking apps.

By default docpay talks to a local sandbox backend that keeps its
records in ~/.docpay/data/sandbox.db.`,
	SilenceUsage:      true,
	PersistentPreRunE: setupServices,
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeServices()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.docpay)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep sandbox records in memory only")
}

// Execute runs the root command. It is cancelled on SIGINT or SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if closeErr := closeServices(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("%v", err)
	}
	return err
}

func setupServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if cmd.Annotations[skipWiring] == "true" {
		return nil
	}
	if settingsService != nil && configStore != nil {
		if documentManager != nil || cmd.Annotations[configOnly] == "true" {
			return nil
		}
	}

	app, err := newApp(configDir, ephemeral, cmd.Annotations[configOnly] == "true")
	if err != nil {
		return err
	}

	if app.documents != nil {
		documentManager = app.documents
	}
	settingsService = app.settings
	configStore = app.config
	shutdown = app.Close
	return nil
}

func closeServices() error {
	if shutdown == nil {
		return nil
	}
	err := shutdown()
	shutdown = nil
	documentManager = nil
	settingsService = nil
	configStore = nil
	return err
}
