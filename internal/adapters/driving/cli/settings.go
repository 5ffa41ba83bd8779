package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure polling and sandbox settings.

Use subcommands to change single settings or run the interactive wizard.`,
	Annotations: map[string]string{configOnly: "true"},
	RunE:        runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Show current settings",
	Annotations: map[string]string{configOnly: "true"},
	RunE:        runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:         "wizard",
	Short:       "Interactive setup wizard",
	Long:        `Run an interactive wizard to configure all settings step by step.`,
	Annotations: map[string]string{configOnly: "true"},
	RunE:        runSettingsWizard,
}

var settingsPollingCmd = &cobra.Command{
	Use:         "polling [interval]",
	Short:       "Set the document polling interval",
	Long:        `Set the delay between two document status checks, e.g. 500ms or 2s.`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{configOnly: "true"},
	RunE:        runSettingsPolling,
}

var settingsStorageCmd = &cobra.Command{
	Use:   "storage [backend]",
	Short: "Set the sandbox storage backend",
	Long: `Select where the sandbox keeps its records.

Available backends:
  memory - Records are lost when docpay exits
  sqlite - Records are persisted to the data directory`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{configOnly: "true"},
	RunE:        runSettingsStorage,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsPollingCmd)
	settingsCmd.AddCommand(settingsStorageCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Polling]")
	cmd.Printf("  Interval: %s\n", settings.Polling.Interval)
	cmd.Println()

	cmd.Println("[Sandbox]")
	cmd.Printf("  Storage: %s\n", settings.Sandbox.Storage.Description())
	if settings.Sandbox.Storage == domain.StorageBackendSQLite {
		dataDir := settings.Sandbox.DataDir
		if dataDir == "" {
			dataDir = "(config dir)/data"
		}
		cmd.Printf("  Data dir: %s\n", dataDir)
	}
	cmd.Printf("  Base URL: %s\n", settings.Sandbox.BaseURL)
	cmd.Printf("  Processing polls: %d\n", settings.Sandbox.ProcessingPolls)
	cmd.Printf("  Rate limit: %d/s (burst %d)\n", settings.Sandbox.RequestsPerSecond, settings.Sandbox.Burst)
	cmd.Println()

	status := "valid"
	if err := settings.Validate(); err != nil {
		status = err.Error()
	}
	cmd.Printf("Status: %s\n", status)
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("docpay Settings Wizard")
	cmd.Println("======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	// Step 1: Storage backend
	cmd.Println("Step 1: Select Sandbox Storage")
	cmd.Println("------------------------------")
	backends := domain.AllStorageBackends()
	current := 1
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b.Description())
		if b == settings.Sandbox.Storage {
			current = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", current)
	idx := parseChoice(readLine(reader), len(backends), current)
	settings.Sandbox.Storage = backends[idx-1]
	cmd.Printf("Storage: %s\n\n", settings.Sandbox.Storage)

	// Step 2: Polling interval
	cmd.Println("Step 2: Polling Interval")
	cmd.Println("------------------------")
	cmd.Printf("Enter interval [%s]: ", settings.Polling.Interval)
	if input := readLine(reader); input != "" {
		interval, err := time.ParseDuration(input)
		if err != nil || interval <= 0 {
			return fmt.Errorf("invalid polling interval %q", input)
		}
		settings.Polling.Interval = interval
	}
	cmd.Printf("Polling interval: %s\n\n", settings.Polling.Interval)

	// Step 3: Processing delay
	cmd.Println("Step 3: Sandbox Processing Delay")
	cmd.Println("--------------------------------")
	cmd.Println("Number of status checks a new document stays PENDING for.")
	cmd.Printf("Enter polls [%d]: ", settings.Sandbox.ProcessingPolls)
	if input := readLine(reader); input != "" {
		polls, err := strconv.Atoi(input)
		if err != nil || polls < 0 {
			return fmt.Errorf("invalid number of polls %q", input)
		}
		settings.Sandbox.ProcessingPolls = polls
	}
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	cmd.Println("All settings are valid and saved.")
	return nil
}

func runSettingsPolling(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	interval, err := time.ParseDuration(args[0])
	if err != nil {
		return fmt.Errorf("invalid polling interval: %w", err)
	}
	if err := settingsService.SetPollingInterval(interval); err != nil {
		return fmt.Errorf("failed to set polling interval: %w", err)
	}

	cmd.Printf("Polling interval set to: %s\n", interval)
	return nil
}

func runSettingsStorage(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	backend := domain.StorageBackend(strings.ToLower(args[0]))
	if err := settingsService.SetStorageBackend(backend); err != nil {
		return fmt.Errorf("failed to set storage backend: %w", err)
	}

	cmd.Printf("Storage backend set to: %s\n", backend.Description())
	return nil
}

// Helper functions.

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func parseChoice(input string, maxVal, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 1 || val > maxVal {
		return defaultVal
	}
	return val
}
