package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docpay-cli/internal/core/services"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write raw configuration values",
	Long: `Read and write values in config.toml.

Known keys:
  polling.interval             delay between status checks (e.g. 1s)
  sandbox.storage              memory or sqlite
  sandbox.data_dir             directory of the sandbox database
  sandbox.base_url             prefix of sandbox resource locations
  sandbox.processing_polls     status checks a new document stays PENDING for
  sandbox.requests_per_second  sustained sandbox request rate
  sandbox.burst                requests allowed above the rate`,
}

var configGetCmd = &cobra.Command{
	Use:         "get [key]",
	Short:       "Print a configuration value",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{configOnly: "true"},
	RunE:        runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:         "set [key] [value]",
	Short:       "Set a configuration value",
	Args:        cobra.ExactArgs(2),
	Annotations: map[string]string{configOnly: "true"},
	RunE:        runConfigSet,
}

var configUnsetCmd = &cobra.Command{
	Use:         "unset [key]",
	Short:       "Remove a configuration value so its default applies",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{configOnly: "true"},
	RunE:        runConfigUnset,
}

var configListCmd = &cobra.Command{
	Use:         "list",
	Short:       "List configured values",
	Annotations: map[string]string{configOnly: "true"},
	RunE:        runConfigList,
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the configuration file path",
	Annotations: map[string]string{configOnly: "true"},
	RunE:        runConfigPath,
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	val, ok := configStore.Get(args[0])
	if !ok {
		return fmt.Errorf("key %s is not set", args[0])
	}
	cmd.Printf("%v\n", val)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	key := args[0]
	if !isKnownKey(key) {
		return fmt.Errorf("unknown config key %s", key)
	}

	previous, existed := configStore.Get(key)
	if err := configStore.Set(key, parseConfigValue(args[1])); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	if settingsService != nil {
		if err := settingsService.Validate(); err != nil {
			if existed {
				_ = configStore.Set(key, previous) //nolint:errcheck // best-effort rollback
			} else {
				_ = configStore.Unset(key) //nolint:errcheck // best-effort rollback
			}
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	cmd.Printf("%s = %s\n", key, args[1])
	return nil
}

func runConfigUnset(cmd *cobra.Command, args []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	if err := configStore.Unset(args[0]); err != nil {
		return fmt.Errorf("failed to unset %s: %w", args[0], err)
	}
	cmd.Printf("Unset %s\n", args[0])
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}

	keys := configStore.Keys()
	if len(keys) == 0 {
		cmd.Println("No values configured; defaults apply.")
		return nil
	}
	for _, key := range keys {
		val, _ := configStore.Get(key)
		cmd.Printf("%s = %v\n", key, val)
	}
	return nil
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	if configStore == nil {
		return errors.New("config store not configured")
	}
	cmd.Println(configStore.Path())
	return nil
}

func isKnownKey(key string) bool {
	for _, k := range services.SettingKeys() {
		if k == key {
			return true
		}
	}
	return false
}

// parseConfigValue stores integers and booleans with their type.
func parseConfigValue(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}
