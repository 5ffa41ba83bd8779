package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/mcp"
)

var versionCmd = &cobra.Command{
	Use:         "version",
	Short:       "Print the version number",
	Long:        `Print the docpay version and the version of its MCP server.`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipWiring: "true"},
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("docpay version %s\n", version)
		cmd.Printf("mcp server %s\n", mcp.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
