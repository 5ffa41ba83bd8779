package cli

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/mcp"
)

// mcp serve flags.
var (
	mcpPort        int
	mcpHost        string
	mcpToolTimeout time.Duration
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start an MCP server that lets an assistant turn documents into payments.

Tools:
  get_extractions          wait for a document and read its payment fields
  list_payment_providers   banking apps a request can be sent to
  create_payment_request   create a request from extracted fields
  get_payment_request      read one request and its status
  list_payment_requests    list all requests
  resolve_payment_request  mark an open request as paid
  get_payment              read the payment of a resolved request

Resources:
  docpay://payment-providers
  docpay://documents/{documentId}

The server uses stdio unless --port is given. get_extractions blocks while
a document is pending; --tool-timeout bounds every tool call.

Examples:
  docpay mcp serve
  docpay mcp serve --port 8080
  docpay mcp serve --port 8080 --host 0.0.0.0 --tool-timeout 2m`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVar(&mcpHost, "host", "localhost", "HTTP bind address")
	mcpServeCmd.Flags().DurationVar(&mcpToolTimeout, "tool-timeout", 0, "maximum duration of one tool call (0 = no limit)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

// mcpAddr returns the HTTP listen address, or "" for stdio.
func mcpAddr(host string, port int) (string, error) {
	if port == 0 {
		return "", nil
	}
	if port < 0 || port > 65535 {
		return "", fmt.Errorf("invalid port %d", port)
	}
	return net.JoinHostPort(host, strconv.Itoa(port)), nil
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	if mcpToolTimeout < 0 {
		return fmt.Errorf("invalid tool timeout %s", mcpToolTimeout)
	}
	addr, err := mcpAddr(mcpHost, mcpPort)
	if err != nil {
		return err
	}

	server, err := mcp.NewServer(&mcp.Ports{Documents: documentManager}, mcp.WithToolTimeout(mcpToolTimeout))
	if err != nil {
		return err
	}

	if addr != "" {
		cmd.PrintErrf("MCP server listening on http://%s\n", addr)
	}
	return server.Serve(cmd.Context(), addr)
}
