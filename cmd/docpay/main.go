// Command docpay uploads documents to a document processing backend,
// reads the extracted payment details and manages payment requests.
package main

import (
	"os"

	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
