package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/watch"
	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Upload files dropped into a directory",
	Long: `Watch a directory and upload every new or changed file.

Each file is uploaded, composed into a single-page document and polled
until its extractions are available. Extractions are printed as they
arrive. Hidden files and unsupported content types are skipped.

Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

var (
	watchType     string
	watchBranchID string
)

func init() {
	watchCmd.Flags().StringVarP(&watchType, "type", "t", "", "document type hint for every upload")
	watchCmd.Flags().StringVar(&watchBranchID, "branch-id", "", "client branch id sent as metadata")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if documentManager == nil {
		return errors.New("document manager not configured")
	}

	opts := []watch.Option{watch.WithDocumentType(domain.DocumentType(watchType))}
	if watchBranchID != "" {
		opts = append(opts, watch.WithBranchID(watchBranchID))
	}
	w := watch.New(documentManager, args[0], opts...)
	defer w.Close()

	results, err := w.Watch(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	cmd.Printf("Watching %s (Ctrl+C to stop)\n\n", w.Root())
	for res := range results {
		if res.Err != nil {
			cmd.Printf("%s: %v\n\n", res.Path, res.Err)
			continue
		}
		cmd.Printf("%s -> document %s\n", res.Path, res.Document.ID)
		printExtractions(cmd, res.Extractions)
		cmd.Println()
	}
	return nil
}
