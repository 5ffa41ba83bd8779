package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

var extractionsCmd = &cobra.Command{
	Use:   "extractions",
	Short: "Read and correct extracted payment details",
}

var extractionsGetCmd = &cobra.Command{
	Use:   "get [doc-id]",
	Short: "Wait for processing and print the extractions",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtractionsGet,
}

var extractionsFeedbackCmd = &cobra.Command{
	Use:   "feedback [doc-id] [name=value...]",
	Short: "Send corrected extraction values",
	Long: `Send corrected extraction values as feedback.

Every name=value pair replaces the value of the named extraction. All
other extractions are sent back unchanged.

Example:
  docpay extractions feedback 626a... amountToPay=335.50:EUR iban=DE02300209000106531065`,
	Args: cobra.MinimumNArgs(2),
	RunE: runExtractionsFeedback,
}

func init() {
	addJSONFlag(extractionsGetCmd)

	extractionsCmd.AddCommand(extractionsGetCmd)
	extractionsCmd.AddCommand(extractionsFeedbackCmd)
	rootCmd.AddCommand(extractionsCmd)
}

func runExtractionsGet(cmd *cobra.Command, args []string) error {
	if documentManager == nil {
		return errors.New("document manager not configured")
	}

	ctx := cmd.Context()
	doc, err := documentManager.GetDocument(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	container, err := documentManager.GetExtractions(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to get extractions: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, container)
	}
	printExtractions(cmd, container)
	return nil
}

func runExtractionsFeedback(cmd *cobra.Command, args []string) error {
	if documentManager == nil {
		return errors.New("document manager not configured")
	}

	corrections, err := parseAssignments(args[1:])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	doc, err := documentManager.GetDocument(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	container, err := documentManager.GetExtractions(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to get extractions: %w", err)
	}

	specific := make(map[string]domain.SpecificExtraction, len(container.SpecificExtractions)+len(corrections))
	for name, ex := range container.SpecificExtractions {
		specific[name] = ex
	}
	for _, name := range sortedKeys(corrections) {
		ex, ok := specific[name]
		if !ok {
			ex = domain.SpecificExtraction{Name: name}
		}
		ex.Value = corrections[name]
		ex.IsDirty = true
		specific[name] = ex
	}

	if _, err := documentManager.SendFeedback(ctx, doc, specific, container.CompoundExtractions); err != nil {
		return fmt.Errorf("failed to send feedback: %w", err)
	}

	cmd.Printf("Sent feedback for %d extraction(s) of document %s\n", len(corrections), doc.ID)
	return nil
}

// parseAssignments parses name=value arguments.
func parseAssignments(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid correction %q: expected name=value", arg)
		}
		out[name] = value
	}
	return out, nil
}
