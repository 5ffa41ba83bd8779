package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

// outputJSON is the --json flag shared by read commands.
var outputJSON bool

func addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
}

// printJSON writes v as JSON. Output is indented when stdout is a terminal.
func printJSON(cmd *cobra.Command, v any) error {
	var (
		data []byte
		err  error
	)
	if isTerminal(cmd) {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printDocument(cmd *cobra.Command, doc *domain.Document) {
	cmd.Printf("Document: %s\n\n", doc.ID)
	cmd.Printf("  State:    %s\n", doc.State)
	if doc.Filename != "" {
		cmd.Printf("  Name:     %s\n", doc.Filename)
	}
	cmd.Printf("  Pages:    %d\n", doc.PageCount)
	if doc.SourceClassification != "" {
		cmd.Printf("  Source:   %s\n", doc.SourceClassification)
	}
	cmd.Printf("  URI:      %s\n", doc.URI)
	if !doc.CreatedAt.IsZero() {
		cmd.Printf("  Created:  %s\n", doc.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if len(doc.PartialDocuments) > 0 {
		cmd.Println("\n  Pages:")
		for _, uri := range doc.PartialDocuments {
			cmd.Printf("    %s\n", uri)
		}
	}
	if len(doc.CompositeDocuments) > 0 {
		cmd.Println("\n  Part of:")
		for _, uri := range doc.CompositeDocuments {
			cmd.Printf("    %s\n", uri)
		}
	}
}

func printExtractions(cmd *cobra.Command, container *domain.ExtractionsContainer) {
	if len(container.SpecificExtractions) == 0 && len(container.CompoundExtractions) == 0 {
		cmd.Println("No extractions found.")
		return
	}

	cmd.Println("Extractions:")
	for _, name := range sortedKeys(container.SpecificExtractions) {
		ex := container.SpecificExtractions[name]
		cmd.Printf("  %-18s %s\n", name, ex.Value)
		if len(ex.Candidates) > 1 {
			values := make([]string, len(ex.Candidates))
			for i, c := range ex.Candidates {
				values[i] = c.Value
			}
			cmd.Printf("  %-18s candidates: %s\n", "", strings.Join(values, ", "))
		}
	}

	for _, name := range sortedKeys(container.CompoundExtractions) {
		compound := container.CompoundExtractions[name]
		cmd.Printf("\n  %s:\n", name)
		for i, row := range compound.SpecificExtractionMaps {
			fields := make([]string, 0, len(row))
			for _, field := range sortedKeys(row) {
				fields = append(fields, field+"="+row[field].Value)
			}
			cmd.Printf("    [%d] %s\n", i+1, strings.Join(fields, " "))
		}
	}

	if len(container.ReturnReasons) > 0 {
		cmd.Println("\n  Return reasons:")
		for _, rr := range container.ReturnReasons {
			cmd.Printf("    %s: %s\n", rr.ID, rr.LocalizedLabels["en"])
		}
	}
}

func printPaymentRequest(cmd *cobra.Command, id string, req *domain.PaymentRequest) {
	cmd.Printf("Payment request: %s\n\n", id)
	if req.Status.IsValid() {
		cmd.Printf("  Status:     %s\n", req.Status)
	} else {
		cmd.Printf("  Status:     %s (unrecognised)\n", req.Status)
	}
	cmd.Printf("  Provider:   %s\n", req.PaymentProvider)
	cmd.Printf("  Recipient:  %s\n", req.Recipient)
	cmd.Printf("  IBAN:       %s\n", req.IBAN)
	if req.BIC != "" {
		cmd.Printf("  BIC:        %s\n", req.BIC)
	}
	cmd.Printf("  Amount:     %s\n", req.Amount)
	cmd.Printf("  Purpose:    %s\n", req.Purpose)
	if req.SourceDocumentLocation != nil {
		cmd.Printf("  Document:   %s\n", *req.SourceDocumentLocation)
	}
	if req.CreatedAt != "" {
		cmd.Printf("  Created:    %s\n", req.CreatedAt)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
