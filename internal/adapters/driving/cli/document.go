package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docpay-cli/internal/adapters/driving/watch"
	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage uploaded documents",
	Long:  `Upload, compose, inspect, poll and delete documents.`,
}

var documentUploadCmd = &cobra.Command{
	Use:   "upload [file]",
	Short: "Upload a file as a partial document",
	Long: `Upload one page as a partial document.

The content type is detected from the file content. Supported are JPEG,
PNG, GIF, TIFF, HEIC, WebP, PDF and plain text. Compose partial documents
with 'docpay document compose' before requesting extractions.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentUpload,
}

var documentGetCmd = &cobra.Command{
	Use:   "get [doc-id|uri]",
	Short: "Show document info",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentGet,
}

var documentPollCmd = &cobra.Command{
	Use:   "poll [doc-id]",
	Short: "Wait until the document is processed",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentPoll,
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [doc-id]",
	Short: "Delete a document",
	Long: `Delete a document.

With --with-parents the document is treated as a partial document and
every composite document it is part of is deleted first.`,
	Args: cobra.ExactArgs(1),
	RunE: runDocumentDelete,
}

var documentComposeCmd = &cobra.Command{
	Use:   "compose [doc-id...]",
	Short: "Compose partial documents into one document",
	Long: `Compose partial documents into a composite document. Pages keep the
order given on the command line.

Use --rotate to turn single pages clockwise, e.g. --rotate <doc-id>=90.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDocumentCompose,
}

var documentLayoutCmd = &cobra.Command{
	Use:   "layout [doc-id]",
	Short: "Print the document layout as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentLayout,
}

var documentReportCmd = &cobra.Command{
	Use:   "report [doc-id]",
	Short: "Report a processing error for a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentReport,
}

// Flags for document commands.
var (
	uploadType     string
	uploadBranchID string
	uploadHeaders  map[string]string
	uploadWait     bool
	deleteParents  bool
	composeType    string
	composeRotate  map[string]int
	reportSummary  string
	reportDetails  string
)

func init() {
	documentUploadCmd.Flags().StringVarP(&uploadType, "type", "t", "", "document type hint (e.g. Invoice, Remittance)")
	documentUploadCmd.Flags().StringVar(&uploadBranchID, "branch-id", "", "client branch id sent as metadata")
	documentUploadCmd.Flags().StringToStringVar(&uploadHeaders, "header", nil, "custom metadata as key=value")
	documentUploadCmd.Flags().BoolVarP(&uploadWait, "wait", "w", false, "wait until the document is processed")
	documentDeleteCmd.Flags().BoolVar(&deleteParents, "with-parents", false, "also delete composite documents containing it")
	documentComposeCmd.Flags().StringVarP(&composeType, "type", "t", "", "document type hint")
	documentComposeCmd.Flags().StringToIntVar(&composeRotate, "rotate", nil, "rotation per page as doc-id=degrees")
	documentReportCmd.Flags().StringVarP(&reportSummary, "summary", "s", "", "short summary of the problem")
	documentReportCmd.Flags().StringVarP(&reportDetails, "description", "d", "", "detailed description")
	addJSONFlag(documentGetCmd)

	documentCmd.AddCommand(documentUploadCmd)
	documentCmd.AddCommand(documentGetCmd)
	documentCmd.AddCommand(documentPollCmd)
	documentCmd.AddCommand(documentDeleteCmd)
	documentCmd.AddCommand(documentComposeCmd)
	documentCmd.AddCommand(documentLayoutCmd)
	documentCmd.AddCommand(documentReportCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentUpload(cmd *cobra.Command, args []string) error {
	if documentManager == nil {
		return errors.New("document manager not configured")
	}

	path := args[0]
	contentType, err := watch.DetectContentType(path)
	if err != nil {
		return fmt.Errorf("failed to upload document: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var metadata *domain.DocumentMetadata
	if uploadBranchID != "" || len(uploadHeaders) > 0 {
		metadata = &domain.DocumentMetadata{BranchID: uploadBranchID, Headers: uploadHeaders}
	}

	ctx := cmd.Context()
	doc, err := documentManager.CreatePartialDocument(ctx, data, contentType, filepath.Base(path),
		domain.DocumentType(uploadType), metadata)
	if err != nil {
		return fmt.Errorf("failed to upload document: %w", err)
	}

	if uploadWait {
		doc, err = documentManager.PollDocument(ctx, doc)
		if err != nil {
			return fmt.Errorf("failed to poll document: %w", err)
		}
	}

	cmd.Printf("Uploaded %s (%s)\n\n", filepath.Base(path), contentType)
	printDocument(cmd, doc)
	return nil
}

func runDocumentGet(cmd *cobra.Command, args []string) error {
	if documentManager == nil {
		return errors.New("document manager not configured")
	}

	ref := args[0]
	ctx := cmd.Context()

	var (
		doc *domain.Document
		err error
	)
	if strings.Contains(ref, "://") {
		doc, err = documentManager.GetDocumentByURI(ctx, ref)
	} else {
		doc, err = documentManager.GetDocument(ctx, ref)
	}
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, doc)
	}
	printDocument(cmd, doc)
	return nil
}

func runDocumentPoll(cmd *cobra.Command, args []string) error {
	if documentManager == nil {
		return errors.New("document manager not configured")
	}

	ctx := cmd.Context()
	doc, err := documentManager.GetDocument(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	doc, err = documentManager.PollDocument(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to poll document: %w", err)
	}

	cmd.Printf("Document %s is %s\n", doc.ID, doc.State)
	return nil
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if documentManager == nil {
		return errors.New("document manager not configured")
	}

	docID := args[0]
	ctx := cmd.Context()

	if deleteParents {
		if err := documentManager.DeletePartialDocumentAndParents(ctx, docID); err != nil {
			return fmt.Errorf("failed to delete document: %w", err)
		}
		cmd.Printf("Deleted document %s and its composite documents\n", docID)
		return nil
	}

	if err := documentManager.DeleteDocument(ctx, docID); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	cmd.Printf("Deleted document %s\n", docID)
	return nil
}

func runDocumentCompose(cmd *cobra.Command, args []string) error {
	if documentManager == nil {
		return errors.New("document manager not configured")
	}

	ctx := cmd.Context()
	docType := domain.DocumentType(composeType)

	partials := make([]domain.Document, 0, len(args))
	for _, id := range args {
		doc, err := documentManager.GetDocument(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to get document %s: %w", id, err)
		}
		partials = append(partials, *doc)
	}

	for id := range composeRotate {
		found := false
		for i := range partials {
			if partials[i].ID == id {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("rotation given for %s which is not a page of the document", id)
		}
	}

	var (
		doc *domain.Document
		err error
	)
	if len(composeRotate) > 0 {
		pages := make([]domain.CompositePage, len(partials))
		for i := range partials {
			pages[i] = domain.CompositePage{Document: partials[i], Rotation: composeRotate[partials[i].ID]}
		}
		doc, err = documentManager.CreateCompositeDocumentWithRotation(ctx, pages, docType)
	} else {
		doc, err = documentManager.CreateCompositeDocument(ctx, partials, docType)
	}
	if err != nil {
		return fmt.Errorf("failed to compose document: %w", err)
	}

	cmd.Printf("Composed %d page(s)\n\n", len(partials))
	printDocument(cmd, doc)
	return nil
}

func runDocumentLayout(cmd *cobra.Command, args []string) error {
	if documentManager == nil {
		return errors.New("document manager not configured")
	}

	ctx := cmd.Context()
	doc, err := documentManager.GetDocument(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	layout, err := documentManager.GetLayout(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to get layout: %w", err)
	}

	return printJSON(cmd, layout)
}

func runDocumentReport(cmd *cobra.Command, args []string) error {
	if documentManager == nil {
		return errors.New("document manager not configured")
	}
	if reportSummary == "" {
		return errors.New("--summary is required")
	}

	ctx := cmd.Context()
	doc, err := documentManager.GetDocument(ctx, args[0])
	if err != nil {
		return fmt.Errorf("failed to get document: %w", err)
	}

	reportID, err := documentManager.ReportDocument(ctx, doc, reportSummary, reportDetails)
	if err != nil {
		return fmt.Errorf("failed to report document: %w", err)
	}

	cmd.Printf("Error report %s filed for document %s\n", reportID, doc.ID)
	return nil
}
