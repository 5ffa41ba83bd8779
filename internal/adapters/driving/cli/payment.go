package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

var providerCmd = &cobra.Command{
	Use:   "provider",
	Short: "List banking apps that accept payment requests",
}

var providerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payment providers",
	RunE:  runProviderList,
}

var providerGetCmd = &cobra.Command{
	Use:   "get [provider-id]",
	Short: "Show a payment provider",
	Args:  cobra.ExactArgs(1),
	RunE:  runProviderGet,
}

var requestCmd = &cobra.Command{
	Use:   "request",
	Short: "Create and resolve payment requests",
}

var requestCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a payment request",
	Long: `Create a payment request for a payment provider.

Amounts are written as value:currency, e.g. 335.50:EUR. Use --document to
link the request to the document the values were extracted from.`,
	Args: cobra.NoArgs,
	RunE: runRequestCreate,
}

var requestGetCmd = &cobra.Command{
	Use:   "get [request-id]",
	Short: "Show a payment request",
	Args:  cobra.ExactArgs(1),
	RunE:  runRequestGet,
}

var requestListCmd = &cobra.Command{
	Use:   "list",
	Short: "List payment requests",
	RunE:  runRequestList,
}

var requestResolveCmd = &cobra.Command{
	Use:   "resolve [request-id]",
	Short: "Mark a payment request as paid",
	Long: `Mark an open payment request as paid.

The payment details default to those of the request. A different amount
marks the request as paid_adjusted.`,
	Args: cobra.ExactArgs(1),
	RunE: runRequestResolve,
}

var paymentCmd = &cobra.Command{
	Use:   "payment",
	Short: "Inspect payments of resolved requests",
}

var paymentGetCmd = &cobra.Command{
	Use:   "get [request-id]",
	Short: "Show the payment of a resolved request",
	Args:  cobra.ExactArgs(1),
	RunE:  runPaymentGet,
}

// paymentFlags are the payment detail flags of request create and resolve.
type paymentFlags struct {
	recipient string
	iban      string
	bic       string
	amount    string
	purpose   string
}

func (f *paymentFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.recipient, "recipient", "", "payment recipient")
	cmd.Flags().StringVar(&f.iban, "iban", "", "recipient IBAN")
	cmd.Flags().StringVar(&f.bic, "bic", "", "recipient BIC")
	cmd.Flags().StringVar(&f.amount, "amount", "", "amount as value:currency")
	cmd.Flags().StringVar(&f.purpose, "purpose", "", "payment purpose")
}

// Flags for payment commands.
var (
	createFlags    paymentFlags
	resolveFlags   paymentFlags
	createProvider string
	createDocument string
)

func init() {
	createFlags.register(requestCreateCmd)
	requestCreateCmd.Flags().StringVarP(&createProvider, "provider", "p", "", "payment provider id")
	requestCreateCmd.Flags().StringVar(&createDocument, "document", "", "id of the source document")
	resolveFlags.register(requestResolveCmd)
	addJSONFlag(providerListCmd)
	addJSONFlag(requestListCmd)
	addJSONFlag(requestGetCmd)

	providerCmd.AddCommand(providerListCmd)
	providerCmd.AddCommand(providerGetCmd)
	requestCmd.AddCommand(requestCreateCmd)
	requestCmd.AddCommand(requestGetCmd)
	requestCmd.AddCommand(requestListCmd)
	requestCmd.AddCommand(requestResolveCmd)
	paymentCmd.AddCommand(paymentGetCmd)
	rootCmd.AddCommand(providerCmd)
	rootCmd.AddCommand(requestCmd)
	rootCmd.AddCommand(paymentCmd)
}

func runProviderList(cmd *cobra.Command, _ []string) error {
	if documentManager == nil {
		return errors.New("document manager not configured")
	}

	providers, err := documentManager.GetPaymentProviders(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list payment providers: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, providers)
	}
	if len(providers) == 0 {
		cmd.Println("No payment providers found.")
		return nil
	}

	cmd.Println("Payment providers:")
	cmd.Println()
	for _, p := range providers {
		cmd.Printf("  %s\n", p.ID)
		cmd.Printf("    Name:        %s\n", p.Name)
		cmd.Printf("    App version: %s\n", p.AppVersion)
		cmd.Println()
	}
	cmd.Printf("Total: %d providers\n", len(providers))
	return nil
}

func runProviderGet(cmd *cobra.Command, args []string) error {
	if documentManager == nil {
		return errors.New("document manager not configured")
	}

	p, err := documentManager.GetPaymentProvider(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get payment provider: %w", err)
	}

	cmd.Printf("Payment provider: %s\n\n", p.ID)
	cmd.Printf("  Name:        %s\n", p.Name)
	cmd.Printf("  App version: %s\n", p.AppVersion)
	return nil
}

func runRequestCreate(cmd *cobra.Command, _ []string) error {
	if documentManager == nil {
		return errors.New("document manager not configured")
	}

	ctx := cmd.Context()
	input := domain.PaymentRequestInput{
		PaymentProvider: createProvider,
		Recipient:       createFlags.recipient,
		IBAN:            createFlags.iban,
		BIC:             createFlags.bic,
		Amount:          createFlags.amount,
		Purpose:         createFlags.purpose,
	}

	if createDocument != "" {
		doc, err := documentManager.GetDocument(ctx, createDocument)
		if err != nil {
			return fmt.Errorf("failed to get source document: %w", err)
		}
		location := doc.URI
		input.SourceDocumentLocation = &location
	}

	id, err := documentManager.CreatePaymentRequest(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to create payment request: %w", err)
	}

	cmd.Printf("Created payment request %s\n", id)
	return nil
}

func runRequestGet(cmd *cobra.Command, args []string) error {
	if documentManager == nil {
		return errors.New("document manager not configured")
	}

	req, err := documentManager.GetPaymentRequest(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get payment request: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, req)
	}
	printPaymentRequest(cmd, args[0], req)
	return nil
}

func runRequestList(cmd *cobra.Command, _ []string) error {
	if documentManager == nil {
		return errors.New("document manager not configured")
	}

	requests, err := documentManager.GetPaymentRequests(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list payment requests: %w", err)
	}

	if outputJSON {
		return printJSON(cmd, requests)
	}
	if len(requests) == 0 {
		cmd.Println("No payment requests found.")
		return nil
	}

	cmd.Println("Payment requests:")
	cmd.Println()
	for i := range requests {
		cmd.Printf("  [%d] %s %s to %s (%s)\n", i+1, requests[i].Amount, requests[i].Purpose,
			requests[i].Recipient, requests[i].Status)
	}
	cmd.Println()
	cmd.Printf("Total: %d requests\n", len(requests))
	return nil
}

func runRequestResolve(cmd *cobra.Command, args []string) error {
	if documentManager == nil {
		return errors.New("document manager not configured")
	}

	ctx := cmd.Context()
	requestID := args[0]

	req, err := documentManager.GetPaymentRequest(ctx, requestID)
	if err != nil {
		return fmt.Errorf("failed to get payment request: %w", err)
	}

	input := domain.ResolvePaymentInput{
		Recipient: orDefault(resolveFlags.recipient, req.Recipient),
		IBAN:      orDefault(resolveFlags.iban, req.IBAN),
		BIC:       orDefault(resolveFlags.bic, req.BIC),
		Amount:    orDefault(resolveFlags.amount, req.Amount),
		Purpose:   orDefault(resolveFlags.purpose, req.Purpose),
	}

	paymentID, err := documentManager.ResolvePaymentRequest(ctx, requestID, input)
	if err != nil {
		return fmt.Errorf("failed to resolve payment request: %w", err)
	}

	cmd.Printf("Resolved payment request %s (payment %s)\n", requestID, paymentID)
	return nil
}

func runPaymentGet(cmd *cobra.Command, args []string) error {
	if documentManager == nil {
		return errors.New("document manager not configured")
	}

	p, err := documentManager.GetPayment(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get payment: %w", err)
	}

	cmd.Printf("Payment for request %s\n\n", args[0])
	cmd.Printf("  Paid at:    %s\n", p.PaidAt)
	cmd.Printf("  Recipient:  %s\n", p.Recipient)
	cmd.Printf("  IBAN:       %s\n", p.IBAN)
	if p.BIC != "" {
		cmd.Printf("  BIC:        %s\n", p.BIC)
	}
	cmd.Printf("  Amount:     %s\n", p.Amount)
	cmd.Printf("  Purpose:    %s\n", p.Purpose)
	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
