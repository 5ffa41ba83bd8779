package mcp

import (
	"context"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

// DocumentInput identifies a document.
type DocumentInput struct {
	DocumentID string `json:"document_id" jsonschema:"id of an uploaded document"`
}

// IDInput identifies a payment request, payment or provider.
type IDInput struct {
	ID string `json:"id" jsonschema:"resource id"`
}

// EmptyInput is the input of tools that take no arguments.
type EmptyInput struct{}

// ExtractionOutput is one extracted value.
type ExtractionOutput struct {
	Name       string   `json:"name"`
	Value      string   `json:"value"`
	Entity     string   `json:"entity"`
	Candidates []string `json:"candidates,omitempty"`
}

// ExtractionsOutput is the output schema for the get_extractions tool.
type ExtractionsOutput struct {
	DocumentID    string                         `json:"document_id"`
	Extractions   []ExtractionOutput             `json:"extractions"`
	Compound      map[string][]map[string]string `json:"compound,omitempty"`
	ReturnReasons []ReturnReasonOutput           `json:"return_reasons,omitempty"`
}

// ReturnReasonOutput is a return reason with its localized labels.
type ReturnReasonOutput struct {
	ID     string            `json:"id"`
	Labels map[string]string `json:"labels"`
}

// ProviderOutput represents a payment provider.
type ProviderOutput struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	AppVersion string `json:"app_version"`
}

// ProvidersOutput is the output schema for the list_payment_providers tool.
type ProvidersOutput struct {
	Providers []ProviderOutput `json:"providers"`
	Count     int              `json:"count"`
}

// CreatePaymentRequestInput is the input schema for the create_payment_request tool.
type CreatePaymentRequestInput struct {
	PaymentProvider        string `json:"payment_provider" jsonschema:"id of the payment provider"`
	Recipient              string `json:"recipient" jsonschema:"name of the payment recipient"`
	IBAN                   string `json:"iban" jsonschema:"recipient IBAN"`
	BIC                    string `json:"bic,omitempty" jsonschema:"recipient BIC"`
	Amount                 string `json:"amount" jsonschema:"amount as value:currency, e.g. 335.50:EUR"`
	Purpose                string `json:"purpose" jsonschema:"payment purpose or reference"`
	SourceDocumentLocation string `json:"source_document_location,omitempty" jsonschema:"location of the document the values came from"`
}

// ResolvePaymentRequestInput is the input schema for the resolve_payment_request tool.
type ResolvePaymentRequestInput struct {
	ID        string `json:"id" jsonschema:"payment request id"`
	Recipient string `json:"recipient" jsonschema:"name of the payment recipient"`
	IBAN      string `json:"iban" jsonschema:"recipient IBAN"`
	BIC       string `json:"bic,omitempty" jsonschema:"recipient BIC"`
	Amount    string `json:"amount" jsonschema:"paid amount as value:currency"`
	Purpose   string `json:"purpose" jsonschema:"payment purpose or reference"`
}

// IDOutput carries the id of a created resource.
type IDOutput struct {
	ID string `json:"id"`
}

// PaymentRequestOutput represents a payment request.
type PaymentRequestOutput struct {
	PaymentProvider        string `json:"payment_provider"`
	Recipient              string `json:"recipient"`
	IBAN                   string `json:"iban"`
	BIC                    string `json:"bic,omitempty"`
	Amount                 string `json:"amount"`
	Purpose                string `json:"purpose"`
	SourceDocumentLocation string `json:"source_document_location,omitempty"`
	Status                 string `json:"status"`
	CreatedAt              string `json:"created_at,omitempty"`
}

// PaymentRequestsOutput is the output schema for the list_payment_requests tool.
type PaymentRequestsOutput struct {
	Requests []PaymentRequestOutput `json:"requests"`
	Count    int                    `json:"count"`
}

// PaymentOutput represents a payment.
type PaymentOutput struct {
	PaidAt    string `json:"paid_at"`
	Recipient string `json:"recipient"`
	IBAN      string `json:"iban"`
	BIC       string `json:"bic,omitempty"`
	Amount    string `json:"amount"`
	Purpose   string `json:"purpose"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	addTool(s, &mcp.Tool{
		Name:        "get_extractions",
		Description: "Wait for a document to be processed and return its extractions",
	}, s.handleGetExtractions)

	addTool(s, &mcp.Tool{
		Name:        "list_payment_providers",
		Description: "List the banking apps payment requests can be sent to",
	}, s.handleListPaymentProviders)

	addTool(s, &mcp.Tool{
		Name:        "create_payment_request",
		Description: "Create a payment request for a payment provider",
	}, s.handleCreatePaymentRequest)

	addTool(s, &mcp.Tool{
		Name:        "get_payment_request",
		Description: "Get a payment request and its status",
	}, s.handleGetPaymentRequest)

	addTool(s, &mcp.Tool{
		Name:        "list_payment_requests",
		Description: "List all payment requests",
	}, s.handleListPaymentRequests)

	addTool(s, &mcp.Tool{
		Name:        "resolve_payment_request",
		Description: "Mark an open payment request as paid",
	}, s.handleResolvePaymentRequest)

	addTool(s, &mcp.Tool{
		Name:        "get_payment",
		Description: "Get the payment of a resolved payment request",
	}, s.handleGetPayment)
}

// handleGetExtractions handles the get_extractions tool invocation.
func (s *Server) handleGetExtractions(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input DocumentInput,
) (*mcp.CallToolResult, ExtractionsOutput, error) {
	if input.DocumentID == "" {
		return nil, ExtractionsOutput{}, fmt.Errorf("%w: document_id is required", domain.ErrInvalidInput)
	}

	doc, err := s.ports.Documents.GetDocument(ctx, input.DocumentID)
	if err != nil {
		return nil, ExtractionsOutput{}, err
	}
	container, err := s.ports.Documents.GetExtractions(ctx, doc)
	if err != nil {
		return nil, ExtractionsOutput{}, err
	}

	return nil, toExtractionsOutput(doc.ID, container), nil
}

func toExtractionsOutput(documentID string, container *domain.ExtractionsContainer) ExtractionsOutput {
	output := ExtractionsOutput{
		DocumentID:  documentID,
		Extractions: make([]ExtractionOutput, 0, len(container.SpecificExtractions)),
	}

	for name, ex := range container.SpecificExtractions {
		out := ExtractionOutput{Name: name, Value: ex.Value, Entity: ex.Entity}
		for _, c := range ex.Candidates {
			out.Candidates = append(out.Candidates, c.Value)
		}
		output.Extractions = append(output.Extractions, out)
	}
	sort.Slice(output.Extractions, func(i, j int) bool {
		return output.Extractions[i].Name < output.Extractions[j].Name
	})

	if len(container.CompoundExtractions) > 0 {
		output.Compound = make(map[string][]map[string]string, len(container.CompoundExtractions))
		for name, compound := range container.CompoundExtractions {
			rows := make([]map[string]string, 0, len(compound.SpecificExtractionMaps))
			for _, row := range compound.SpecificExtractionMaps {
				values := make(map[string]string, len(row))
				for field, ex := range row {
					values[field] = ex.Value
				}
				rows = append(rows, values)
			}
			output.Compound[name] = rows
		}
	}

	for _, rr := range container.ReturnReasons {
		output.ReturnReasons = append(output.ReturnReasons, ReturnReasonOutput{ID: rr.ID, Labels: rr.LocalizedLabels})
	}

	return output
}

// handleListPaymentProviders handles the list_payment_providers tool invocation.
func (s *Server) handleListPaymentProviders(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ProvidersOutput, error) {
	providers, err := s.ports.Documents.GetPaymentProviders(ctx)
	if err != nil {
		return nil, ProvidersOutput{}, err
	}

	output := ProvidersOutput{
		Providers: make([]ProviderOutput, len(providers)),
		Count:     len(providers),
	}
	for i, p := range providers {
		output.Providers[i] = ProviderOutput{ID: p.ID, Name: p.Name, AppVersion: p.AppVersion}
	}

	return nil, output, nil
}

// handleCreatePaymentRequest handles the create_payment_request tool invocation.
func (s *Server) handleCreatePaymentRequest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CreatePaymentRequestInput,
) (*mcp.CallToolResult, IDOutput, error) {
	req := domain.PaymentRequestInput{
		PaymentProvider: input.PaymentProvider,
		Recipient:       input.Recipient,
		IBAN:            input.IBAN,
		BIC:             input.BIC,
		Amount:          input.Amount,
		Purpose:         input.Purpose,
	}
	if input.SourceDocumentLocation != "" {
		loc := input.SourceDocumentLocation
		req.SourceDocumentLocation = &loc
	}

	id, err := s.ports.Documents.CreatePaymentRequest(ctx, req)
	if err != nil {
		return nil, IDOutput{}, err
	}

	return nil, IDOutput{ID: id}, nil
}

// handleGetPaymentRequest handles the get_payment_request tool invocation.
func (s *Server) handleGetPaymentRequest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IDInput,
) (*mcp.CallToolResult, PaymentRequestOutput, error) {
	req, err := s.ports.Documents.GetPaymentRequest(ctx, input.ID)
	if err != nil {
		return nil, PaymentRequestOutput{}, err
	}
	return nil, toPaymentRequestOutput(*req), nil
}

// handleListPaymentRequests handles the list_payment_requests tool invocation.
func (s *Server) handleListPaymentRequests(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, PaymentRequestsOutput, error) {
	requests, err := s.ports.Documents.GetPaymentRequests(ctx)
	if err != nil {
		return nil, PaymentRequestsOutput{}, err
	}

	output := PaymentRequestsOutput{
		Requests: make([]PaymentRequestOutput, len(requests)),
		Count:    len(requests),
	}
	for i := range requests {
		output.Requests[i] = toPaymentRequestOutput(requests[i])
	}

	return nil, output, nil
}

func toPaymentRequestOutput(req domain.PaymentRequest) PaymentRequestOutput {
	out := PaymentRequestOutput{
		PaymentProvider: req.PaymentProvider,
		Recipient:       req.Recipient,
		IBAN:            req.IBAN,
		BIC:             req.BIC,
		Amount:          req.Amount,
		Purpose:         req.Purpose,
		Status:          req.Status.String(),
		CreatedAt:       req.CreatedAt,
	}
	if req.SourceDocumentLocation != nil {
		out.SourceDocumentLocation = *req.SourceDocumentLocation
	}
	return out
}

// handleResolvePaymentRequest handles the resolve_payment_request tool invocation.
func (s *Server) handleResolvePaymentRequest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResolvePaymentRequestInput,
) (*mcp.CallToolResult, IDOutput, error) {
	id, err := s.ports.Documents.ResolvePaymentRequest(ctx, input.ID, domain.ResolvePaymentInput{
		Recipient: input.Recipient,
		IBAN:      input.IBAN,
		BIC:       input.BIC,
		Amount:    input.Amount,
		Purpose:   input.Purpose,
	})
	if err != nil {
		return nil, IDOutput{}, err
	}

	return nil, IDOutput{ID: id}, nil
}

// handleGetPayment handles the get_payment tool invocation.
func (s *Server) handleGetPayment(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IDInput,
) (*mcp.CallToolResult, PaymentOutput, error) {
	payment, err := s.ports.Documents.GetPayment(ctx, input.ID)
	if err != nil {
		return nil, PaymentOutput{}, err
	}

	return nil, PaymentOutput{
		PaidAt:    payment.PaidAt,
		Recipient: payment.Recipient,
		IBAN:      payment.IBAN,
		BIC:       payment.BIC,
		Amount:    payment.Amount,
		Purpose:   payment.Purpose,
	}, nil
}
