package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for docpay resources.
	uriScheme = "docpay://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for listing payment providers.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "payment-providers",
		Name:        "payment-providers",
		Description: "Banking apps payment requests can be sent to",
		MIMEType:    "application/json",
	}, s.handlePaymentProvidersResource)

	// Template for document metadata.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "documents/{documentId}",
		Name:        "document",
		Description: "Processing state and metadata of an uploaded document",
		MIMEType:    "application/json",
	}, s.handleDocumentResource)
}

// handlePaymentProvidersResource returns every payment provider.
func (s *Server) handlePaymentProvidersResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	providers, err := s.ports.Documents.GetPaymentProviders(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing payment providers: %w", err)
	}

	infos := make([]ProviderOutput, len(providers))
	for i, p := range providers {
		infos[i] = ProviderOutput{ID: p.ID, Name: p.Name, AppVersion: p.AppVersion}
	}

	return jsonResource(req.Params.URI, infos)
}

// handleDocumentResource returns one document.
func (s *Server) handleDocumentResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract documentId from URI: docpay://documents/{documentId}
	docID := extractDocumentID(req.Params.URI)
	if docID == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	doc, err := s.ports.Documents.GetDocument(ctx, docID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}

	type docInfo struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		State     string `json:"state"`
		PageCount int    `json:"page_count"`
		URI       string `json:"uri"`
	}

	return jsonResource(req.Params.URI, docInfo{
		ID:        doc.ID,
		Name:      doc.Filename,
		State:     doc.State.String(),
		PageCount: doc.PageCount,
		URI:       doc.URI,
	})
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractDocumentID extracts the document ID from a URI like docpay://documents/{documentId}.
func extractDocumentID(uri string) string {
	const prefix = uriScheme + "documents/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
