package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

func newReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestExtractDocumentID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"valid document URI", "docpay://documents/doc-456", "doc-456"},
		{"invalid prefix", "file://documents/doc-456", ""},
		{"nested path", "docpay://documents/doc-456/layout", ""},
		{"empty URI", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractDocumentID(tt.uri))
		})
	}
}

func TestServer_handlePaymentProvidersResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns providers as json", func(t *testing.T) {
		server := newTestServer(t, &mockDocumentManager{providers: []domain.PaymentProvider{
			{ID: "p1", Name: "ING-DiBa", AppVersion: "3.5.1"},
		}})

		result, err := server.handlePaymentProvidersResource(ctx, newReadResourceRequest("docpay://payment-providers"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var providers []ProviderOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &providers))
		assert.Equal(t, []ProviderOutput{{ID: "p1", Name: "ING-DiBa", AppVersion: "3.5.1"}}, providers)
	})

	t.Run("wraps backend error", func(t *testing.T) {
		server := newTestServer(t, &mockDocumentManager{err: errors.New("offline")})

		_, err := server.handlePaymentProvidersResource(ctx, newReadResourceRequest("docpay://payment-providers"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing payment providers")
	})
}

func TestServer_handleDocumentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns document", func(t *testing.T) {
		server := newTestServer(t, &mockDocumentManager{document: &domain.Document{
			ID: "doc-1", Filename: "invoice.pdf", State: domain.ProcessingStateCompleted, PageCount: 2,
		}})

		result, err := server.handleDocumentResource(ctx, newReadResourceRequest("docpay://documents/doc-1"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, `"state": "COMPLETED"`)
		assert.Contains(t, result.Contents[0].Text, `"page_count": 2`)
	})

	t.Run("unknown document is not found", func(t *testing.T) {
		server := newTestServer(t, &mockDocumentManager{err: domain.ErrNotFound})

		_, err := server.handleDocumentResource(ctx, newReadResourceRequest("docpay://documents/nope"))

		require.Error(t, err)
	})

	t.Run("malformed uri is not found", func(t *testing.T) {
		server := newTestServer(t, &mockDocumentManager{})

		_, err := server.handleDocumentResource(ctx, newReadResourceRequest("docpay://other/doc-1"))

		require.Error(t, err)
	})
}
