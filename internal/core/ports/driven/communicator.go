package driven

import (
	"context"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

// APICommunicator is low-level access to the backend API.
// Request and response bodies are raw JSON; decoding belongs to the caller.
// Missing resources are reported as domain.ErrNotFound.
type APICommunicator interface {
	// UploadDocument uploads bytes and returns the created document's location.
	UploadDocument(ctx context.Context, data []byte, contentType, filename string, docType domain.DocumentType, metadata *domain.DocumentMetadata) (string, error)

	// GetDocument returns the document JSON for an id.
	GetDocument(ctx context.Context, documentID string) ([]byte, error)

	// GetDocumentByURI returns the document JSON at a location.
	GetDocumentByURI(ctx context.Context, uri string) ([]byte, error)

	// DeleteDocument deletes a document by id.
	DeleteDocument(ctx context.Context, documentID string) error

	// DeleteDocumentByURI deletes the document at a location.
	DeleteDocumentByURI(ctx context.Context, uri string) error

	// GetExtractions returns the extractions JSON for a document.
	GetExtractions(ctx context.Context, documentID string) ([]byte, error)

	// SendFeedback sends a feedback JSON body for a document.
	SendFeedback(ctx context.Context, documentID string, body []byte) error

	// ErrorReportForDocument files an error report and returns the response JSON.
	ErrorReportForDocument(ctx context.Context, documentID, summary, description string) ([]byte, error)

	// GetLayoutForDocument returns the layout JSON for a document.
	GetLayoutForDocument(ctx context.Context, documentID string) ([]byte, error)

	// GetPaymentProviders returns the payment provider list JSON.
	GetPaymentProviders(ctx context.Context) ([]byte, error)

	// GetPaymentProvider returns one payment provider JSON.
	GetPaymentProvider(ctx context.Context, id string) ([]byte, error)

	// PostPaymentRequest creates a payment request and returns the location response JSON.
	PostPaymentRequest(ctx context.Context, body []byte) ([]byte, error)

	// GetPaymentRequest returns one payment request JSON.
	GetPaymentRequest(ctx context.Context, id string) ([]byte, error)

	// GetPaymentRequests returns the payment request list JSON.
	GetPaymentRequests(ctx context.Context) ([]byte, error)

	// ResolvePaymentRequest resolves a payment request and returns the location response JSON.
	ResolvePaymentRequest(ctx context.Context, requestID string, body []byte) ([]byte, error)

	// GetPayment returns one payment JSON.
	GetPayment(ctx context.Context, id string) ([]byte, error)
}
