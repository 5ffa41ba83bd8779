package driving

import (
	"context"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

// DocumentManager exposes every backend capability as a blocking call.
//
// Each method returns the value or error of the underlying operation
// unchanged. If ctx is done before the operation completes the method
// returns ctx.Err() and discards the operation's outcome.
type DocumentManager interface {
	// CreatePartialDocument uploads one page. A nil metadata uploads without metadata.
	CreatePartialDocument(ctx context.Context, data []byte, contentType, filename string, docType domain.DocumentType, metadata *domain.DocumentMetadata) (*domain.Document, error)

	// CreateCompositeDocument composes partial documents in the given order.
	CreateCompositeDocument(ctx context.Context, documents []domain.Document, docType domain.DocumentType) (*domain.Document, error)

	// CreateCompositeDocumentWithRotation composes partial documents with per-page rotation.
	CreateCompositeDocumentWithRotation(ctx context.Context, pages []domain.CompositePage, docType domain.DocumentType) (*domain.Document, error)

	// DeletePartialDocumentAndParents deletes a partial document and its composite parents.
	DeletePartialDocumentAndParents(ctx context.Context, documentID string) error

	// DeleteDocument deletes a single document.
	DeleteDocument(ctx context.Context, documentID string) error

	// GetDocument fetches a document by id.
	GetDocument(ctx context.Context, documentID string) (*domain.Document, error)

	// GetDocumentByURI fetches a document by its resource location.
	GetDocumentByURI(ctx context.Context, uri string) (*domain.Document, error)

	// PollDocument waits until the backend finished processing the document.
	PollDocument(ctx context.Context, doc *domain.Document) (*domain.Document, error)

	// SendFeedback sends corrected extractions for a document.
	SendFeedback(ctx context.Context, doc *domain.Document, specific map[string]domain.SpecificExtraction, compound map[string]domain.CompoundExtraction) (*domain.Document, error)

	// ReportDocument files an error report and returns its id.
	ReportDocument(ctx context.Context, doc *domain.Document, summary, description string) (string, error)

	// GetLayout fetches the document's layout.
	GetLayout(ctx context.Context, doc *domain.Document) (domain.Layout, error)

	// GetExtractions polls the document and then fetches its extractions.
	// Cancelling ctx while the poll is outstanding also cancels the poll.
	GetExtractions(ctx context.Context, doc *domain.Document) (*domain.ExtractionsContainer, error)

	// GetPaymentProviders lists all payment providers.
	GetPaymentProviders(ctx context.Context) ([]domain.PaymentProvider, error)

	// GetPaymentProvider fetches one payment provider.
	GetPaymentProvider(ctx context.Context, id string) (*domain.PaymentProvider, error)

	// CreatePaymentRequest creates a payment request and returns its id.
	CreatePaymentRequest(ctx context.Context, input domain.PaymentRequestInput) (string, error)

	// GetPaymentRequest fetches one payment request.
	GetPaymentRequest(ctx context.Context, id string) (*domain.PaymentRequest, error)

	// GetPaymentRequests lists all payment requests.
	GetPaymentRequests(ctx context.Context) ([]domain.PaymentRequest, error)

	// ResolvePaymentRequest marks a payment request as paid and returns the payment id.
	ResolvePaymentRequest(ctx context.Context, requestID string, input domain.ResolvePaymentInput) (string, error)

	// GetPayment fetches a payment.
	GetPayment(ctx context.Context, id string) (*domain.Payment, error)
}
