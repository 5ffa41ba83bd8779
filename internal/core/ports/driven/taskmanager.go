package driven

import (
	"github.com/custodia-labs/docpay-cli/internal/core/domain"
	"github.com/custodia-labs/docpay-cli/internal/core/task"
)

// DocumentTaskManager starts backend operations and hands back task handles.
// Every method returns immediately; the work happens on the implementation's
// own goroutines. Methods never block on the backend.
type DocumentTaskManager interface {
	// CreatePartialDocument uploads one page. A nil metadata uploads without metadata.
	CreatePartialDocument(data []byte, contentType, filename string, docType domain.DocumentType, metadata *domain.DocumentMetadata) *task.Task[*domain.Document]

	// CreateCompositeDocument composes partial documents in the given order.
	CreateCompositeDocument(documents []domain.Document, docType domain.DocumentType) *task.Task[*domain.Document]

	// CreateCompositeDocumentWithRotation composes partial documents with per-page rotation.
	CreateCompositeDocumentWithRotation(pages []domain.CompositePage, docType domain.DocumentType) *task.Task[*domain.Document]

	// DeletePartialDocumentAndParents deletes every composite document the
	// partial document belongs to, then the partial document itself.
	DeletePartialDocumentAndParents(documentID string) *task.Task[struct{}]

	// DeleteDocument deletes a single document.
	DeleteDocument(documentID string) *task.Task[struct{}]

	// GetDocument fetches a document by id.
	GetDocument(documentID string) *task.Task[*domain.Document]

	// GetDocumentByURI fetches a document by its resource location.
	GetDocumentByURI(uri string) *task.Task[*domain.Document]

	// PollDocument resolves once the document leaves the PENDING state.
	PollDocument(doc *domain.Document) *task.Task[*domain.Document]

	// CancelDocumentPolling abandons an in-flight poll for doc. Polls of
	// other documents are not affected.
	CancelDocumentPolling(doc *domain.Document)

	// SendFeedbackForExtractions sends corrected extractions and resolves to the same document.
	SendFeedbackForExtractions(doc *domain.Document, specific map[string]domain.SpecificExtraction, compound map[string]domain.CompoundExtraction) *task.Task[*domain.Document]

	// ReportDocument files an error report and resolves to its id.
	ReportDocument(doc *domain.Document, summary, description string) *task.Task[string]

	// GetLayout fetches the document's layout.
	GetLayout(doc *domain.Document) *task.Task[domain.Layout]

	// GetAllExtractions fetches specific and compound extractions and return reasons.
	GetAllExtractions(doc *domain.Document) *task.Task[*domain.ExtractionsContainer]

	// GetPaymentProviders lists all payment providers.
	GetPaymentProviders() *task.Task[[]domain.PaymentProvider]

	// GetPaymentProvider fetches one payment provider.
	GetPaymentProvider(id string) *task.Task[*domain.PaymentProvider]

	// CreatePaymentRequest creates a payment request and resolves to its id.
	CreatePaymentRequest(input domain.PaymentRequestInput) *task.Task[string]

	// GetPaymentRequest fetches one payment request.
	GetPaymentRequest(id string) *task.Task[*domain.PaymentRequest]

	// GetPaymentRequests lists all payment requests.
	GetPaymentRequests() *task.Task[[]domain.PaymentRequest]

	// ResolvePaymentRequest marks a payment request as paid and resolves to the payment id.
	ResolvePaymentRequest(requestID string, input domain.ResolvePaymentInput) *task.Task[string]

	// GetPayment fetches the payment of a resolved payment request.
	GetPayment(id string) *task.Task[*domain.Payment]
}
