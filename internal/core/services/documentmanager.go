package services

import (
	"context"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
	"github.com/custodia-labs/docpay-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docpay-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docpay-cli/internal/core/task"
	"github.com/custodia-labs/docpay-cli/internal/logger"
)

// Ensure DocumentManager implements the interface.
var _ driving.DocumentManager = (*DocumentManager)(nil)

// DocumentManager turns the task handles of a driven.DocumentTaskManager
// into blocking, context-aware calls. It holds no state besides the task
// manager and starts no work of its own.
type DocumentManager struct {
	tasks driven.DocumentTaskManager
}

// NewDocumentManager creates a new document manager.
func NewDocumentManager(tasks driven.DocumentTaskManager) *DocumentManager {
	return &DocumentManager{tasks: tasks}
}

// await blocks until t completes or ctx is done.
//
// The task's result and error are returned as they are. Once ctx is done the
// outcome of t is discarded and ctx.Err() is returned, even when t completed
// at the same instant.
func await[T any](ctx context.Context, op string, t *task.Task[T]) (T, error) {
	var zero T

	if err := t.WaitContext(ctx); err != nil {
		logger.Debug("%s: abandoned: %v", op, err)
		return zero, err
	}
	if err := ctx.Err(); err != nil {
		logger.Debug("%s: abandoned: %v", op, err)
		return zero, err
	}

	if t.IsFaulted() || t.IsCancelled() {
		logger.Debug("%s: failed: %v", op, t.Error())
		return zero, t.Error()
	}
	return t.Result(), nil
}

// CreatePartialDocument uploads one page.
func (m *DocumentManager) CreatePartialDocument(
	ctx context.Context,
	data []byte,
	contentType, filename string,
	docType domain.DocumentType,
	metadata *domain.DocumentMetadata,
) (*domain.Document, error) {
	if m.tasks == nil {
		return nil, domain.ErrNotImplemented
	}
	return await(ctx, "create partial document",
		m.tasks.CreatePartialDocument(data, contentType, filename, docType, metadata))
}

// CreateCompositeDocument composes partial documents in the given order.
func (m *DocumentManager) CreateCompositeDocument(
	ctx context.Context,
	documents []domain.Document,
	docType domain.DocumentType,
) (*domain.Document, error) {
	if m.tasks == nil {
		return nil, domain.ErrNotImplemented
	}
	return await(ctx, "create composite document", m.tasks.CreateCompositeDocument(documents, docType))
}

// CreateCompositeDocumentWithRotation composes partial documents with per-page rotation.
func (m *DocumentManager) CreateCompositeDocumentWithRotation(
	ctx context.Context,
	pages []domain.CompositePage,
	docType domain.DocumentType,
) (*domain.Document, error) {
	if m.tasks == nil {
		return nil, domain.ErrNotImplemented
	}
	return await(ctx, "create composite document", m.tasks.CreateCompositeDocumentWithRotation(pages, docType))
}

// DeletePartialDocumentAndParents deletes a partial document and its composite parents.
func (m *DocumentManager) DeletePartialDocumentAndParents(ctx context.Context, documentID string) error {
	if m.tasks == nil {
		return domain.ErrNotImplemented
	}
	_, err := await(ctx, "delete partial document", m.tasks.DeletePartialDocumentAndParents(documentID))
	return err
}

// DeleteDocument deletes a single document.
func (m *DocumentManager) DeleteDocument(ctx context.Context, documentID string) error {
	if m.tasks == nil {
		return domain.ErrNotImplemented
	}
	_, err := await(ctx, "delete document", m.tasks.DeleteDocument(documentID))
	return err
}

// GetDocument fetches a document by id.
func (m *DocumentManager) GetDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	if m.tasks == nil {
		return nil, domain.ErrNotImplemented
	}
	return await(ctx, "get document", m.tasks.GetDocument(documentID))
}

// GetDocumentByURI fetches a document by its resource location.
func (m *DocumentManager) GetDocumentByURI(ctx context.Context, uri string) (*domain.Document, error) {
	if m.tasks == nil {
		return nil, domain.ErrNotImplemented
	}
	return await(ctx, "get document", m.tasks.GetDocumentByURI(uri))
}

// PollDocument waits until the backend finished processing the document.
func (m *DocumentManager) PollDocument(ctx context.Context, doc *domain.Document) (*domain.Document, error) {
	if m.tasks == nil {
		return nil, domain.ErrNotImplemented
	}
	return await(ctx, "poll document", m.tasks.PollDocument(doc))
}

// SendFeedback sends corrected extractions for a document.
func (m *DocumentManager) SendFeedback(
	ctx context.Context,
	doc *domain.Document,
	specific map[string]domain.SpecificExtraction,
	compound map[string]domain.CompoundExtraction,
) (*domain.Document, error) {
	if m.tasks == nil {
		return nil, domain.ErrNotImplemented
	}
	return await(ctx, "send feedback", m.tasks.SendFeedbackForExtractions(doc, specific, compound))
}

// ReportDocument files an error report and returns its id.
func (m *DocumentManager) ReportDocument(ctx context.Context, doc *domain.Document, summary, description string) (string, error) {
	if m.tasks == nil {
		return "", domain.ErrNotImplemented
	}
	return await(ctx, "report document", m.tasks.ReportDocument(doc, summary, description))
}

// GetLayout fetches the document's layout.
func (m *DocumentManager) GetLayout(ctx context.Context, doc *domain.Document) (domain.Layout, error) {
	if m.tasks == nil {
		return nil, domain.ErrNotImplemented
	}
	return await(ctx, "get layout", m.tasks.GetLayout(doc))
}

// GetExtractions polls the document and then fetches the extractions of the
// polled document. A failed poll is returned without fetching extractions.
// If ctx is done while the poll is outstanding the poll is cancelled too;
// the extraction fetch is left to run.
func (m *DocumentManager) GetExtractions(ctx context.Context, doc *domain.Document) (*domain.ExtractionsContainer, error) {
	if m.tasks == nil {
		return nil, domain.ErrNotImplemented
	}

	poll := m.tasks.PollDocument(doc)
	polled, err := await(ctx, "poll document", poll)
	if err != nil {
		if ctx.Err() != nil && !poll.IsCompleted() {
			logger.Debug("get extractions: cancelling poll of document %s", doc.ID)
			m.tasks.CancelDocumentPolling(doc)
		}
		return nil, err
	}

	return await(ctx, "get extractions", m.tasks.GetAllExtractions(polled))
}

// GetPaymentProviders lists all payment providers.
func (m *DocumentManager) GetPaymentProviders(ctx context.Context) ([]domain.PaymentProvider, error) {
	if m.tasks == nil {
		return nil, domain.ErrNotImplemented
	}
	return await(ctx, "get payment providers", m.tasks.GetPaymentProviders())
}

// GetPaymentProvider fetches one payment provider.
func (m *DocumentManager) GetPaymentProvider(ctx context.Context, id string) (*domain.PaymentProvider, error) {
	if m.tasks == nil {
		return nil, domain.ErrNotImplemented
	}
	return await(ctx, "get payment provider", m.tasks.GetPaymentProvider(id))
}

// CreatePaymentRequest creates a payment request and returns its id.
func (m *DocumentManager) CreatePaymentRequest(ctx context.Context, input domain.PaymentRequestInput) (string, error) {
	if m.tasks == nil {
		return "", domain.ErrNotImplemented
	}
	return await(ctx, "create payment request", m.tasks.CreatePaymentRequest(input))
}

// GetPaymentRequest fetches one payment request.
func (m *DocumentManager) GetPaymentRequest(ctx context.Context, id string) (*domain.PaymentRequest, error) {
	if m.tasks == nil {
		return nil, domain.ErrNotImplemented
	}
	return await(ctx, "get payment request", m.tasks.GetPaymentRequest(id))
}

// GetPaymentRequests lists all payment requests.
func (m *DocumentManager) GetPaymentRequests(ctx context.Context) ([]domain.PaymentRequest, error) {
	if m.tasks == nil {
		return nil, domain.ErrNotImplemented
	}
	return await(ctx, "get payment requests", m.tasks.GetPaymentRequests())
}

// ResolvePaymentRequest marks a payment request as paid and returns the payment id.
func (m *DocumentManager) ResolvePaymentRequest(
	ctx context.Context,
	requestID string,
	input domain.ResolvePaymentInput,
) (string, error) {
	if m.tasks == nil {
		return "", domain.ErrNotImplemented
	}
	return await(ctx, "resolve payment request", m.tasks.ResolvePaymentRequest(requestID, input))
}

// GetPayment fetches a payment.
func (m *DocumentManager) GetPayment(ctx context.Context, id string) (*domain.Payment, error) {
	if m.tasks == nil {
		return nil, domain.ErrNotImplemented
	}
	return await(ctx, "get payment", m.tasks.GetPayment(id))
}
