package taskmanager

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
	"github.com/custodia-labs/docpay-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docpay-cli/internal/core/task"
	"github.com/custodia-labs/docpay-cli/internal/logger"
	"github.com/custodia-labs/docpay-cli/internal/wire"
)

// Ensure Manager implements the interface.
var _ driven.DocumentTaskManager = (*Manager)(nil)

// Option configures a Manager.
type Option func(*Manager)

// WithPollInterval sets the delay between two document status checks.
// Non-positive values are ignored.
func WithPollInterval(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.pollInterval = d
		}
	}
}

// Manager starts backend operations through an APICommunicator.
type Manager struct {
	api          driven.APICommunicator
	pollInterval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	polls  map[string]map[uint64]context.CancelFunc
	nextID uint64
}

// New creates a task manager. Call Close to abandon in-flight work.
func New(api driven.APICommunicator, opts ...Option) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		api:          api,
		pollInterval: domain.DefaultPollingInterval,
		ctx:          ctx,
		cancel:       cancel,
		polls:        make(map[string]map[uint64]context.CancelFunc),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Close cancels every in-flight operation. Their tasks complete cancelled.
func (m *Manager) Close() error {
	m.cancel()
	return nil
}

// CreatePartialDocument uploads one page and fetches the created document.
func (m *Manager) CreatePartialDocument(
	data []byte,
	contentType, filename string,
	docType domain.DocumentType,
	metadata *domain.DocumentMetadata,
) *task.Task[*domain.Document] {
	return task.Run(m.ctx, func(ctx context.Context) (*domain.Document, error) {
		location, err := m.api.UploadDocument(ctx, data, wire.PartialContentType(contentType), filename, docType, metadata)
		if err != nil {
			return nil, err
		}
		logger.Debug("uploaded partial document %s", location)
		return m.fetchDocumentByURI(ctx, location)
	})
}

// CreateCompositeDocument composes partial documents in the given order without rotation.
func (m *Manager) CreateCompositeDocument(documents []domain.Document, docType domain.DocumentType) *task.Task[*domain.Document] {
	pages := make([]domain.CompositePage, 0, len(documents))
	for _, doc := range documents {
		pages = append(pages, domain.CompositePage{Document: doc})
	}
	return m.CreateCompositeDocumentWithRotation(pages, docType)
}

// CreateCompositeDocumentWithRotation composes partial documents with per-page rotation.
func (m *Manager) CreateCompositeDocumentWithRotation(pages []domain.CompositePage, docType domain.DocumentType) *task.Task[*domain.Document] {
	return task.Run(m.ctx, func(ctx context.Context) (*domain.Document, error) {
		body, err := json.Marshal(wire.NewCompositeDocumentBody(pages))
		if err != nil {
			return nil, fmt.Errorf("encode composite document: %w", err)
		}
		location, err := m.api.UploadDocument(ctx, body, wire.CompositeContentType, "", docType, nil)
		if err != nil {
			return nil, err
		}
		logger.Debug("uploaded composite document %s with %d pages", location, len(pages))
		return m.fetchDocumentByURI(ctx, location)
	})
}

// DeletePartialDocumentAndParents deletes the composite parents in order,
// then the partial document itself.
func (m *Manager) DeletePartialDocumentAndParents(documentID string) *task.Task[struct{}] {
	return task.Run(m.ctx, func(ctx context.Context) (struct{}, error) {
		doc, err := m.fetchDocument(ctx, documentID)
		if err != nil {
			return struct{}{}, err
		}
		for _, parent := range doc.CompositeDocuments {
			if err := m.api.DeleteDocumentByURI(ctx, parent); err != nil {
				return struct{}{}, err
			}
			logger.Debug("deleted composite document %s", parent)
		}
		return struct{}{}, m.api.DeleteDocument(ctx, documentID)
	})
}

// DeleteDocument deletes a single document.
func (m *Manager) DeleteDocument(documentID string) *task.Task[struct{}] {
	return task.Run(m.ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, m.api.DeleteDocument(ctx, documentID)
	})
}

// GetDocument fetches a document by id.
func (m *Manager) GetDocument(documentID string) *task.Task[*domain.Document] {
	return task.Run(m.ctx, func(ctx context.Context) (*domain.Document, error) {
		return m.fetchDocument(ctx, documentID)
	})
}

// GetDocumentByURI fetches a document by its resource location.
func (m *Manager) GetDocumentByURI(uri string) *task.Task[*domain.Document] {
	return task.Run(m.ctx, func(ctx context.Context) (*domain.Document, error) {
		return m.fetchDocumentByURI(ctx, uri)
	})
}

// SendFeedbackForExtractions sends corrected extractions and resolves to doc.
func (m *Manager) SendFeedbackForExtractions(
	doc *domain.Document,
	specific map[string]domain.SpecificExtraction,
	compound map[string]domain.CompoundExtraction,
) *task.Task[*domain.Document] {
	return task.Run(m.ctx, func(ctx context.Context) (*domain.Document, error) {
		body, err := json.Marshal(wire.NewFeedbackBody(specific, compound))
		if err != nil {
			return nil, fmt.Errorf("encode feedback: %w", err)
		}
		if err := m.api.SendFeedback(ctx, doc.ID, body); err != nil {
			return nil, err
		}
		return doc, nil
	})
}

// ReportDocument files an error report and resolves to its id.
func (m *Manager) ReportDocument(doc *domain.Document, summary, description string) *task.Task[string] {
	return task.Run(m.ctx, func(ctx context.Context) (string, error) {
		data, err := m.api.ErrorReportForDocument(ctx, doc.ID, summary, description)
		if err != nil {
			return "", err
		}
		resp, err := decode[wire.ErrorReportResponse](data, "error report")
		if err != nil {
			return "", err
		}
		return resp.ErrorID, nil
	})
}

// GetLayout fetches the document's layout.
func (m *Manager) GetLayout(doc *domain.Document) *task.Task[domain.Layout] {
	return task.Run(m.ctx, func(ctx context.Context) (domain.Layout, error) {
		data, err := m.api.GetLayoutForDocument(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		return decode[domain.Layout](data, "layout")
	})
}

// GetAllExtractions fetches specific and compound extractions and return reasons.
func (m *Manager) GetAllExtractions(doc *domain.Document) *task.Task[*domain.ExtractionsContainer] {
	return task.Run(m.ctx, func(ctx context.Context) (*domain.ExtractionsContainer, error) {
		data, err := m.api.GetExtractions(ctx, doc.ID)
		if err != nil {
			return nil, err
		}
		resp, err := decode[wire.ExtractionsResponse](data, "extractions")
		if err != nil {
			return nil, err
		}
		return resp.ToExtractionsContainer(), nil
	})
}

// GetPaymentProviders lists all payment providers.
func (m *Manager) GetPaymentProviders() *task.Task[[]domain.PaymentProvider] {
	return task.Run(m.ctx, func(ctx context.Context) ([]domain.PaymentProvider, error) {
		data, err := m.api.GetPaymentProviders(ctx)
		if err != nil {
			return nil, err
		}
		resp, err := decode[[]wire.PaymentProviderResponse](data, "payment providers")
		if err != nil {
			return nil, err
		}
		providers := make([]domain.PaymentProvider, 0, len(resp))
		for _, p := range resp {
			providers = append(providers, p.ToPaymentProvider())
		}
		return providers, nil
	})
}

// GetPaymentProvider fetches one payment provider.
func (m *Manager) GetPaymentProvider(id string) *task.Task[*domain.PaymentProvider] {
	return task.Run(m.ctx, func(ctx context.Context) (*domain.PaymentProvider, error) {
		data, err := m.api.GetPaymentProvider(ctx, id)
		if err != nil {
			return nil, err
		}
		resp, err := decode[wire.PaymentProviderResponse](data, "payment provider")
		if err != nil {
			return nil, err
		}
		provider := resp.ToPaymentProvider()
		return &provider, nil
	})
}

// CreatePaymentRequest creates a payment request and resolves to the id
// taken from the returned location.
func (m *Manager) CreatePaymentRequest(input domain.PaymentRequestInput) *task.Task[string] {
	return task.Run(m.ctx, func(ctx context.Context) (string, error) {
		body, err := json.Marshal(wire.NewPaymentRequestBody(input))
		if err != nil {
			return "", fmt.Errorf("encode payment request: %w", err)
		}
		data, err := m.api.PostPaymentRequest(ctx, body)
		if err != nil {
			return "", err
		}
		resp, err := decode[wire.RequestIDResponse](data, "payment request location")
		if err != nil {
			return "", err
		}
		return wire.IDFromLocation(resp.Location), nil
	})
}

// GetPaymentRequest fetches one payment request.
func (m *Manager) GetPaymentRequest(id string) *task.Task[*domain.PaymentRequest] {
	return task.Run(m.ctx, func(ctx context.Context) (*domain.PaymentRequest, error) {
		data, err := m.api.GetPaymentRequest(ctx, id)
		if err != nil {
			return nil, err
		}
		resp, err := decode[wire.PaymentRequestResponse](data, "payment request")
		if err != nil {
			return nil, err
		}
		request := resp.ToPaymentRequest()
		return &request, nil
	})
}

// GetPaymentRequests lists all payment requests.
func (m *Manager) GetPaymentRequests() *task.Task[[]domain.PaymentRequest] {
	return task.Run(m.ctx, func(ctx context.Context) ([]domain.PaymentRequest, error) {
		data, err := m.api.GetPaymentRequests(ctx)
		if err != nil {
			return nil, err
		}
		resp, err := decode[[]wire.PaymentRequestResponse](data, "payment requests")
		if err != nil {
			return nil, err
		}
		requests := make([]domain.PaymentRequest, 0, len(resp))
		for _, r := range resp {
			requests = append(requests, r.ToPaymentRequest())
		}
		return requests, nil
	})
}

// ResolvePaymentRequest resolves a payment request and resolves to the id
// taken from the returned payment location.
func (m *Manager) ResolvePaymentRequest(requestID string, input domain.ResolvePaymentInput) *task.Task[string] {
	return task.Run(m.ctx, func(ctx context.Context) (string, error) {
		body, err := json.Marshal(wire.NewResolvePaymentBody(input))
		if err != nil {
			return "", fmt.Errorf("encode resolve payment: %w", err)
		}
		data, err := m.api.ResolvePaymentRequest(ctx, requestID, body)
		if err != nil {
			return "", err
		}
		resp, err := decode[wire.RequestIDResponse](data, "payment location")
		if err != nil {
			return "", err
		}
		return wire.IDFromLocation(resp.Location), nil
	})
}

// GetPayment fetches a payment.
func (m *Manager) GetPayment(id string) *task.Task[*domain.Payment] {
	return task.Run(m.ctx, func(ctx context.Context) (*domain.Payment, error) {
		data, err := m.api.GetPayment(ctx, id)
		if err != nil {
			return nil, err
		}
		resp, err := decode[wire.PaymentResponse](data, "payment")
		if err != nil {
			return nil, err
		}
		payment := resp.ToPayment()
		return &payment, nil
	})
}

func (m *Manager) fetchDocument(ctx context.Context, documentID string) (*domain.Document, error) {
	data, err := m.api.GetDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}
	resp, err := decode[wire.DocumentResponse](data, "document")
	if err != nil {
		return nil, err
	}
	return resp.ToDocument(), nil
}

func (m *Manager) fetchDocumentByURI(ctx context.Context, uri string) (*domain.Document, error) {
	data, err := m.api.GetDocumentByURI(ctx, uri)
	if err != nil {
		return nil, err
	}
	resp, err := decode[wire.DocumentResponse](data, "document")
	if err != nil {
		return nil, err
	}
	return resp.ToDocument(), nil
}

func decode[T any](data []byte, what string) (T, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("decode %s: %w", what, err)
	}
	return v, nil
}
