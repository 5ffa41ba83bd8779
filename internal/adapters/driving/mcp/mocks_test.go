package mcp

import (
	"context"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
	"github.com/custodia-labs/docpay-cli/internal/core/ports/driving"
)

// mockDocumentManager is a mock implementation of driving.DocumentManager.
type mockDocumentManager struct {
	document    *domain.Document
	extractions *domain.ExtractionsContainer
	providers   []domain.PaymentProvider
	request     *domain.PaymentRequest
	requests    []domain.PaymentRequest
	payment     *domain.Payment
	id          string
	err         error

	// Captured arguments.
	requestInput domain.PaymentRequestInput
	resolveID    string
	resolveInput domain.ResolvePaymentInput
	polledDoc    *domain.Document
}

var _ driving.DocumentManager = (*mockDocumentManager)(nil)

func (m *mockDocumentManager) CreatePartialDocument(
	_ context.Context, _ []byte, _, _ string, _ domain.DocumentType, _ *domain.DocumentMetadata,
) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentManager) CreateCompositeDocument(
	_ context.Context, _ []domain.Document, _ domain.DocumentType,
) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentManager) CreateCompositeDocumentWithRotation(
	_ context.Context, _ []domain.CompositePage, _ domain.DocumentType,
) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentManager) DeletePartialDocumentAndParents(_ context.Context, _ string) error {
	return m.err
}

func (m *mockDocumentManager) DeleteDocument(_ context.Context, _ string) error {
	return m.err
}

func (m *mockDocumentManager) GetDocument(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentManager) GetDocumentByURI(_ context.Context, _ string) (*domain.Document, error) {
	return m.document, m.err
}

func (m *mockDocumentManager) PollDocument(_ context.Context, doc *domain.Document) (*domain.Document, error) {
	return doc, m.err
}

func (m *mockDocumentManager) SendFeedback(
	_ context.Context, doc *domain.Document, _ map[string]domain.SpecificExtraction, _ map[string]domain.CompoundExtraction,
) (*domain.Document, error) {
	return doc, m.err
}

func (m *mockDocumentManager) ReportDocument(_ context.Context, _ *domain.Document, _, _ string) (string, error) {
	return m.id, m.err
}

func (m *mockDocumentManager) GetLayout(_ context.Context, _ *domain.Document) (domain.Layout, error) {
	return domain.Layout{}, m.err
}

func (m *mockDocumentManager) GetExtractions(_ context.Context, doc *domain.Document) (*domain.ExtractionsContainer, error) {
	m.polledDoc = doc
	return m.extractions, m.err
}

func (m *mockDocumentManager) GetPaymentProviders(_ context.Context) ([]domain.PaymentProvider, error) {
	return m.providers, m.err
}

func (m *mockDocumentManager) GetPaymentProvider(_ context.Context, _ string) (*domain.PaymentProvider, error) {
	if len(m.providers) == 0 {
		return nil, m.err
	}
	return &m.providers[0], m.err
}

func (m *mockDocumentManager) CreatePaymentRequest(_ context.Context, input domain.PaymentRequestInput) (string, error) {
	m.requestInput = input
	return m.id, m.err
}

func (m *mockDocumentManager) GetPaymentRequest(_ context.Context, _ string) (*domain.PaymentRequest, error) {
	return m.request, m.err
}

func (m *mockDocumentManager) GetPaymentRequests(_ context.Context) ([]domain.PaymentRequest, error) {
	return m.requests, m.err
}

func (m *mockDocumentManager) ResolvePaymentRequest(
	_ context.Context, requestID string, input domain.ResolvePaymentInput,
) (string, error) {
	m.resolveID = requestID
	m.resolveInput = input
	return m.id, m.err
}

func (m *mockDocumentManager) GetPayment(_ context.Context, _ string) (*domain.Payment, error) {
	return m.payment, m.err
}
