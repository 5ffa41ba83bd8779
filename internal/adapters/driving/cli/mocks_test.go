package cli

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
	"github.com/custodia-labs/docpay-cli/internal/core/ports/driving"
)

// mockDocumentManager is a testify mock of driving.DocumentManager.
type mockDocumentManager struct {
	mock.Mock
}

var _ driving.DocumentManager = (*mockDocumentManager)(nil)

func docOrNil(args mock.Arguments, i int) *domain.Document {
	doc, _ := args.Get(i).(*domain.Document)
	return doc
}

func (m *mockDocumentManager) CreatePartialDocument(
	_ context.Context, data []byte, contentType, filename string, docType domain.DocumentType, metadata *domain.DocumentMetadata,
) (*domain.Document, error) {
	args := m.Called(data, contentType, filename, docType, metadata)
	return docOrNil(args, 0), args.Error(1)
}

func (m *mockDocumentManager) CreateCompositeDocument(
	_ context.Context, documents []domain.Document, docType domain.DocumentType,
) (*domain.Document, error) {
	args := m.Called(documents, docType)
	return docOrNil(args, 0), args.Error(1)
}

func (m *mockDocumentManager) CreateCompositeDocumentWithRotation(
	_ context.Context, pages []domain.CompositePage, docType domain.DocumentType,
) (*domain.Document, error) {
	args := m.Called(pages, docType)
	return docOrNil(args, 0), args.Error(1)
}

func (m *mockDocumentManager) DeletePartialDocumentAndParents(_ context.Context, documentID string) error {
	return m.Called(documentID).Error(0)
}

func (m *mockDocumentManager) DeleteDocument(_ context.Context, documentID string) error {
	return m.Called(documentID).Error(0)
}

func (m *mockDocumentManager) GetDocument(_ context.Context, documentID string) (*domain.Document, error) {
	args := m.Called(documentID)
	return docOrNil(args, 0), args.Error(1)
}

func (m *mockDocumentManager) GetDocumentByURI(_ context.Context, uri string) (*domain.Document, error) {
	args := m.Called(uri)
	return docOrNil(args, 0), args.Error(1)
}

func (m *mockDocumentManager) PollDocument(_ context.Context, doc *domain.Document) (*domain.Document, error) {
	args := m.Called(doc)
	return docOrNil(args, 0), args.Error(1)
}

func (m *mockDocumentManager) SendFeedback(
	_ context.Context, doc *domain.Document, specific map[string]domain.SpecificExtraction, compound map[string]domain.CompoundExtraction,
) (*domain.Document, error) {
	args := m.Called(doc, specific, compound)
	return docOrNil(args, 0), args.Error(1)
}

func (m *mockDocumentManager) ReportDocument(_ context.Context, doc *domain.Document, summary, description string) (string, error) {
	args := m.Called(doc, summary, description)
	return args.String(0), args.Error(1)
}

func (m *mockDocumentManager) GetLayout(_ context.Context, doc *domain.Document) (domain.Layout, error) {
	args := m.Called(doc)
	layout, _ := args.Get(0).(domain.Layout)
	return layout, args.Error(1)
}

func (m *mockDocumentManager) GetExtractions(_ context.Context, doc *domain.Document) (*domain.ExtractionsContainer, error) {
	args := m.Called(doc)
	container, _ := args.Get(0).(*domain.ExtractionsContainer)
	return container, args.Error(1)
}

func (m *mockDocumentManager) GetPaymentProviders(_ context.Context) ([]domain.PaymentProvider, error) {
	args := m.Called()
	providers, _ := args.Get(0).([]domain.PaymentProvider)
	return providers, args.Error(1)
}

func (m *mockDocumentManager) GetPaymentProvider(_ context.Context, id string) (*domain.PaymentProvider, error) {
	args := m.Called(id)
	provider, _ := args.Get(0).(*domain.PaymentProvider)
	return provider, args.Error(1)
}

func (m *mockDocumentManager) CreatePaymentRequest(_ context.Context, input domain.PaymentRequestInput) (string, error) {
	args := m.Called(input)
	return args.String(0), args.Error(1)
}

func (m *mockDocumentManager) GetPaymentRequest(_ context.Context, id string) (*domain.PaymentRequest, error) {
	args := m.Called(id)
	req, _ := args.Get(0).(*domain.PaymentRequest)
	return req, args.Error(1)
}

func (m *mockDocumentManager) GetPaymentRequests(_ context.Context) ([]domain.PaymentRequest, error) {
	args := m.Called()
	requests, _ := args.Get(0).([]domain.PaymentRequest)
	return requests, args.Error(1)
}

func (m *mockDocumentManager) ResolvePaymentRequest(
	_ context.Context, requestID string, input domain.ResolvePaymentInput,
) (string, error) {
	args := m.Called(requestID, input)
	return args.String(0), args.Error(1)
}

func (m *mockDocumentManager) GetPayment(_ context.Context, id string) (*domain.Payment, error) {
	args := m.Called(id)
	payment, _ := args.Get(0).(*domain.Payment)
	return payment, args.Error(1)
}
