package services

import (
	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
	"github.com/custodia-labs/docpay-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docpay-cli/internal/core/task"
)

var _ driven.DocumentTaskManager = (*mockTaskManager)(nil)

// mockTaskManager is a testify mock of driven.DocumentTaskManager.
type mockTaskManager struct {
	mock.Mock
}

func (m *mockTaskManager) CreatePartialDocument(
	data []byte,
	contentType, filename string,
	docType domain.DocumentType,
	metadata *domain.DocumentMetadata,
) *task.Task[*domain.Document] {
	args := m.Called(data, contentType, filename, docType, metadata)
	return args.Get(0).(*task.Task[*domain.Document])
}

func (m *mockTaskManager) CreateCompositeDocument(documents []domain.Document, docType domain.DocumentType) *task.Task[*domain.Document] {
	args := m.Called(documents, docType)
	return args.Get(0).(*task.Task[*domain.Document])
}

func (m *mockTaskManager) CreateCompositeDocumentWithRotation(pages []domain.CompositePage, docType domain.DocumentType) *task.Task[*domain.Document] {
	args := m.Called(pages, docType)
	return args.Get(0).(*task.Task[*domain.Document])
}

func (m *mockTaskManager) DeletePartialDocumentAndParents(documentID string) *task.Task[struct{}] {
	args := m.Called(documentID)
	return args.Get(0).(*task.Task[struct{}])
}

func (m *mockTaskManager) DeleteDocument(documentID string) *task.Task[struct{}] {
	args := m.Called(documentID)
	return args.Get(0).(*task.Task[struct{}])
}

func (m *mockTaskManager) GetDocument(documentID string) *task.Task[*domain.Document] {
	args := m.Called(documentID)
	return args.Get(0).(*task.Task[*domain.Document])
}

func (m *mockTaskManager) GetDocumentByURI(uri string) *task.Task[*domain.Document] {
	args := m.Called(uri)
	return args.Get(0).(*task.Task[*domain.Document])
}

func (m *mockTaskManager) PollDocument(doc *domain.Document) *task.Task[*domain.Document] {
	args := m.Called(doc)
	return args.Get(0).(*task.Task[*domain.Document])
}

func (m *mockTaskManager) CancelDocumentPolling(doc *domain.Document) {
	m.Called(doc)
}

func (m *mockTaskManager) SendFeedbackForExtractions(
	doc *domain.Document,
	specific map[string]domain.SpecificExtraction,
	compound map[string]domain.CompoundExtraction,
) *task.Task[*domain.Document] {
	args := m.Called(doc, specific, compound)
	return args.Get(0).(*task.Task[*domain.Document])
}

func (m *mockTaskManager) ReportDocument(doc *domain.Document, summary, description string) *task.Task[string] {
	args := m.Called(doc, summary, description)
	return args.Get(0).(*task.Task[string])
}

func (m *mockTaskManager) GetLayout(doc *domain.Document) *task.Task[domain.Layout] {
	args := m.Called(doc)
	return args.Get(0).(*task.Task[domain.Layout])
}

func (m *mockTaskManager) GetAllExtractions(doc *domain.Document) *task.Task[*domain.ExtractionsContainer] {
	args := m.Called(doc)
	return args.Get(0).(*task.Task[*domain.ExtractionsContainer])
}

func (m *mockTaskManager) GetPaymentProviders() *task.Task[[]domain.PaymentProvider] {
	args := m.Called()
	return args.Get(0).(*task.Task[[]domain.PaymentProvider])
}

func (m *mockTaskManager) GetPaymentProvider(id string) *task.Task[*domain.PaymentProvider] {
	args := m.Called(id)
	return args.Get(0).(*task.Task[*domain.PaymentProvider])
}

func (m *mockTaskManager) CreatePaymentRequest(input domain.PaymentRequestInput) *task.Task[string] {
	args := m.Called(input)
	return args.Get(0).(*task.Task[string])
}

func (m *mockTaskManager) GetPaymentRequest(id string) *task.Task[*domain.PaymentRequest] {
	args := m.Called(id)
	return args.Get(0).(*task.Task[*domain.PaymentRequest])
}

func (m *mockTaskManager) GetPaymentRequests() *task.Task[[]domain.PaymentRequest] {
	args := m.Called()
	return args.Get(0).(*task.Task[[]domain.PaymentRequest])
}

func (m *mockTaskManager) ResolvePaymentRequest(requestID string, input domain.ResolvePaymentInput) *task.Task[string] {
	args := m.Called(requestID, input)
	return args.Get(0).(*task.Task[string])
}

func (m *mockTaskManager) GetPayment(id string) *task.Task[*domain.Payment] {
	args := m.Called(id)
	return args.Get(0).(*task.Task[*domain.Payment])
}
