package taskmanager

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
	"github.com/custodia-labs/docpay-cli/internal/core/ports/driven"
)

// mockAPI is a testify mock of driven.APICommunicator.
type mockAPI struct {
	mock.Mock
}

var _ driven.APICommunicator = (*mockAPI)(nil)

func bytesOf(args mock.Arguments) ([]byte, error) {
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *mockAPI) UploadDocument(ctx context.Context, data []byte, contentType, filename string, docType domain.DocumentType, metadata *domain.DocumentMetadata) (string, error) {
	args := m.Called(ctx, data, contentType, filename, docType, metadata)
	return args.String(0), args.Error(1)
}

func (m *mockAPI) GetDocument(ctx context.Context, documentID string) ([]byte, error) {
	return bytesOf(m.Called(ctx, documentID))
}

func (m *mockAPI) GetDocumentByURI(ctx context.Context, uri string) ([]byte, error) {
	return bytesOf(m.Called(ctx, uri))
}

func (m *mockAPI) DeleteDocument(ctx context.Context, documentID string) error {
	return m.Called(ctx, documentID).Error(0)
}

func (m *mockAPI) DeleteDocumentByURI(ctx context.Context, uri string) error {
	return m.Called(ctx, uri).Error(0)
}

func (m *mockAPI) GetExtractions(ctx context.Context, documentID string) ([]byte, error) {
	return bytesOf(m.Called(ctx, documentID))
}

func (m *mockAPI) SendFeedback(ctx context.Context, documentID string, body []byte) error {
	return m.Called(ctx, documentID, body).Error(0)
}

func (m *mockAPI) ErrorReportForDocument(ctx context.Context, documentID, summary, description string) ([]byte, error) {
	return bytesOf(m.Called(ctx, documentID, summary, description))
}

func (m *mockAPI) GetLayoutForDocument(ctx context.Context, documentID string) ([]byte, error) {
	return bytesOf(m.Called(ctx, documentID))
}

func (m *mockAPI) GetPaymentProviders(ctx context.Context) ([]byte, error) {
	return bytesOf(m.Called(ctx))
}

func (m *mockAPI) GetPaymentProvider(ctx context.Context, id string) ([]byte, error) {
	return bytesOf(m.Called(ctx, id))
}

func (m *mockAPI) PostPaymentRequest(ctx context.Context, body []byte) ([]byte, error) {
	return bytesOf(m.Called(ctx, body))
}

func (m *mockAPI) GetPaymentRequest(ctx context.Context, id string) ([]byte, error) {
	return bytesOf(m.Called(ctx, id))
}

func (m *mockAPI) GetPaymentRequests(ctx context.Context) ([]byte, error) {
	return bytesOf(m.Called(ctx))
}

func (m *mockAPI) ResolvePaymentRequest(ctx context.Context, requestID string, body []byte) ([]byte, error) {
	return bytesOf(m.Called(ctx, requestID, body))
}

func (m *mockAPI) GetPayment(ctx context.Context, id string) ([]byte, error) {
	return bytesOf(m.Called(ctx, id))
}
