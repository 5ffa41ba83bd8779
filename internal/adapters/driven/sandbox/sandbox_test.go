package sandbox

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docpay-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docpay-cli/internal/core/domain"
	"github.com/custodia-labs/docpay-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docpay-cli/internal/wire"
)

const testBaseURL = "https://sandbox.test"

var fixedNow = time.Date(2020, 12, 7, 15, 53, 26, 0, time.UTC)

var errStore = errors.New("disk full")

// failingStore fails Put for the records selected by failPut.
type failingStore struct {
	driven.RecordStore
	failPut func(rec *driven.Record) bool
}

func (s *failingStore) Put(ctx context.Context, rec *driven.Record) error {
	if s.failPut != nil && s.failPut(rec) {
		return errStore
	}
	return s.RecordStore.Put(ctx, rec)
}

func newBackend(t *testing.T, polls int) *Backend {
	t.Helper()
	return newBackendWithStore(t, memory.NewRecordStore(), polls)
}

func newBackendWithStore(t *testing.T, store driven.RecordStore, polls int) *Backend {
	t.Helper()
	b := New(store, Config{
		BaseURL:         testBaseURL + "/",
		ProcessingPolls: polls,
		RateLimit:       RateLimitConfig{RequestsPerSecond: 1000, BurstSize: 1000},
	})
	b.now = func() time.Time { return fixedNow }
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func decodeDocument(t *testing.T, data []byte) wire.DocumentResponse {
	t.Helper()
	var doc wire.DocumentResponse
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func upload(t *testing.T, b *Backend, contentType string) string {
	t.Helper()
	location, err := b.UploadDocument(context.Background(), []byte("bytes"), contentType, "scan.jpg", domain.DocumentTypeInvoice, nil)
	require.NoError(t, err)
	return location
}

func TestUploadDocument_Partial(t *testing.T) {
	b := newBackend(t, 1)
	ctx := context.Background()

	metadata := &domain.DocumentMetadata{BranchID: "branch-7", Headers: map[string]string{"X-Source": "scanner"}}
	location, err := b.UploadDocument(ctx, []byte("jpeg"), wire.PartialContentType("image/jpeg"), "scan.jpg", domain.DocumentTypeInvoice, metadata)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(location, testBaseURL+"/documents/"))

	data, err := b.GetDocumentByURI(ctx, location)
	require.NoError(t, err)
	doc := decodeDocument(t, data)
	assert.Equal(t, wire.IDFromLocation(location), doc.ID)
	assert.Equal(t, "scan.jpg", doc.Name)
	assert.Equal(t, "PENDING", doc.Progress)
	assert.Equal(t, "SCANNED", doc.SourceClassification)
	assert.Equal(t, fixedNow.UnixMilli(), doc.CreationDate)
	assert.Equal(t, location, doc.Links.Document)
	assert.Equal(t, location+"/extractions", doc.Links.Extractions)

	var rec documentRecord
	require.NoError(t, b.load(ctx, kindDocument, doc.ID, &rec))
	assert.Equal(t, "branch-7", rec.BranchID)
	assert.Equal(t, "scanner", rec.Headers["X-Source"])
}

func TestUploadDocument_Rejects(t *testing.T) {
	b := newBackend(t, 1)
	ctx := context.Background()

	_, err := b.UploadDocument(ctx, nil, "image/png", "a.png", domain.DocumentTypeNone, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = b.UploadDocument(ctx, []byte("x"), "application/zip", "a.zip", domain.DocumentTypeNone, nil)
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		contentType string
		want        domain.SourceClassification
	}{
		{"image/jpeg", domain.SourceClassificationScanned},
		{"application/vnd.gini.v1.partial+png", domain.SourceClassificationScanned},
		{"application/pdf", domain.SourceClassificationNative},
		{"application/vnd.gini.v1.partial+pdf", domain.SourceClassificationNative},
		{"text/plain", domain.SourceClassificationText},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			got, err := classify(tt.contentType)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetDocument_CompletesAfterProcessingPolls(t *testing.T) {
	b := newBackend(t, 2)
	ctx := context.Background()
	id := wire.IDFromLocation(upload(t, b, "image/jpeg"))

	var states []string
	for range 4 {
		data, err := b.GetDocument(ctx, id)
		require.NoError(t, err)
		states = append(states, decodeDocument(t, data).Progress)
	}

	assert.Equal(t, []string{"PENDING", "PENDING", "COMPLETED", "COMPLETED"}, states)
}

func TestGetDocument_NoProcessingPolls(t *testing.T) {
	b := newBackend(t, 0)
	id := wire.IDFromLocation(upload(t, b, "application/pdf"))

	data, err := b.GetDocument(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", decodeDocument(t, data).Progress)
}

func TestGetDocument_NotFound(t *testing.T) {
	b := newBackend(t, 0)
	_, err := b.GetDocument(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCompositeDocument(t *testing.T) {
	b := newBackend(t, 0)
	ctx := context.Background()
	page1 := upload(t, b, wire.PartialContentType("image/jpeg"))
	page2 := upload(t, b, wire.PartialContentType("image/jpeg"))

	body, err := json.Marshal(wire.NewCompositeDocumentBody([]domain.CompositePage{
		{Document: domain.Document{URI: page1}, Rotation: 0},
		{Document: domain.Document{URI: page2}, Rotation: -90},
	}))
	require.NoError(t, err)

	composite, err := b.UploadDocument(ctx, body, wire.CompositeContentType, "", domain.DocumentTypeInvoice, nil)
	require.NoError(t, err)

	data, err := b.GetDocumentByURI(ctx, composite)
	require.NoError(t, err)
	doc := decodeDocument(t, data)
	assert.Equal(t, "COMPOSITE", doc.SourceClassification)
	assert.Equal(t, 2, doc.PageCount)
	assert.Equal(t, []wire.DocumentReference{
		{Document: page1, RotationDelta: 0},
		{Document: page2, RotationDelta: 270},
	}, doc.PartialDocuments)

	data, err = b.GetDocumentByURI(ctx, page2)
	require.NoError(t, err)
	assert.Equal(t, []wire.DocumentReference{{Document: composite}}, decodeDocument(t, data).CompositeDocuments)
}

func TestCompositeDocument_LinkFailureRollsBack(t *testing.T) {
	store := &failingStore{RecordStore: memory.NewRecordStore()}
	b := newBackendWithStore(t, store, 0)
	ctx := context.Background()

	first := upload(t, b, "image/jpeg")
	second := upload(t, b, "image/jpeg")
	secondID := wire.IDFromLocation(second)
	store.failPut = func(rec *driven.Record) bool {
		return rec.Kind == kindDocument && rec.ID == secondID
	}

	body, err := json.Marshal(wire.NewCompositeDocumentBody([]domain.CompositePage{
		{Document: domain.Document{URI: first}},
		{Document: domain.Document{URI: second}},
	}))
	require.NoError(t, err)

	_, err = b.UploadDocument(ctx, body, wire.CompositeContentType, "", domain.DocumentTypeInvoice, nil)
	require.ErrorIs(t, err, errStore)

	records, err := store.List(ctx, kindDocument)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	var partial documentRecord
	require.NoError(t, b.load(ctx, kindDocument, wire.IDFromLocation(first), &partial))
	assert.Empty(t, partial.Response.CompositeDocuments)
}

func TestCompositeDocument_SaveFailureLeavesPartialsUnlinked(t *testing.T) {
	store := &failingStore{RecordStore: memory.NewRecordStore()}
	b := newBackendWithStore(t, store, 0)
	ctx := context.Background()

	page := upload(t, b, "image/jpeg")
	pageID := wire.IDFromLocation(page)
	store.failPut = func(rec *driven.Record) bool {
		return rec.Kind == kindDocument && rec.ID != pageID
	}

	body, err := json.Marshal(wire.NewCompositeDocumentBody([]domain.CompositePage{{Document: domain.Document{URI: page}}}))
	require.NoError(t, err)

	_, err = b.UploadDocument(ctx, body, wire.CompositeContentType, "", domain.DocumentTypeNone, nil)
	require.ErrorIs(t, err, errStore)

	var partial documentRecord
	require.NoError(t, b.load(ctx, kindDocument, pageID, &partial))
	assert.Empty(t, partial.Response.CompositeDocuments)
}

func TestCompositeDocument_UnknownPartial(t *testing.T) {
	b := newBackend(t, 0)
	body := []byte(`{"partialDocuments":[{"document":"https://sandbox.test/documents/nope","rotationDelta":0}]}`)

	_, err := b.UploadDocument(context.Background(), body, wire.CompositeContentType, "", domain.DocumentTypeNone, nil)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteDocument_PartialWithParents(t *testing.T) {
	b := newBackend(t, 0)
	ctx := context.Background()
	page := upload(t, b, wire.PartialContentType("image/jpeg"))
	body, err := json.Marshal(wire.NewCompositeDocumentBody([]domain.CompositePage{{Document: domain.Document{URI: page}}}))
	require.NoError(t, err)
	composite, err := b.UploadDocument(ctx, body, wire.CompositeContentType, "", domain.DocumentTypeNone, nil)
	require.NoError(t, err)

	err = b.DeleteDocumentByURI(ctx, page)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, b.DeleteDocumentByURI(ctx, composite))
	require.NoError(t, b.DeleteDocument(ctx, wire.IDFromLocation(page)))

	_, err = b.GetDocumentByURI(ctx, page)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, b.DeleteDocument(ctx, wire.IDFromLocation(page)), domain.ErrNotFound)
}

func TestGetExtractions(t *testing.T) {
	b := newBackend(t, 1)
	ctx := context.Background()
	id := wire.IDFromLocation(upload(t, b, "image/jpeg"))

	_, err := b.GetExtractions(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound, "pending documents have no extractions")

	_, _ = b.GetDocument(ctx, id)
	_, _ = b.GetDocument(ctx, id)

	data, err := b.GetExtractions(ctx, id)
	require.NoError(t, err)
	var resp wire.ExtractionsResponse
	require.NoError(t, json.Unmarshal(data, &resp))

	container := resp.ToExtractionsContainer()
	assert.Equal(t, "335.50:EUR", container.SpecificExtractions["amountToPay"].Value)
	assert.Len(t, container.SpecificExtractions["amountToPay"].Candidates, 3)
	assert.Len(t, container.CompoundExtractions["lineItems"].SpecificExtractionMaps, 1)
	require.Len(t, container.ReturnReasons, 2)
	assert.Equal(t, "Damaged", container.ReturnReasons[1].LocalizedLabels["en"])
}

func TestSendFeedback(t *testing.T) {
	b := newBackend(t, 0)
	ctx := context.Background()
	id := wire.IDFromLocation(upload(t, b, "image/jpeg"))

	body, err := json.Marshal(wire.NewFeedbackBody(
		map[string]domain.SpecificExtraction{
			"amountToPay": {Name: "amountToPay", Extraction: domain.Extraction{Value: "300.00:EUR", Entity: "amount"}},
		},
		map[string]domain.CompoundExtraction{
			"lineItems": {Name: "lineItems", SpecificExtractionMaps: []map[string]domain.SpecificExtraction{
				{"description": {Extraction: domain.Extraction{Value: "Lab work", Entity: "text"}}},
				{"description": {Extraction: domain.Extraction{Value: "Consultation", Entity: "text"}}},
			}},
		},
	))
	require.NoError(t, err)
	require.NoError(t, b.SendFeedback(ctx, id, body))

	data, err := b.GetExtractions(ctx, id)
	require.NoError(t, err)
	var resp wire.ExtractionsResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	container := resp.ToExtractionsContainer()

	amount := container.SpecificExtractions["amountToPay"]
	assert.Equal(t, "300.00:EUR", amount.Value)
	assert.Len(t, amount.Candidates, 3, "candidates survive feedback")
	assert.Len(t, container.CompoundExtractions["lineItems"].SpecificExtractionMaps, 2)

	assert.ErrorIs(t, b.SendFeedback(ctx, id, []byte("{")), domain.ErrInvalidInput)
}

func TestErrorReportForDocument(t *testing.T) {
	b := newBackend(t, 0)
	ctx := context.Background()
	id := wire.IDFromLocation(upload(t, b, "image/jpeg"))

	data, err := b.ErrorReportForDocument(ctx, id, "wrong amount", "total is off")
	require.NoError(t, err)
	var resp wire.ErrorReportResponse
	require.NoError(t, json.Unmarshal(data, &resp))
	require.NotEmpty(t, resp.ErrorID)

	var report errorReportRecord
	require.NoError(t, b.load(ctx, kindErrorReport, resp.ErrorID, &report))
	assert.Equal(t, errorReportRecord{DocumentID: id, Summary: "wrong amount", Description: "total is off"}, report)

	_, err = b.ErrorReportForDocument(ctx, "missing", "s", "d")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetLayoutForDocument(t *testing.T) {
	b := newBackend(t, 0)
	id := wire.IDFromLocation(upload(t, b, "application/pdf"))

	data, err := b.GetLayoutForDocument(context.Background(), id)
	require.NoError(t, err)

	var layout domain.Layout
	require.NoError(t, json.Unmarshal(data, &layout))
	pages, ok := layout["pages"].([]any)
	require.True(t, ok)
	assert.Len(t, pages, 1)
}
