package sandbox

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
	"github.com/custodia-labs/docpay-cli/internal/logger"
	"github.com/custodia-labs/docpay-cli/internal/wire"
)

// documentRecord is a stored document with the upload details the
// response does not carry.
type documentRecord struct {
	Response    wire.DocumentResponse `json:"response"`
	ContentType string                `json:"contentType"`
	DocType     domain.DocumentType   `json:"docType,omitempty"`
	BranchID    string                `json:"branchId,omitempty"`
	Headers     map[string]string     `json:"headers,omitempty"`
	Size        int                   `json:"size"`
	Reads       int                   `json:"reads"`
}

// errorReportRecord is a stored document error report.
type errorReportRecord struct {
	DocumentID  string `json:"documentId"`
	Summary     string `json:"summary"`
	Description string `json:"description"`
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}

// UploadDocument stores a new document and returns its location.
// Composite uploads reference their partial documents by location.
func (b *Backend) UploadDocument(
	ctx context.Context,
	data []byte,
	contentType, filename string,
	docType domain.DocumentType,
	metadata *domain.DocumentMetadata,
) (string, error) {
	done, err := b.begin(ctx, "upload %s (%d bytes)", contentType, len(data))
	if err != nil {
		return "", err
	}
	defer done()

	if len(data) == 0 {
		return "", fmt.Errorf("%w: empty document", domain.ErrInvalidInput)
	}

	id := uuid.NewString()
	location := b.documentLocation(id)
	rec := documentRecord{
		ContentType: contentType,
		DocType:     docType,
		Size:        len(data),
		Response: wire.DocumentResponse{
			ID:           id,
			CreationDate: b.now().UnixMilli(),
			Name:         filename,
			Progress:     string(domain.ProcessingStatePending),
			PageCount:    1,
			Links: wire.DocumentLinks{
				Document:    location,
				Extractions: location + "/extractions",
				Layout:      location + "/layout",
				Processed:   location + "/processed",
			},
		},
	}
	if metadata != nil {
		rec.BranchID = metadata.BranchID
		rec.Headers = metadata.Headers
	}
	if b.processingPolls == 0 {
		rec.Response.Progress = string(domain.ProcessingStateCompleted)
	}

	var partials []documentRecord
	if contentType == wire.CompositeContentType {
		if partials, err = b.composeDocument(ctx, &rec, data); err != nil {
			return "", err
		}
	} else {
		classification, err := classify(contentType)
		if err != nil {
			return "", err
		}
		rec.Response.SourceClassification = string(classification)
	}

	if err := b.save(ctx, kindDocument, id, rec); err != nil {
		return "", err
	}
	if err := b.linkPartials(ctx, id, location, partials); err != nil {
		return "", err
	}
	return location, nil
}

// composeDocument fills rec from a composite upload body and returns the
// partial documents it references.
func (b *Backend) composeDocument(ctx context.Context, rec *documentRecord, data []byte) ([]documentRecord, error) {
	var body wire.CompositeDocumentBody
	if err := json.Unmarshal(data, &body); err != nil {
		return nil, fmt.Errorf("%w: composite body: %v", domain.ErrInvalidInput, err)
	}
	if len(body.PartialDocuments) == 0 {
		return nil, fmt.Errorf("%w: composite document without pages", domain.ErrInvalidInput)
	}

	partials := make([]documentRecord, 0, len(body.PartialDocuments))
	pageCount := 0
	for _, page := range body.PartialDocuments {
		var partial documentRecord
		if err := b.load(ctx, kindDocument, wire.IDFromLocation(page.Document), &partial); err != nil {
			return nil, fmt.Errorf("partial document %s: %w", page.Document, err)
		}
		pageCount += partial.Response.PageCount
		rec.Response.PartialDocuments = append(rec.Response.PartialDocuments, wire.DocumentReference{
			Document:      page.Document,
			RotationDelta: wire.NormalizeRotation(page.RotationDelta),
		})
		partials = append(partials, partial)
	}

	if rec.Response.Name == "" {
		rec.Response.Name = "composite"
	}
	rec.Response.PageCount = pageCount
	rec.Response.SourceClassification = string(domain.SourceClassificationComposite)
	return partials, nil
}

// linkPartials records the stored composite id as a parent of each partial.
// On failure the partials linked so far are restored and the composite is removed.
func (b *Backend) linkPartials(ctx context.Context, id, location string, partials []documentRecord) error {
	for i, partial := range partials {
		linked := partial
		linked.Response.CompositeDocuments = append(slices.Clone(partial.Response.CompositeDocuments),
			wire.DocumentReference{Document: location})
		if err := b.save(ctx, kindDocument, partial.Response.ID, linked); err != nil {
			for _, prev := range partials[:i] {
				if rerr := b.save(ctx, kindDocument, prev.Response.ID, prev); rerr != nil {
					logger.Warn("sandbox: restoring partial %s: %v", prev.Response.ID, rerr)
				}
			}
			if derr := b.deleteIfExists(ctx, kindDocument, id); derr != nil {
				logger.Warn("sandbox: removing composite %s: %v", id, derr)
			}
			return fmt.Errorf("linking partial document %s: %w", partial.Response.ID, err)
		}
	}
	return nil
}

// classify maps an upload content type to a source classification.
func classify(contentType string) (domain.SourceClassification, error) {
	subtype := strings.ToLower(contentType)
	if i := strings.LastIndexAny(subtype, "/+"); i >= 0 {
		subtype = subtype[i+1:]
	}
	switch subtype {
	case "jpeg", "jpg", "png", "gif", "tiff", "heic", "webp":
		return domain.SourceClassificationScanned, nil
	case "pdf":
		return domain.SourceClassificationNative, nil
	case "plain", "txt", "text":
		return domain.SourceClassificationText, nil
	default:
		return "", fmt.Errorf("%w: content type %q", domain.ErrUnsupportedType, contentType)
	}
}

// GetDocument returns the document JSON. Every read advances a PENDING
// document towards COMPLETED.
func (b *Backend) GetDocument(ctx context.Context, documentID string) ([]byte, error) {
	done, err := b.begin(ctx, "get document %s", documentID)
	if err != nil {
		return nil, err
	}
	defer done()

	return b.readDocument(ctx, documentID)
}

// GetDocumentByURI returns the document JSON at a location.
func (b *Backend) GetDocumentByURI(ctx context.Context, uri string) ([]byte, error) {
	done, err := b.begin(ctx, "get document at %s", uri)
	if err != nil {
		return nil, err
	}
	defer done()

	return b.readDocument(ctx, wire.IDFromLocation(uri))
}

func (b *Backend) readDocument(ctx context.Context, documentID string) ([]byte, error) {
	var rec documentRecord
	if err := b.load(ctx, kindDocument, documentID, &rec); err != nil {
		return nil, err
	}

	if rec.Response.Progress == string(domain.ProcessingStatePending) {
		if rec.Reads >= b.processingPolls {
			rec.Response.Progress = string(domain.ProcessingStateCompleted)
		}
		rec.Reads++
		if err := b.save(ctx, kindDocument, documentID, rec); err != nil {
			return nil, err
		}
	}

	return marshal(rec.Response)
}

// DeleteDocument deletes a document and its derived records. A partial
// document that still belongs to a composite cannot be deleted.
func (b *Backend) DeleteDocument(ctx context.Context, documentID string) error {
	done, err := b.begin(ctx, "delete document %s", documentID)
	if err != nil {
		return err
	}
	defer done()

	return b.deleteDocument(ctx, documentID)
}

// DeleteDocumentByURI deletes the document at a location.
func (b *Backend) DeleteDocumentByURI(ctx context.Context, uri string) error {
	done, err := b.begin(ctx, "delete document at %s", uri)
	if err != nil {
		return err
	}
	defer done()

	return b.deleteDocument(ctx, wire.IDFromLocation(uri))
}

func (b *Backend) deleteDocument(ctx context.Context, documentID string) error {
	var rec documentRecord
	if err := b.load(ctx, kindDocument, documentID, &rec); err != nil {
		return err
	}
	if len(rec.Response.CompositeDocuments) > 0 {
		return fmt.Errorf("%w: document %s is part of %d composite document(s)",
			domain.ErrInvalidInput, documentID, len(rec.Response.CompositeDocuments))
	}

	// Unlink a composite from its pages.
	location := rec.Response.Links.Document
	for _, ref := range rec.Response.PartialDocuments {
		var partial documentRecord
		err := b.load(ctx, kindDocument, wire.IDFromLocation(ref.Document), &partial)
		if isNotFound(err) {
			continue
		}
		if err != nil {
			return err
		}
		partial.Response.CompositeDocuments = slices.DeleteFunc(partial.Response.CompositeDocuments,
			func(r wire.DocumentReference) bool { return r.Document == location })
		if err := b.save(ctx, kindDocument, partial.Response.ID, partial); err != nil {
			return err
		}
	}

	if err := b.deleteIfExists(ctx, kindExtractions, documentID); err != nil {
		return err
	}
	if err := b.deleteIfExists(ctx, kindLayout, documentID); err != nil {
		return err
	}
	return b.store.Delete(ctx, kindDocument, documentID)
}

// completedDocument loads a document and fails unless processing completed.
func (b *Backend) completedDocument(ctx context.Context, documentID string) (*documentRecord, error) {
	var rec documentRecord
	if err := b.load(ctx, kindDocument, documentID, &rec); err != nil {
		return nil, err
	}
	if rec.Response.Progress != string(domain.ProcessingStateCompleted) {
		return nil, fmt.Errorf("%w: document %s is %s", domain.ErrNotFound, documentID, rec.Response.Progress)
	}
	return &rec, nil
}

// GetExtractions returns the extractions JSON of a completed document.
func (b *Backend) GetExtractions(ctx context.Context, documentID string) ([]byte, error) {
	done, err := b.begin(ctx, "get extractions of %s", documentID)
	if err != nil {
		return nil, err
	}
	defer done()

	extractions, err := b.extractions(ctx, documentID)
	if err != nil {
		return nil, err
	}
	return marshal(extractions)
}

// extractions loads the stored extractions, generating them on first access.
func (b *Backend) extractions(ctx context.Context, documentID string) (*wire.ExtractionsResponse, error) {
	if _, err := b.completedDocument(ctx, documentID); err != nil {
		return nil, err
	}

	var extractions wire.ExtractionsResponse
	err := b.load(ctx, kindExtractions, documentID, &extractions)
	if err == nil {
		return &extractions, nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	extractions = sampleExtractions()
	if err := b.save(ctx, kindExtractions, documentID, extractions); err != nil {
		return nil, err
	}
	return &extractions, nil
}

// SendFeedback replaces extraction values with the corrected ones.
func (b *Backend) SendFeedback(ctx context.Context, documentID string, body []byte) error {
	done, err := b.begin(ctx, "feedback for %s", documentID)
	if err != nil {
		return err
	}
	defer done()

	var feedback wire.FeedbackBody
	if err := json.Unmarshal(body, &feedback); err != nil {
		return fmt.Errorf("%w: feedback body: %v", domain.ErrInvalidInput, err)
	}

	extractions, err := b.extractions(ctx, documentID)
	if err != nil {
		return err
	}
	applyFeedback(extractions, feedback)
	return b.save(ctx, kindExtractions, documentID, extractions)
}

// ErrorReportForDocument stores an error report and returns its id.
func (b *Backend) ErrorReportForDocument(ctx context.Context, documentID, summary, description string) ([]byte, error) {
	done, err := b.begin(ctx, "error report for %s", documentID)
	if err != nil {
		return nil, err
	}
	defer done()

	var rec documentRecord
	if err := b.load(ctx, kindDocument, documentID, &rec); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	report := errorReportRecord{DocumentID: documentID, Summary: summary, Description: description}
	if err := b.save(ctx, kindErrorReport, id, report); err != nil {
		return nil, err
	}
	return marshal(wire.ErrorReportResponse{ErrorID: id, Message: "error report received"})
}

// GetLayoutForDocument returns the layout JSON of a completed document.
func (b *Backend) GetLayoutForDocument(ctx context.Context, documentID string) ([]byte, error) {
	done, err := b.begin(ctx, "get layout of %s", documentID)
	if err != nil {
		return nil, err
	}
	defer done()

	rec, err := b.completedDocument(ctx, documentID)
	if err != nil {
		return nil, err
	}

	var layout domain.Layout
	err = b.load(ctx, kindLayout, documentID, &layout)
	if isNotFound(err) {
		layout = sampleLayout(rec.Response.PageCount)
		err = b.save(ctx, kindLayout, documentID, layout)
	}
	if err != nil {
		return nil, err
	}
	return marshal(layout)
}
