package wire

import (
	"time"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

// DocumentLinks holds resource locations of a document.
type DocumentLinks struct {
	Document    string `json:"document"`
	Extractions string `json:"extractions,omitempty"`
	Layout      string `json:"layout,omitempty"`
	Processed   string `json:"processed,omitempty"`
}

// DocumentReference points at another document.
type DocumentReference struct {
	Document      string `json:"document"`
	RotationDelta int    `json:"rotationDelta,omitempty"`
}

// DocumentResponse is the backend representation of a document.
type DocumentResponse struct {
	ID                   string              `json:"id"`
	CreationDate         int64               `json:"creationDate"`
	Name                 string              `json:"name"`
	Progress             string              `json:"progress"`
	SourceClassification string              `json:"sourceClassification"`
	PageCount            int                 `json:"pageCount"`
	Links                DocumentLinks       `json:"_links"`
	CompositeDocuments   []DocumentReference `json:"compositeDocuments,omitempty"`
	PartialDocuments     []DocumentReference `json:"partialDocuments,omitempty"`
}

// ToDocument maps the response to a domain document.
// CreationDate is milliseconds since the epoch.
func (r DocumentResponse) ToDocument() *domain.Document {
	doc := &domain.Document{
		ID:                   r.ID,
		State:                processingState(r.Progress),
		Filename:             r.Name,
		PageCount:            r.PageCount,
		SourceClassification: sourceClassification(r.SourceClassification),
		URI:                  r.Links.Document,
	}
	if r.CreationDate != 0 {
		doc.CreatedAt = time.UnixMilli(r.CreationDate).UTC()
	}
	for _, ref := range r.CompositeDocuments {
		doc.CompositeDocuments = append(doc.CompositeDocuments, ref.Document)
	}
	for _, ref := range r.PartialDocuments {
		doc.PartialDocuments = append(doc.PartialDocuments, ref.Document)
	}
	return doc
}

func processingState(s string) domain.ProcessingState {
	switch st := domain.ProcessingState(s); st {
	case domain.ProcessingStatePending, domain.ProcessingStateIndexed,
		domain.ProcessingStateCompleted, domain.ProcessingStateError:
		return st
	default:
		return domain.ProcessingStateUnknown
	}
}

func sourceClassification(s string) domain.SourceClassification {
	switch sc := domain.SourceClassification(s); sc {
	case domain.SourceClassificationScanned, domain.SourceClassificationSandwich,
		domain.SourceClassificationNative, domain.SourceClassificationText,
		domain.SourceClassificationComposite:
		return sc
	default:
		return domain.SourceClassificationUnknown
	}
}

// ErrorReportResponse is returned when a document error report is filed.
type ErrorReportResponse struct {
	ErrorID string `json:"errorId"`
	Message string `json:"message,omitempty"`
}
