package domain

import "time"

// ProcessingState is the backend's progress on a document.
type ProcessingState string

// Document processing states.
const (
	ProcessingStatePending   ProcessingState = "PENDING"
	ProcessingStateIndexed   ProcessingState = "INDEXED"
	ProcessingStateCompleted ProcessingState = "COMPLETED"
	ProcessingStateError     ProcessingState = "ERROR"
	ProcessingStateUnknown   ProcessingState = "UNKNOWN"
)

// IsTerminal returns true once the backend has stopped working on the document.
// Anything other than PENDING ends a poll.
func (s ProcessingState) IsTerminal() bool {
	return s != ProcessingStatePending
}

// String returns the string representation.
func (s ProcessingState) String() string {
	return string(s)
}

// SourceClassification describes how the backend classified the uploaded bytes.
type SourceClassification string

// Source classifications.
const (
	SourceClassificationScanned   SourceClassification = "SCANNED"
	SourceClassificationSandwich  SourceClassification = "SANDWICH"
	SourceClassificationNative    SourceClassification = "NATIVE"
	SourceClassificationText      SourceClassification = "TEXT"
	SourceClassificationComposite SourceClassification = "COMPOSITE"
	SourceClassificationUnknown   SourceClassification = "UNKNOWN"
)

// DocumentType is an optional hint about what kind of document is uploaded.
type DocumentType string

// Document type hints understood by the backend.
const (
	DocumentTypeNone           DocumentType = ""
	DocumentTypeInvoice        DocumentType = "Invoice"
	DocumentTypeRemittanceSlip DocumentType = "RemittanceSlip"
	DocumentTypeReceipt        DocumentType = "Receipt"
	DocumentTypeReminder       DocumentType = "Reminder"
	DocumentTypeCreditNote     DocumentType = "CreditNote"
	DocumentTypeBankStatement  DocumentType = "BankStatement"
)

// Document represents an uploaded or composed document.
// It is opaque to callers beyond being passed back to later operations.
type Document struct {
	// ID is the backend-assigned identifier.
	ID string

	// State is the current processing state.
	State ProcessingState

	// Filename is the name given at upload time.
	Filename string

	// PageCount is the number of pages the backend detected.
	PageCount int

	// CreatedAt is when the backend created the document.
	CreatedAt time.Time

	// SourceClassification is how the uploaded bytes were classified.
	SourceClassification SourceClassification

	// URI is the document's resource location.
	URI string

	// CompositeDocuments lists the URIs of composite documents this
	// partial document is part of.
	CompositeDocuments []string

	// PartialDocuments lists the URIs of the pages of a composite document.
	PartialDocuments []string
}

// DocumentMetadata carries optional information sent with an upload.
type DocumentMetadata struct {
	// BranchID identifies the client branch the upload originates from.
	BranchID string

	// Headers are custom metadata values, sent as extra upload headers.
	Headers map[string]string
}

// CompositePage is one page of a composite document.
type CompositePage struct {
	// Document is the partial document making up the page.
	Document Document

	// Rotation is the clockwise rotation delta in degrees.
	Rotation int
}

// Layout is the JSON-structured page layout the backend computed for a document.
type Layout map[string]any
