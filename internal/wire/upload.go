package wire

import (
	"strings"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

const (
	partialContentTypePrefix = "application/vnd.gini.v1.partial+"

	// CompositeContentType is the content type of a composite document upload.
	CompositeContentType = "application/vnd.gini.v1.composite+json"
)

// PartialContentType converts a media type such as image/jpeg into the
// partial document upload type application/vnd.gini.v1.partial+jpeg.
func PartialContentType(contentType string) string {
	subtype := contentType
	if i := strings.LastIndex(contentType, "/"); i >= 0 {
		subtype = contentType[i+1:]
	}
	return partialContentTypePrefix + subtype
}

// IsPartialContentType reports whether contentType is a partial document upload type.
func IsPartialContentType(contentType string) bool {
	return strings.HasPrefix(contentType, partialContentTypePrefix)
}

// CompositeDocumentBody is the upload body of a composite document.
type CompositeDocumentBody struct {
	PartialDocuments []CompositePartialDocument `json:"partialDocuments"`
}

// CompositePartialDocument is one page of a composite document upload.
type CompositePartialDocument struct {
	Document      string `json:"document"`
	RotationDelta int    `json:"rotationDelta"`
}

// NewCompositeDocumentBody builds a composite upload body. Rotation is
// normalised into [0, 360).
func NewCompositeDocumentBody(pages []domain.CompositePage) CompositeDocumentBody {
	body := CompositeDocumentBody{PartialDocuments: make([]CompositePartialDocument, 0, len(pages))}
	for _, p := range pages {
		body.PartialDocuments = append(body.PartialDocuments, CompositePartialDocument{
			Document:      p.Document.URI,
			RotationDelta: NormalizeRotation(p.Rotation),
		})
	}
	return body
}

// NormalizeRotation maps any rotation in degrees into [0, 360).
func NormalizeRotation(degrees int) int {
	r := degrees % 360
	if r < 0 {
		r += 360
	}
	return r
}
