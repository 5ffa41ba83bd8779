package wire

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

func TestDocumentResponse_ToDocument(t *testing.T) {
	data := []byte(`{
		"id": "626626a0-749f-11e2-bfd6-000000000000",
		"creationDate": 1360623867402,
		"name": "scanned.jpg",
		"progress": "COMPLETED",
		"sourceClassification": "SCANNED",
		"pageCount": 1,
		"_links": {"document": "https://api.gini.net/documents/626626a0-749f-11e2-bfd6-000000000000"},
		"compositeDocuments": [{"document": "https://api.gini.net/documents/composite-1"}]
	}`)

	var resp DocumentResponse
	require.NoError(t, json.Unmarshal(data, &resp))

	doc := resp.ToDocument()

	assert.Equal(t, "626626a0-749f-11e2-bfd6-000000000000", doc.ID)
	assert.Equal(t, domain.ProcessingStateCompleted, doc.State)
	assert.Equal(t, "scanned.jpg", doc.Filename)
	assert.Equal(t, 1, doc.PageCount)
	assert.Equal(t, domain.SourceClassificationScanned, doc.SourceClassification)
	assert.Equal(t, time.UnixMilli(1360623867402).UTC(), doc.CreatedAt)
	assert.Equal(t, "https://api.gini.net/documents/626626a0-749f-11e2-bfd6-000000000000", doc.URI)
	assert.Equal(t, []string{"https://api.gini.net/documents/composite-1"}, doc.CompositeDocuments)
	assert.Empty(t, doc.PartialDocuments)
}

func TestDocumentResponse_UnknownValues(t *testing.T) {
	doc := DocumentResponse{ID: "1", Progress: "INDEXING", SourceClassification: "HANDWRITTEN"}.ToDocument()

	assert.Equal(t, domain.ProcessingStateUnknown, doc.State)
	assert.Equal(t, domain.SourceClassificationUnknown, doc.SourceClassification)
	assert.True(t, doc.CreatedAt.IsZero())
}
