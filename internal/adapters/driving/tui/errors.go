package tui

import "errors"

// ErrMissingDocumentManager is returned when the document manager is not provided.
var ErrMissingDocumentManager = errors.New("tui: document manager is required")
