// Package mcp provides an MCP (Model Context Protocol) server adapter for docpay.
// It lets AI assistants read document extractions and drive the payment
// request flow through the document manager.
package mcp

import "errors"

// ErrMissingDocumentManager is returned when the document manager is not provided.
var ErrMissingDocumentManager = errors.New("mcp: document manager is required")
