// Package tui provides an interactive terminal interface for browsing
// payment requests, payment providers and document extractions.
package tui

import (
	"github.com/custodia-labs/docpay-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports the TUI needs.
type Ports struct {
	// Documents is the client facade over the backend.
	Documents driving.DocumentManager
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Documents == nil {
		return ErrMissingDocumentManager
	}
	return nil
}
