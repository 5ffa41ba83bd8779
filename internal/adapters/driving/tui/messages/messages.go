// Package messages defines Bubbletea message types for the TUI.
package messages

import (
	"github.com/custodia-labs/docpay-cli/internal/core/domain"
)

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewRequests lists all payment requests.
	ViewRequests
	// ViewRequest looks up and resolves a single payment request.
	ViewRequest
	// ViewProviders lists payment providers.
	ViewProviders
	// ViewExtractions shows the extractions of a document.
	ViewExtractions
	// ViewHelp is the keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewRequests:
		return "requests"
	case ViewRequest:
		return "request"
	case ViewProviders:
		return "providers"
	case ViewExtractions:
		return "extractions"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// RequestsLoaded carries all payment requests.
type RequestsLoaded struct {
	Requests []domain.PaymentRequest
	Err      error
}

// RequestLoaded carries one payment request and, once it is paid, its payment.
type RequestLoaded struct {
	ID      string
	Request *domain.PaymentRequest
	Payment *domain.Payment
	Err     error
}

// RequestResolved signals a payment request was marked as paid.
type RequestResolved struct {
	ID        string
	PaymentID string
	Err       error
}

// ProvidersLoaded carries the payment providers.
type ProvidersLoaded struct {
	Providers []domain.PaymentProvider
	Err       error
}

// ExtractionsLoaded carries the extractions of a document.
type ExtractionsLoaded struct {
	DocumentID  string
	Extractions *domain.ExtractionsContainer
	Err         error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
