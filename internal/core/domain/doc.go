// Package domain defines the core business entities for docpay.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: An uploaded or composed document and its processing state
//   - ExtractionsContainer: Fields the backend inferred from a document
//   - PaymentProvider: A banking app payment requests can be routed to
//   - PaymentRequest: A caller-initiated intent to pay
//   - Payment: The settled result of a resolved payment request
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
