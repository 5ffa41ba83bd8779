// Package sandbox provides a local emulation of the document and payment
// backend.
//
// Backend implements driven.APICommunicator over a driven.RecordStore, so
// the full document and payment flow can run offline against either the
// in-memory or the SQLite store. Requests are throttled by a token bucket
// and request bodies are validated the way the hosted API validates them.
//
// Emulated behaviour:
//
//   - Uploaded documents report PENDING for the configured number of status
//     reads and COMPLETED afterwards.
//   - Extractions are generated when a document completes and are replaced
//     by any feedback sent for it.
//   - Layout is generated from the page count.
//   - Two payment providers are seeded on first use.
//   - Resolving an open payment request stores its Payment and marks the
//     request paid, or paid_adjusted when the amount differs.
package sandbox
