// Package wire defines the JSON records exchanged with the backend and the
// pure functions that map them to and from domain values.
//
// Mapping functions are total: decoding has already validated the payload,
// so they copy fields and never fail.
package wire
