// Package watch uploads files dropped into a directory and reports their
// extractions once the backend has processed them.
//
// Each new or changed file is uploaded as a partial document, composed into
// a single-page composite document and polled until its extractions are
// available. Hidden files, directories and unsupported content types are
// ignored.
package watch
