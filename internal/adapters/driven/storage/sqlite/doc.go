// Package sqlite provides SQLite-backed implementations of driven storage ports.
//
// The database lives in a single file (sandbox.db) in the data directory and is
// opened in WAL mode. Schema changes are applied from embedded, numbered
// migrations on open.
package sqlite
