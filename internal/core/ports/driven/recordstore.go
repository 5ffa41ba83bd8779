package driven

import (
	"context"
	"time"
)

// Record is an opaque JSON value stored under a kind and id.
type Record struct {
	// Kind groups records of the same type, e.g. "document".
	Kind string

	// ID is unique within a kind.
	ID string

	// Data is the JSON payload.
	Data []byte

	// CreatedAt is set by the store on first write.
	CreatedAt time.Time

	// UpdatedAt is set by the store on every write.
	UpdatedAt time.Time
}

// RecordStore persists records for the sandbox backend.
type RecordStore interface {
	// Put stores or replaces a record.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a record. Returns domain.ErrNotFound if absent.
	Get(ctx context.Context, kind, id string) (*Record, error)

	// Delete removes a record. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, kind, id string) error

	// List returns all records of a kind ordered by creation time.
	List(ctx context.Context, kind string) ([]Record, error)

	// Close releases the store's resources.
	Close() error
}
