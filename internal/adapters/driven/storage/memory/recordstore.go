package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/custodia-labs/docpay-cli/internal/core/domain"
	"github.com/custodia-labs/docpay-cli/internal/core/ports/driven"
)

// Ensure RecordStore implements the interface.
var _ driven.RecordStore = (*RecordStore)(nil)

// RecordStore is an in-memory implementation of driven.RecordStore.
type RecordStore struct {
	mu      sync.RWMutex
	records map[string]map[string]driven.Record
	seq     map[string]map[string]int
	next    int
}

// NewRecordStore creates a new in-memory record store.
func NewRecordStore() *RecordStore {
	return &RecordStore{
		records: make(map[string]map[string]driven.Record),
		seq:     make(map[string]map[string]int),
	}
}

// Put stores or replaces a record. CreatedAt survives replacement.
func (s *RecordStore) Put(_ context.Context, rec *driven.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID, ok := s.records[rec.Kind]
	if !ok {
		byID = make(map[string]driven.Record)
		s.records[rec.Kind] = byID
		s.seq[rec.Kind] = make(map[string]int)
	}

	now := time.Now().UTC()
	if existing, ok := byID[rec.ID]; ok {
		rec.CreatedAt = existing.CreatedAt
	} else {
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		s.next++
		s.seq[rec.Kind][rec.ID] = s.next
	}
	rec.UpdatedAt = now

	stored := *rec
	stored.Data = slices.Clone(rec.Data)
	byID[rec.ID] = stored
	return nil
}

// Get retrieves a record by kind and id.
func (s *RecordStore) Get(_ context.Context, kind, id string) (*driven.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[kind][id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	rec.Data = slices.Clone(rec.Data)
	return &rec, nil
}

// Delete removes a record.
func (s *RecordStore) Delete(_ context.Context, kind, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[kind][id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.records[kind], id)
	delete(s.seq[kind], id)
	return nil
}

// List returns all records of a kind in insertion order.
func (s *RecordStore) List(_ context.Context, kind string) ([]driven.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]driven.Record, 0, len(s.records[kind]))
	for _, rec := range s.records[kind] {
		rec.Data = slices.Clone(rec.Data)
		result = append(result, rec)
	}
	order := s.seq[kind]
	slices.SortFunc(result, func(a, b driven.Record) int {
		return order[a.ID] - order[b.ID]
	})
	return result, nil
}

// Close is a no-op for the memory store.
func (s *RecordStore) Close() error {
	return nil
}
