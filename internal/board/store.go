package board

import (
	"sync"

	"github.com/janghq/whereabouts-board/internal/models"
)

// MemoryStore is the authoritative in-process record store: one record
// per employee id, guarded writes, copy-out reads. It carries no
// business logic; all mutations flow through the Engine.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.Record
}

// NewMemoryStore creates an empty record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]models.Record)}
}

// Get returns a copy of the record for the employee, if one exists.
func (s *MemoryStore) Get(employeeID string) (models.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[employeeID]
	return rec, ok
}

// Put replaces the employee's record atomically. The incoming record's
// Version must match the stored one (zero for a new record); the stored
// version is then advanced. A mismatch returns ErrWriteConflict.
func (s *MemoryStore) Put(rec models.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.records[rec.EmployeeID]
	switch {
	case !exists && rec.Version != 0:
		return ErrWriteConflict
	case exists && rec.Version != current.Version:
		return ErrWriteConflict
	}

	rec.Version++
	s.records[rec.EmployeeID] = rec
	return nil
}

// List returns a consistent copy of every record.
func (s *MemoryStore) List() map[string]models.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]models.Record, len(s.records))
	for id, rec := range s.records {
		out[id] = rec
	}
	return out
}

// Load seeds the store from the durable mirror at startup. Existing
// entries are replaced wholesale; versions are kept as stored.
func (s *MemoryStore) Load(recs []models.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make(map[string]models.Record, len(recs))
	for _, rec := range recs {
		s.records[rec.EmployeeID] = rec
	}
}
