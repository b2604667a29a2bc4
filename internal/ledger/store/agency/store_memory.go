package agency

import (
	"context"
	"sync"

	"ledger/internal/ledger/models"
	"ledger/pkg/platform/sentinel"
)

// InMemoryStore holds agencies behind an RWMutex. Mirrors the postgres store
// for unit tests and local runs.
type InMemoryStore struct {
	mu       sync.RWMutex
	agencies map[int64]models.Agency
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{agencies: make(map[int64]models.Agency)}
}

// Put inserts or replaces an agency. Agencies are provisioned out-of-band;
// this is the test seam for that provisioning.
func (s *InMemoryStore) Put(_ context.Context, a models.Agency) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agencies[a.ID] = a
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*models.Agency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.agencies[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := a
	return &out, nil
}
