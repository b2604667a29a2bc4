package contract

import (
	"context"
	"sync"

	"ledger/internal/ledger/models"
	"ledger/pkg/platform/sentinel"
)

// InMemoryStore holds contracts behind an RWMutex. Serialization of the
// balance-check/insert/activate unit is the transaction runner's job, not
// this store's; Lock here is a plain read.
type InMemoryStore struct {
	mu        sync.RWMutex
	contracts map[int64]models.Contract
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{contracts: make(map[int64]models.Contract)}
}

// Put inserts or replaces a contract. Contract creation is out-of-band; this
// is the test seam for it.
func (s *InMemoryStore) Put(_ context.Context, c models.Contract) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contracts[c.ID] = c
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*models.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.contracts[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := c
	return &out, nil
}

// Lock reads the contract for update. The in-memory transaction runner holds
// a per-contract mutex around the whole unit, so no row lock is needed here.
func (s *InMemoryStore) Lock(ctx context.Context, id int64) (*models.Contract, error) {
	return s.FindByID(ctx, id)
}

// ActivateIfDraft flips a DRAFT contract to ACTIVE. Idempotent: an already
// active contract is left untouched.
func (s *InMemoryStore) ActivateIfDraft(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.contracts[id]
	if !ok {
		return sentinel.ErrNotFound
	}
	if c.Status == models.ContractDraft {
		c.Status = models.ContractActive
		s.contracts[id] = c
	}
	return nil
}
