package user

import (
	"context"
	"sync"

	"ledger/internal/ledger/models"
	"ledger/pkg/platform/sentinel"
)

// InMemoryStore holds users behind an RWMutex. Mirrors the postgres store for
// unit tests and local runs.
type InMemoryStore struct {
	mu    sync.RWMutex
	users map[int64]models.User
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{users: make(map[int64]models.User)}
}

// Put inserts or replaces a user. User provisioning is out-of-band; this is
// the test seam for it.
func (s *InMemoryStore) Put(_ context.Context, u models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := u
	return &out, nil
}
