package client

import (
	"context"
	"sort"
	"strings"
	"sync"

	"ledger/internal/clients/models"
	"ledger/pkg/platform/sentinel"
)

// InMemoryStore holds clients behind an RWMutex. Mirrors the postgres store
// for unit tests and local runs.
type InMemoryStore struct {
	mu           sync.RWMutex
	clients      []models.Client
	byNationalID map[string]struct{}
	byEmail      map[string]struct{}
	nextID       int64
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		byNationalID: make(map[string]struct{}),
		byEmail:      make(map[string]struct{}),
	}
}

// Insert appends a client and returns its id. Duplicate national ids or
// emails are rejected with sentinel.ErrConflict, matching the unique
// constraints.
func (s *InMemoryStore) Insert(_ context.Context, c *models.Client) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byNationalID[c.NationalID]; exists {
		return 0, sentinel.ErrConflict
	}
	if c.Email != "" {
		if _, exists := s.byEmail[c.Email]; exists {
			return 0, sentinel.ErrConflict
		}
	}
	s.nextID++
	stored := *c
	stored.ID = s.nextID
	s.clients = append(s.clients, stored)
	s.byNationalID[c.NationalID] = struct{}{}
	if c.Email != "" {
		s.byEmail[c.Email] = struct{}{}
	}
	return stored.ID, nil
}

// ExistsByNationalID reports whether a client with the national id exists.
func (s *InMemoryStore) ExistsByNationalID(_ context.Context, nationalID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byNationalID[nationalID]
	return ok, nil
}

// ExistsByEmail reports whether a client with the email exists.
func (s *InMemoryStore) ExistsByEmail(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byEmail[email]
	return ok, nil
}

// FindByID returns a client by id.
func (s *InMemoryStore) FindByID(_ context.Context, id int64) (*models.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.ID == id {
			out := c
			return &out, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func matchesSearch(c models.Client, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range []string{c.NationalID, c.FullName, c.Email, c.Phone} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func sortKey(c models.Client, field models.SortField) string {
	switch field {
	case models.SortByNationalID:
		return c.NationalID
	case models.SortByEmail:
		return c.Email
	case models.SortByRegistered:
		return c.RegisteredAt.UTC().Format("2006-01-02T15:04:05.000000000")
	default:
		return c.FullName
	}
}

// ListByAgency returns one page of the agency's clients plus the unwindowed
// total for the same filter.
func (s *InMemoryStore) ListByAgency(_ context.Context, agencyID int64, f models.ListFilter) (*models.Page, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.Client
	for _, c := range s.clients {
		if c.AgencyID != agencyID {
			continue
		}
		if f.Status != nil && c.Status != *f.Status {
			continue
		}
		if !matchesSearch(c, f.Search) {
			continue
		}
		matched = append(matched, c)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		ki, kj := sortKey(matched[i], f.SortBy), sortKey(matched[j], f.SortBy)
		if f.Order == models.SortDesc {
			return ki > kj
		}
		return ki < kj
	})

	page := &models.Page{Total: int64(len(matched))}
	start := f.Offset
	if start > len(matched) {
		start = len(matched)
	}
	end := len(matched)
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}
	page.Clients = append(page.Clients, matched[start:end]...)
	return page, nil
}
