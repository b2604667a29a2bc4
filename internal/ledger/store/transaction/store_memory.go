package transaction

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"ledger/internal/ledger/models"
	"ledger/pkg/platform/sentinel"
)

// InMemoryStore is the in-memory mirror of the postgres transaction store.
// The reference sequence is a plain counter guarded by the store mutex, which
// gives the same never-reused guarantee as the database sequence.
type InMemoryStore struct {
	mu           sync.RWMutex
	transactions []models.Transaction
	byReference  map[string]struct{}
	nextID       int64
	nextRefSeq   int64

	// agencyNames resolves agency ids for the per-agency-name breakdown,
	// standing in for the SQL join.
	agencyNames map[int64]string
}

func NewInMemory() *InMemoryStore {
	return &InMemoryStore{
		byReference: make(map[string]struct{}),
		agencyNames: make(map[int64]string),
	}
}

// RegisterAgencyName teaches the store an agency's display name for the
// stats breakdown. Test seam mirroring the agencies join.
func (s *InMemoryStore) RegisterAgencyName(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agencyNames[id] = name
}

// NextReferenceSeq returns the next value of the reference counter. Values
// are never reused, even when the insert they were drawn for fails.
func (s *InMemoryStore) NextReferenceSeq(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRefSeq++
	return s.nextRefSeq, nil
}

// Insert appends a transaction and returns its id. Duplicate references are
// rejected with sentinel.ErrConflict, matching the unique constraint.
func (s *InMemoryStore) Insert(_ context.Context, t *models.Transaction) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byReference[t.Reference]; exists {
		return 0, sentinel.ErrConflict
	}
	s.nextID++
	stored := *t
	stored.ID = s.nextID
	s.transactions = append(s.transactions, stored)
	s.byReference[t.Reference] = struct{}{}
	return stored.ID, nil
}

// Balance replays the contract's COMPLETED transactions and returns the sum
// of signed amounts. Never cached.
func (s *InMemoryStore) Balance(_ context.Context, contractID int64) (decimal.Decimal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	balance := decimal.Zero
	for _, t := range s.transactions {
		if t.ContractID != contractID || t.Status != models.StatusCompleted {
			continue
		}
		balance = balance.Add(t.Type.SignedAmount(t.Amount))
	}
	return balance, nil
}

// ListByContract returns the contract's transactions in insertion order.
func (s *InMemoryStore) ListByContract(_ context.Context, contractID int64) ([]models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Transaction
	for _, t := range s.transactions {
		if t.ContractID == contractID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (s *InMemoryStore) matches(t models.Transaction, f models.StatsFilter) bool {
	if f.AgencyID != nil && t.AgencyID != *f.AgencyID {
		return false
	}
	if f.StartDate != nil && t.CreatedAt.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && t.CreatedAt.After(*f.EndDate) {
		return false
	}
	return true
}

// StatsTotals computes the scalar aggregates for the filtered set.
func (s *InMemoryStore) StatsTotals(_ context.Context, f models.StatsFilter) (*models.TransactionStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &models.TransactionStats{}
	completedTotal := decimal.Zero
	for _, t := range s.transactions {
		if !s.matches(t, f) {
			continue
		}
		if stats.TotalTransactions == 0 {
			stats.MinAmount = t.Amount
			stats.MaxAmount = t.Amount
		} else {
			if t.Amount.LessThan(stats.MinAmount) {
				stats.MinAmount = t.Amount
			}
			if t.Amount.GreaterThan(stats.MaxAmount) {
				stats.MaxAmount = t.Amount
			}
		}
		stats.TotalTransactions++
		stats.TotalAmount = stats.TotalAmount.Add(t.Amount)
		switch t.Status {
		case models.StatusCompleted:
			stats.CompletedCount++
			completedTotal = completedTotal.Add(t.Amount)
		case models.StatusFailed:
			stats.FailedCount++
		case models.StatusPending:
			stats.PendingCount++
		}
	}
	if stats.TotalTransactions > 0 {
		stats.AverageAmount = stats.TotalAmount.Div(decimal.NewFromInt(stats.TotalTransactions))
	}
	if stats.CompletedCount > 0 {
		stats.CompletedAverage = completedTotal.Div(decimal.NewFromInt(stats.CompletedCount))
	}
	return stats, nil
}

// StatsByType computes the per-type count+sum breakdown for the filtered set.
func (s *InMemoryStore) StatsByType(_ context.Context, f models.StatsFilter) (map[models.TransactionType]models.Breakdown, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[models.TransactionType]models.Breakdown)
	for _, t := range s.transactions {
		if !s.matches(t, f) {
			continue
		}
		b := out[t.Type]
		b.Count++
		b.Total = b.Total.Add(t.Amount)
		out[t.Type] = b
	}
	return out, nil
}

// StatsByAgency computes the per-agency-name count+sum breakdown for the
// filtered set.
func (s *InMemoryStore) StatsByAgency(_ context.Context, f models.StatsFilter) (map[string]models.Breakdown, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]models.Breakdown)
	for _, t := range s.transactions {
		if !s.matches(t, f) {
			continue
		}
		name, ok := s.agencyNames[t.AgencyID]
		if !ok {
			continue
		}
		b := out[name]
		b.Count++
		b.Total = b.Total.Add(t.Amount)
		out[name] = b
	}
	return out, nil
}
