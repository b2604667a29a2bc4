package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"ledger/internal/ledger/models"
	dErrors "ledger/pkg/domain-errors"
)

// GetTransactionStats aggregates the filtered transaction set: overall
// totals, per-type and per-agency breakdowns. The three store queries run
// concurrently; when a cache is configured it serves repeat reads and is
// refreshed after every computed aggregate.
func (s *Service) GetTransactionStats(ctx context.Context, filter models.StatsFilter) (*models.TransactionStats, error) {
	ctx, span := s.tracer.Start(ctx, "ledger.GetTransactionStats")
	defer span.End()

	if s.statsCache != nil {
		if stats, ok := s.statsCache.Get(ctx, filter); ok {
			s.metrics.IncStatsCacheHit()
			return stats, nil
		}
		s.metrics.IncStatsCacheMiss()
	}

	var (
		stats    *models.TransactionStats
		byType   map[models.TransactionType]models.Breakdown
		byAgency map[string]models.Breakdown
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = s.transactions.StatsTotals(gCtx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		byType, err = s.transactions.StatsByType(gCtx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		byAgency, err = s.transactions.StatsByAgency(gCtx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to aggregate transaction statistics")
	}

	stats.ByType = byType
	stats.ByAgency = byAgency

	if s.statsCache != nil {
		s.statsCache.Set(ctx, filter, stats)
	}
	return stats, nil
}
