// Package statscache is a read-side cache for statistics aggregates.
//
// It fronts only the reporting path: balances are never cached anywhere, so a
// stale entry can never let a withdrawal through.
package statscache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ledger/internal/ledger/models"
)

// RedisCache stores serialized aggregates with a short TTL. All operations
// are fail-open: a cache fault degrades to a store query, never to an error.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Key derives a stable cache key from the filter.
func Key(f models.StatsFilter) string {
	agency := "all"
	if f.AgencyID != nil {
		agency = fmt.Sprintf("%d", *f.AgencyID)
	}
	start, end := "-", "-"
	if f.StartDate != nil {
		start = f.StartDate.UTC().Format(time.RFC3339)
	}
	if f.EndDate != nil {
		end = f.EndDate.UTC().Format(time.RFC3339)
	}
	return fmt.Sprintf("ledger:stats:%s:%s:%s", agency, start, end)
}

// Get returns the cached aggregate for the filter, or false on miss or fault.
func (c *RedisCache) Get(ctx context.Context, f models.StatsFilter) (*models.TransactionStats, bool) {
	payload, err := c.client.Get(ctx, Key(f)).Bytes()
	if err != nil {
		return nil, false
	}
	var stats models.TransactionStats
	if err := json.Unmarshal(payload, &stats); err != nil {
		return nil, false
	}
	return &stats, true
}

// Set stores the aggregate for the filter. Faults are swallowed.
func (c *RedisCache) Set(ctx context.Context, f models.StatsFilter, stats *models.TransactionStats) {
	payload, err := json.Marshal(stats)
	if err != nil {
		return
	}
	_ = c.client.Set(ctx, Key(f), payload, c.ttl).Err()
}
