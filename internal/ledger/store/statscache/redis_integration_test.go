//go:build integration

package statscache_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"ledger/internal/ledger/models"
	"ledger/internal/ledger/store/statscache"
	"ledger/pkg/testutil/containers"
)

type RedisCacheSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	cache *statscache.RedisCache
}

func TestRedisCacheSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisCacheSuite))
}

func (s *RedisCacheSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.cache = statscache.NewRedis(s.redis.Client, time.Minute)
}

func (s *RedisCacheSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func sampleStats() *models.TransactionStats {
	return &models.TransactionStats{
		TotalTransactions: 4,
		TotalAmount:       decimal.RequireFromString("6500"),
		AverageAmount:     decimal.RequireFromString("1625"),
		MinAmount:         decimal.RequireFromString("500"),
		MaxAmount:         decimal.RequireFromString("3000"),
		CompletedCount:    4,
		ByType: map[models.TransactionType]models.Breakdown{
			models.TypeDeposit: {Count: 2, Total: decimal.RequireFromString("4000")},
		},
		ByAgency: map[string]models.Breakdown{
			"Central": {Count: 3, Total: decimal.RequireFromString("6000")},
		},
	}
}

func (s *RedisCacheSuite) TestMissOnEmptyCache() {
	_, ok := s.cache.Get(context.Background(), models.StatsFilter{})
	s.False(ok)
}

func (s *RedisCacheSuite) TestSetGetRoundTrip() {
	ctx := context.Background()
	filter := models.StatsFilter{}

	s.cache.Set(ctx, filter, sampleStats())

	got, ok := s.cache.Get(ctx, filter)
	s.Require().True(ok)
	s.Equal(int64(4), got.TotalTransactions)
	s.True(got.TotalAmount.Equal(decimal.RequireFromString("6500")))
	s.True(got.AverageAmount.Equal(decimal.RequireFromString("1625")))
	s.Equal(int64(2), got.ByType[models.TypeDeposit].Count)
	s.True(got.ByType[models.TypeDeposit].Total.Equal(decimal.RequireFromString("4000")))
	s.Equal(int64(3), got.ByAgency["Central"].Count)
}

func (s *RedisCacheSuite) TestDistinctFiltersDoNotCollide() {
	ctx := context.Background()
	agency := int64(2)
	filtered := models.StatsFilter{AgencyID: &agency}

	s.cache.Set(ctx, models.StatsFilter{}, sampleStats())

	_, ok := s.cache.Get(ctx, filtered)
	s.False(ok, "agency-scoped filter must not read the unscoped entry")
}

func (s *RedisCacheSuite) TestEntriesExpire() {
	ctx := context.Background()
	short := statscache.NewRedis(s.redis.Client, 100*time.Millisecond)
	filter := models.StatsFilter{}

	short.Set(ctx, filter, sampleStats())
	_, ok := short.Get(ctx, filter)
	s.Require().True(ok)

	time.Sleep(200 * time.Millisecond)

	_, ok = short.Get(ctx, filter)
	s.False(ok, "entry must expire with the TTL")
}

func (s *RedisCacheSuite) TestCorruptPayloadIsAMiss() {
	ctx := context.Background()
	filter := models.StatsFilter{}

	err := s.redis.Client.Set(ctx, statscache.Key(filter), "not json", time.Minute).Err()
	s.Require().NoError(err)

	_, ok := s.cache.Get(ctx, filter)
	s.False(ok, "fail-open: corrupt entries degrade to a miss")
}
