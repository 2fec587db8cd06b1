//go:build e2e

package redis

import (
	"testing"
	"time"

	"gitee.com/flycash/payment-processor/internal/domain"
	"gitee.com/flycash/payment-processor/internal/repository/cache"
	"github.com/gofrs/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type PaymentCacheTestSuite struct {
	suite.Suite
	client *redis.Client
	cache  *PaymentCache
}

func TestPaymentCacheTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentCacheTestSuite))
}

func (s *PaymentCacheTestSuite) SetupSuite() {
	s.client = redis.NewClient(&redis.Options{
		Addr: "localhost:6379",
		DB:   0,
	})
	s.cache = NewPaymentCache(s.client, time.Minute)
}

func (s *PaymentCacheTestSuite) TearDownSuite() {
	s.client.FlushDB(s.T().Context())
	s.client.Close()
}

func (s *PaymentCacheTestSuite) SetupTest() {
	s.client.FlushDB(s.T().Context())
}

func (s *PaymentCacheTestSuite) TestSetGet() {
	ctx := s.T().Context()
	p := domain.Payment{
		CorrelationID: uuid.Must(uuid.NewV4()),
		Amount:        decimal.RequireFromString("99.99"),
		RequestedAt:   time.Date(2025, 7, 1, 8, 30, 0, 0, time.UTC),
	}
	_, err := s.cache.Get(ctx, p.CorrelationID)
	s.ErrorIs(err, cache.ErrKeyNotFound)

	s.NoError(s.cache.Set(ctx, p))
	got, err := s.cache.Get(ctx, p.CorrelationID)
	s.NoError(err)
	s.Equal(p.CorrelationID, got.CorrelationID)
	s.True(p.Amount.Equal(got.Amount))
	s.True(p.RequestedAt.Equal(got.RequestedAt))

	ttl, err := s.client.TTL(ctx, cache.PaymentKey(p.CorrelationID)).Result()
	s.NoError(err)
	s.Positive(ttl)
}

func (s *PaymentCacheTestSuite) TestClear() {
	ctx := s.T().Context()
	ids := make([]uuid.UUID, 0, 1200)
	for i := 0; i < 1200; i++ {
		p := domain.Payment{CorrelationID: uuid.Must(uuid.NewV4()), Amount: decimal.NewFromInt(int64(i))}
		s.NoError(s.cache.Set(ctx, p))
		ids = append(ids, p.CorrelationID)
	}
	s.NoError(s.client.Set(ctx, "other:key", "v", 0).Err())

	s.NoError(s.cache.Clear(ctx))
	for _, id := range ids {
		_, err := s.cache.Get(ctx, id)
		s.ErrorIs(err, cache.ErrKeyNotFound)
	}
	// 不属于支付记录的 key 不受影响
	s.Equal("v", s.client.Get(ctx, "other:key").Val())
}
