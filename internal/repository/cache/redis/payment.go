package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gitee.com/flycash/payment-processor/internal/domain"
	"gitee.com/flycash/payment-processor/internal/repository/cache"
	"github.com/gofrs/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

var _ cache.PaymentCache = (*PaymentCache)(nil)

const scanBatch = 500

type PaymentCache struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewPaymentCache(rdb redis.Cmdable, ttl time.Duration) *PaymentCache {
	if ttl <= 0 {
		ttl = cache.DefaultExpiredTime
	}
	return &PaymentCache{
		rdb: rdb,
		ttl: ttl,
	}
}

func (c *PaymentCache) Get(ctx context.Context, correlationID uuid.UUID) (domain.Payment, error) {
	val, err := c.rdb.Get(ctx, cache.PaymentKey(correlationID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Payment{}, cache.ErrKeyNotFound
		}
		return domain.Payment{}, errors.Wrap(err, "failed to get payment from redis")
	}
	var p domain.Payment
	if err = json.Unmarshal(val, &p); err != nil {
		return domain.Payment{}, fmt.Errorf("failed to unmarshal payment data %w", err)
	}
	return p, nil
}

func (c *PaymentCache) Set(ctx context.Context, p domain.Payment) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal payment data %w", err)
	}
	err = c.rdb.Set(ctx, cache.PaymentKey(p.CorrelationID), data, c.ttl).Err()
	if err != nil {
		return errors.Wrap(err, "failed to set payment to redis")
	}
	return nil
}

// Clear 用 SCAN 分批删除
func (c *PaymentCache) Clear(ctx context.Context) error {
	var cursor uint64
	pattern := cache.PaymentPrefix + ":*"
	for {
		keys, next, err := c.rdb.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return errors.Wrap(err, "failed to scan payment keys")
		}
		if len(keys) > 0 {
			if err = c.rdb.Del(ctx, keys...).Err(); err != nil {
				return errors.Wrap(err, "failed to delete payment keys")
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
