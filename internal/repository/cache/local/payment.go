package local

import (
	"context"
	"time"

	"gitee.com/flycash/payment-processor/internal/domain"
	"gitee.com/flycash/payment-processor/internal/repository/cache"
	"github.com/gofrs/uuid"
	ca "github.com/patrickmn/go-cache"
)

var _ cache.PaymentCache = (*PaymentCache)(nil)

// PaymentCache 进程内缓存，多实例部署时每个实例各自一份
type PaymentCache struct {
	c *ca.Cache
}

func NewPaymentCache(c *ca.Cache) *PaymentCache {
	return &PaymentCache{
		c: c,
	}
}

// NewDefaultPaymentCache 按 ttl 创建底层缓存，清理周期为 ttl 的两倍
func NewDefaultPaymentCache(ttl time.Duration) *PaymentCache {
	if ttl <= 0 {
		ttl = cache.DefaultExpiredTime
	}
	return NewPaymentCache(ca.New(ttl, 2*ttl))
}

func (l *PaymentCache) Get(_ context.Context, correlationID uuid.UUID) (domain.Payment, error) {
	v, ok := l.c.Get(cache.PaymentKey(correlationID))
	if !ok {
		return domain.Payment{}, cache.ErrKeyNotFound
	}
	return v.(domain.Payment), nil
}

func (l *PaymentCache) Set(_ context.Context, p domain.Payment) error {
	l.c.Set(cache.PaymentKey(p.CorrelationID), p, ca.DefaultExpiration)
	return nil
}

func (l *PaymentCache) Clear(_ context.Context) error {
	l.c.Flush()
	return nil
}
