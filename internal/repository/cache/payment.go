package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/payment-processor/internal/domain"
	"github.com/gofrs/uuid"
)

const (
	PaymentPrefix = "payment"
	// DefaultExpiredTime 支付记录不可变，过期只是为了控制内存
	DefaultExpiredTime = 10 * time.Minute
)

var ErrKeyNotFound = errors.New("key not found")

// PaymentCache 按 correlationId 缓存支付记录，只服务于查询接口
type PaymentCache interface {
	Get(ctx context.Context, correlationID uuid.UUID) (domain.Payment, error)
	Set(ctx context.Context, p domain.Payment) error
	// Clear 删除全部支付记录缓存，清空表之后调用
	Clear(ctx context.Context) error
}

func PaymentKey(correlationID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", PaymentPrefix, correlationID.String())
}
