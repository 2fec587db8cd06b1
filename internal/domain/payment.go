package domain

import (
	"time"

	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// AmountPlaces 金额保留的小数位数
const AmountPlaces int32 = 2

// Payment 支付记录领域对象，创建后不可变
type Payment struct {
	CorrelationID uuid.UUID       // 调用方提供的全局唯一标识
	Amount        decimal.Decimal // 金额，写入时保留两位小数
	RequestedAt   time.Time       // 调用方提供的请求时间，不是服务端时间
}

// Rounded 返回金额按两位小数四舍五入后的副本
func (p Payment) Rounded() Payment {
	p.Amount = p.Amount.Round(AmountPlaces)
	return p
}

// PaymentAggregate 某个时间范围内支付记录的聚合结果
type PaymentAggregate struct {
	TotalRequests int64
	TotalAmount   decimal.Decimal
}
