package web

import (
	"time"

	"gitee.com/flycash/payment-processor/internal/domain"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// 金额在 JSON 里是数字不是字符串
	decimal.MarshalJSONWithoutQuotes = true
}

const (
	msgPaymentProcessed = "payment processed successfully"
	msgPaymentsPurged   = "All payments purged."
)

type MessageVO struct {
	Message string `json:"message"`
}

type PaymentReq struct {
	CorrelationID uuid.UUID       `json:"correlationId"`
	Amount        decimal.Decimal `json:"amount"`
	RequestedAt   time.Time       `json:"requestedAt"`
}

func (r PaymentReq) toDomain() domain.Payment {
	return domain.Payment{
		CorrelationID: r.CorrelationID,
		Amount:        r.Amount,
		RequestedAt:   r.RequestedAt.UTC(),
	}
}

type PaymentVO struct {
	CorrelationID uuid.UUID       `json:"correlationId"`
	Amount        decimal.Decimal `json:"amount"`
	RequestedAt   time.Time       `json:"requestedAt"`
}

func newPaymentVO(p domain.Payment) PaymentVO {
	return PaymentVO{
		CorrelationID: p.CorrelationID,
		Amount:        p.Amount,
		RequestedAt:   p.RequestedAt,
	}
}

type SummaryVO struct {
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	TotalRequests     int64           `json:"totalRequests"`
	TotalFee          decimal.Decimal `json:"totalFee"`
	FeePerTransaction decimal.Decimal `json:"feePerTransaction"`
}

func newSummaryVO(s domain.Summary) SummaryVO {
	return SummaryVO{
		TotalAmount:       s.TotalAmount,
		TotalRequests:     s.TotalRequests,
		TotalFee:          s.TotalFee,
		FeePerTransaction: s.FeePerTransaction,
	}
}

type HealthVO struct {
	Failing         bool  `json:"failing"`
	MinResponseTime int64 `json:"minResponseTime"`
}

// 下面三个请求用指针区分字段缺失和零值

type TokenReq struct {
	Token *string `json:"token"`
}

type DelayReq struct {
	Delay *int64 `json:"delay"`
}

type FailureReq struct {
	Failure *bool `json:"failure"`
}

type ChangeVO[T any] struct {
	Config string `json:"config"`
	Was    T      `json:"was"`
	Is     T      `json:"is"`
}

func newChangeVO[T any](c domain.Change[T]) ChangeVO[T] {
	return ChangeVO[T]{Config: c.Config, Was: c.Was, Is: c.Is}
}
