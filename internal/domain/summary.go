package domain

import "github.com/shopspring/decimal"

// Summary 汇总结果，只在查询时计算，不落库
type Summary struct {
	TotalRequests     int64
	TotalAmount       decimal.Decimal
	TotalFee          decimal.Decimal
	FeePerTransaction decimal.Decimal
}

// NewSummary 根据聚合结果和当前费率计算汇总
func NewSummary(agg PaymentAggregate, feeRate decimal.Decimal) Summary {
	return Summary{
		TotalRequests:     agg.TotalRequests,
		TotalAmount:       agg.TotalAmount,
		TotalFee:          agg.TotalAmount.Mul(feeRate),
		FeePerTransaction: feeRate,
	}
}
