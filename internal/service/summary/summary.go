package summary

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/payment-processor/internal/domain"
	"gitee.com/flycash/payment-processor/internal/errs"
	"gitee.com/flycash/payment-processor/internal/repository"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=./summary.go -destination=./mocks/summary.mock.go -package=summarymocks Service
type Service interface {
	// Summarize 统计 [from, to] 内的支付记录，两端闭区间。
	// from 或 to 任意一个为 nil 时统计全部记录
	Summarize(ctx context.Context, from, to *time.Time) (domain.Summary, error)
}

// FeeRate 每笔交易的费率，启动时读取一次
type FeeRate decimal.Decimal

type service struct {
	repo    repository.PaymentRepository
	feeRate decimal.Decimal
}

func NewService(repo repository.PaymentRepository, feeRate FeeRate) Service {
	return &service{
		repo:    repo,
		feeRate: decimal.Decimal(feeRate),
	}
}

func (s *service) Summarize(ctx context.Context, from, to *time.Time) (domain.Summary, error) {
	agg, err := s.repo.Aggregate(ctx, from, to)
	if err != nil {
		return domain.Summary{}, fmt.Errorf("%w: %w", errs.ErrStorageFailure, err)
	}
	return domain.NewSummary(agg, s.feeRate), nil
}
