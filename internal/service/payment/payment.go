package payment

import (
	"context"
	"errors"
	"fmt"

	"gitee.com/flycash/payment-processor/internal/domain"
	"gitee.com/flycash/payment-processor/internal/errs"
	"gitee.com/flycash/payment-processor/internal/repository"
	"github.com/gofrs/uuid"
)

//go:generate mockgen -source=./payment.go -destination=./mocks/payment.mock.go -package=paymentmocks Service
type Service interface {
	// Record 金额保留两位小数后写入。
	// correlationId 冲突返回 errs.ErrPaymentDuplicate，其他失败返回 errs.ErrStorageFailure
	Record(ctx context.Context, p domain.Payment) error
	// Lookup 不存在时返回 errs.ErrPaymentNotFound
	Lookup(ctx context.Context, correlationID uuid.UUID) (domain.Payment, error)
	// Purge 清空全部支付记录，自增ID从头开始
	Purge(ctx context.Context) error
}

type service struct {
	repo repository.PaymentRepository
}

func NewService(repo repository.PaymentRepository) Service {
	return &service{
		repo: repo,
	}
}

func (s *service) Record(ctx context.Context, p domain.Payment) error {
	// 唯一性完全交给数据库的唯一索引，这里不做预检查
	err := s.repo.Create(ctx, p.Rounded())
	if err == nil || errors.Is(err, errs.ErrPaymentDuplicate) {
		return err
	}
	return fmt.Errorf("%w: %w", errs.ErrStorageFailure, err)
}

func (s *service) Lookup(ctx context.Context, correlationID uuid.UUID) (domain.Payment, error) {
	p, err := s.repo.FindByCorrelationID(ctx, correlationID)
	if err == nil || errors.Is(err, errs.ErrPaymentNotFound) {
		return p, err
	}
	return domain.Payment{}, fmt.Errorf("%w: %w", errs.ErrStorageFailure, err)
}

func (s *service) Purge(ctx context.Context) error {
	if err := s.repo.Purge(ctx); err != nil {
		return fmt.Errorf("%w: %w", errs.ErrStorageFailure, err)
	}
	return nil
}
