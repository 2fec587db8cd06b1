package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gitee.com/flycash/payment-processor/internal/domain"
	"gitee.com/flycash/payment-processor/internal/repository/cache"
	"gitee.com/flycash/payment-processor/internal/repository/dao"
	"github.com/gofrs/uuid"
	"github.com/gotomicro/ego/core/elog"
)

//go:generate mockgen -source=./payment.go -destination=./mocks/payment.mock.go -package=repomocks PaymentRepository
type PaymentRepository interface {
	Create(ctx context.Context, p domain.Payment) error
	FindByCorrelationID(ctx context.Context, correlationID uuid.UUID) (domain.Payment, error)
	Aggregate(ctx context.Context, from, to *time.Time) (domain.PaymentAggregate, error)
	// Purge 清空全部支付记录，然后清空缓存
	Purge(ctx context.Context) error
}

type paymentRepository struct {
	dao    dao.PaymentDAO
	cache  cache.PaymentCache
	logger *elog.Component

	// purgeMu 和 generation 保证 Purge 之前读到的记录不会在 Purge 之后回写缓存。
	// 回写持读锁并校验 generation，Purge 持写锁递增 generation 再清表清缓存
	purgeMu    sync.RWMutex
	generation uint64
}

// NewPaymentRepository 创建支付记录仓库实例，缓存只用于按 correlationId 查询
func NewPaymentRepository(paymentDAO dao.PaymentDAO, paymentCache cache.PaymentCache) PaymentRepository {
	return &paymentRepository{
		dao:    paymentDAO,
		cache:  paymentCache,
		logger: elog.DefaultLogger,
	}
}

func (r *paymentRepository) Create(ctx context.Context, p domain.Payment) error {
	gen := r.currentGeneration()
	created, err := r.dao.Create(ctx, r.toEntity(p))
	if err != nil {
		return err
	}
	d, err := r.toDomain(created)
	if err != nil {
		return err
	}
	if err = r.setCache(ctx, gen, d); err != nil {
		r.logger.Warn("写入支付记录缓存失败",
			elog.String("correlationId", d.CorrelationID.String()),
			elog.FieldErr(err))
	}
	return nil
}

func (r *paymentRepository) FindByCorrelationID(ctx context.Context, correlationID uuid.UUID) (domain.Payment, error) {
	p, err := r.cache.Get(ctx, correlationID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, cache.ErrKeyNotFound) {
		r.logger.Warn("读取支付记录缓存失败",
			elog.String("correlationId", correlationID.String()),
			elog.FieldErr(err))
	}

	gen := r.currentGeneration()
	entity, err := r.dao.FindByCorrelationID(ctx, correlationID.String())
	if err != nil {
		return domain.Payment{}, err
	}
	p, err = r.toDomain(entity)
	if err != nil {
		return domain.Payment{}, err
	}
	if err = r.setCache(ctx, gen, p); err != nil {
		r.logger.Warn("回写支付记录缓存失败",
			elog.String("correlationId", correlationID.String()),
			elog.FieldErr(err))
	}
	return p, nil
}

func (r *paymentRepository) Aggregate(ctx context.Context, from, to *time.Time) (domain.PaymentAggregate, error) {
	agg, err := r.dao.Aggregate(ctx, from, to)
	if err != nil {
		return domain.PaymentAggregate{}, err
	}
	return domain.PaymentAggregate{
		TotalRequests: agg.TotalRequests,
		TotalAmount:   agg.TotalAmount,
	}, nil
}

func (r *paymentRepository) Purge(ctx context.Context) error {
	r.purgeMu.Lock()
	defer r.purgeMu.Unlock()
	r.generation++
	if err := r.dao.Truncate(ctx); err != nil {
		return err
	}
	// 缓存没清掉的话旧记录还能查到，必须报错
	if err := r.cache.Clear(ctx); err != nil {
		return fmt.Errorf("清空支付记录缓存失败: %w", err)
	}
	return nil
}

func (r *paymentRepository) currentGeneration() uint64 {
	r.purgeMu.RLock()
	defer r.purgeMu.RUnlock()
	return r.generation
}

// setCache 期间发生过 Purge 就放弃回写
func (r *paymentRepository) setCache(ctx context.Context, gen uint64, p domain.Payment) error {
	r.purgeMu.RLock()
	defer r.purgeMu.RUnlock()
	if r.generation != gen {
		return nil
	}
	return r.cache.Set(ctx, p)
}

func (r *paymentRepository) toEntity(p domain.Payment) dao.Payment {
	return dao.Payment{
		CorrelationID: p.CorrelationID.String(),
		Amount:        p.Amount,
		RequestedAt:   p.RequestedAt,
	}
}

func (r *paymentRepository) toDomain(entity dao.Payment) (domain.Payment, error) {
	id, err := uuid.FromString(entity.CorrelationID)
	if err != nil {
		return domain.Payment{}, fmt.Errorf("非法的 correlationId %q: %w", entity.CorrelationID, err)
	}
	return domain.Payment{
		CorrelationID: id,
		Amount:        entity.Amount,
		RequestedAt:   entity.RequestedAt.UTC(),
	}, nil
}
