package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gitee.com/flycash/payment-processor/internal/errs"
	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=./payment.go -destination=./mocks/payment.mock.go -package=daomocks PaymentDAO
type PaymentDAO interface {
	// Create 插入一条支付记录，唯一索引冲突时返回 errs.ErrPaymentDuplicate
	Create(ctx context.Context, data Payment) (Payment, error)
	// FindByCorrelationID 根据 correlationId 查询
	FindByCorrelationID(ctx context.Context, correlationID string) (Payment, error)
	// Aggregate 统计 [from, to] 内的请求数和金额，from 或 to 为 nil 时统计全部
	Aggregate(ctx context.Context, from, to *time.Time) (Aggregate, error)
	// Truncate 清空表并重置自增ID
	Truncate(ctx context.Context) error
}

// Payment 支付记录表
type Payment struct {
	ID            int64           `gorm:"primaryKey;autoIncrement;comment:'自增ID，清空表时重置'"`
	CorrelationID string          `gorm:"type:CHAR(36);NOT NULL;uniqueIndex:uk_correlation_id;comment:'调用方提供的唯一标识'"`
	Amount        decimal.Decimal `gorm:"type:DECIMAL(18,2);NOT NULL;comment:'金额，两位小数'"`
	RequestedAt   time.Time       `gorm:"type:DATETIME(6);NOT NULL;index:idx_requested_at;comment:'调用方提供的请求时间'"`
	// 服务端写入时间，毫秒数，仅用于排查问题
	Ctime int64
}

// TableName 重命名表
func (Payment) TableName() string {
	return "payments"
}

// Aggregate 汇总查询的结果行
type Aggregate struct {
	TotalRequests int64
	TotalAmount   decimal.Decimal
}

type paymentDAO struct {
	db *egorm.Component
}

// NewPaymentDAO 创建支付记录DAO实例
func NewPaymentDAO(db *egorm.Component) PaymentDAO {
	return &paymentDAO{
		db: db,
	}
}

func (d *paymentDAO) Create(ctx context.Context, data Payment) (Payment, error) {
	data.Ctime = time.Now().UnixMilli()
	if err := d.db.WithContext(ctx).Create(&data).Error; err != nil {
		if d.isUniqueConstraintError(err) {
			return Payment{}, fmt.Errorf("%w: correlationId=%s, 原因: %w", errs.ErrPaymentDuplicate, data.CorrelationID, err)
		}
		return Payment{}, err
	}
	return data, nil
}

// isUniqueConstraintError 检查是否是唯一索引冲突错误
func (d *paymentDAO) isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	me := new(mysql.MySQLError)
	if ok := errors.As(err, &me); ok {
		const uniqueIndexErrNo uint16 = 1062
		return me.Number == uniqueIndexErrNo
	}
	return false
}

func (d *paymentDAO) FindByCorrelationID(ctx context.Context, correlationID string) (Payment, error) {
	var p Payment
	err := d.db.WithContext(ctx).Where("correlation_id = ?", correlationID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Payment{}, fmt.Errorf("%w: correlationId=%s", errs.ErrPaymentNotFound, correlationID)
		}
		return Payment{}, err
	}
	return p, nil
}

func (d *paymentDAO) Aggregate(ctx context.Context, from, to *time.Time) (Aggregate, error) {
	query := d.db.WithContext(ctx).Model(&Payment{}).
		Select("COUNT(`id`) AS total_requests, COALESCE(SUM(`amount`), 0) AS total_amount")
	// 等价于 requested_at BETWEEN from AND to OR from IS NULL OR to IS NULL，
	// 只要缺一个边界两边都不限制
	if from != nil && to != nil {
		query = query.Where("`requested_at` BETWEEN ? AND ?", *from, *to)
	}
	var res Aggregate
	err := query.Scan(&res).Error
	return res, err
}

func (d *paymentDAO) Truncate(ctx context.Context) error {
	// MySQL 的 TRUNCATE 会同时重置 AUTO_INCREMENT
	return d.db.WithContext(ctx).Exec("TRUNCATE TABLE `payments`").Error
}
