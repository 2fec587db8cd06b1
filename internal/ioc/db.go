package ioc

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gitee.com/flycash/payment-processor/internal/repository/dao"
	"github.com/ecodeclub/ekit/retry"
	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"github.com/gotomicro/ego/core/elog"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxOpenConns    = 50
	maxIdleConns    = 10
	connMaxLifetime = 5 * time.Minute
)

// NormalizeDSN 时间统一按 UTC 存取
func NormalizeDSN(dsn string) (string, error) {
	c, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("DB_CONNECTION_STRING 不是合法的 MySQL DSN: %w", err)
	}
	c.ParseTime = true
	c.Loc = time.UTC
	return c.FormatDSN(), nil
}

// WaitForDBSetup 启动时等待数据库可连接，指数退避重试
func WaitForDBSetup(ctx context.Context, dsn string) error {
	sqlDB, err := sql.Open("mysql", dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	const maxInterval = 10 * time.Second
	const maxRetries = 10
	strategy, err := retry.NewExponentialBackoffRetryStrategy(time.Second, maxInterval, maxRetries)
	if err != nil {
		return err
	}

	const timeout = 5 * time.Second
	for {
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		err = sqlDB.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		next, ok := strategy.Next()
		if !ok {
			return fmt.Errorf("等待数据库就绪失败: %w", err)
		}
		elog.DefaultLogger.Warn("数据库尚未就绪，稍后重试", elog.FieldErr(err), elog.Any("after", next))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(next):
		}
	}
}

func InitDB(ctx context.Context, cfg Config) (*egorm.Component, error) {
	dsn, err := NormalizeDSN(cfg.DBConnectionString)
	if err != nil {
		return nil, err
	}
	if err = WaitForDBSetup(ctx, dsn); err != nil {
		return nil, err
	}
	db, err := gorm.Open(gormmysql.Open(dsn), &gorm.Config{
		// 每次只有一条语句，不需要默认事务
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	if err = dao.InitTables(db); err != nil {
		return nil, fmt.Errorf("初始化表结构失败: %w", err)
	}
	return db, nil
}
