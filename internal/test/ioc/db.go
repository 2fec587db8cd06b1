package ioc

import (
	"context"
	"time"

	prodioc "gitee.com/flycash/payment-processor/internal/ioc"
	"github.com/ego-component/egorm"
	"github.com/shopspring/decimal"
)

const dsn = "root:root@tcp(localhost:13316)/payment?charset=utf8mb4&collation=utf8mb4_general_ci&timeout=1s&readTimeout=3s&writeTimeout=3s"

// TestConfig 本地 docker compose 环境的配置
func TestConfig() prodioc.Config {
	return prodioc.Config{
		InitialToken:       "123",
		DBConnectionString: dsn,
		TransactionFee:     decimal.RequireFromString("0.05"),
		RateLimitWindow:    time.Second,
		Port:               8080,
		CacheTTL:           time.Minute,
		GinMode:            "test",
	}
}

// InitDBAndTables 等待数据库就绪并建表
func InitDBAndTables() *egorm.Component {
	db, err := prodioc.InitDB(context.Background(), TestConfig())
	if err != nil {
		panic(err)
	}
	return db
}
