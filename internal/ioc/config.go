package ioc

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config 启动参数，全部来自环境变量，启动之后不再变化
type Config struct {
	InitialToken       string
	DBConnectionString string
	TransactionFee     decimal.Decimal
	RateLimitWindow    time.Duration
	Port               int
	RedisAddr          string
	CacheTTL           time.Duration
	GinMode            string
}

func InitConfig() (Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("INITIAL_TOKEN", "123")
	v.SetDefault("TRANSACTION_FEE", "0.05")
	v.SetDefault("RATE_LIMIT_SECONDS", 5)
	v.SetDefault("PORT", 8080)
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("GIN_MODE", "release")

	cfg := Config{
		InitialToken:       v.GetString("INITIAL_TOKEN"),
		DBConnectionString: v.GetString("DB_CONNECTION_STRING"),
		Port:               v.GetInt("PORT"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		GinMode:            v.GetString("GIN_MODE"),
	}
	if cfg.DBConnectionString == "" {
		return Config{}, errors.New("没有设置 DB_CONNECTION_STRING")
	}
	if cfg.InitialToken == "" {
		return Config{}, errors.New("INITIAL_TOKEN 不能为空")
	}

	fee, err := decimal.NewFromString(v.GetString("TRANSACTION_FEE"))
	if err != nil {
		return Config{}, fmt.Errorf("TRANSACTION_FEE 不是合法的小数: %w", err)
	}
	cfg.TransactionFee = fee

	seconds := v.GetInt("RATE_LIMIT_SECONDS")
	if seconds <= 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT_SECONDS 必须是正整数，当前值 %q", v.GetString("RATE_LIMIT_SECONDS"))
	}
	cfg.RateLimitWindow = time.Duration(seconds) * time.Second

	ttl, err := time.ParseDuration(v.GetString("CACHE_TTL"))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL 不是合法的时长: %q", v.GetString("CACHE_TTL"))
	}
	cfg.CacheTTL = ttl

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("PORT 不合法: %q", v.GetString("PORT"))
	}
	return cfg, nil
}
