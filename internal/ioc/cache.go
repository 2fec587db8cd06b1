package ioc

import (
	"gitee.com/flycash/payment-processor/internal/repository/cache"
	"gitee.com/flycash/payment-processor/internal/repository/cache/local"
	rediscache "gitee.com/flycash/payment-processor/internal/repository/cache/redis"
	"github.com/gotomicro/ego/core/elog"
	"github.com/redis/go-redis/v9"
)

// InitPaymentCache 多实例部署时必须配置 redis，否则清空记录后其他实例的本地缓存还能查到旧记录
func InitPaymentCache(cfg Config, rdb *redis.Client) cache.PaymentCache {
	if rdb == nil {
		elog.DefaultLogger.Info("使用进程内查询缓存", elog.Any("ttl", cfg.CacheTTL))
		return local.NewDefaultPaymentCache(cfg.CacheTTL)
	}
	elog.DefaultLogger.Info("使用 redis 查询缓存", elog.String("addr", cfg.RedisAddr), elog.Any("ttl", cfg.CacheTTL))
	return rediscache.NewPaymentCache(rdb, cfg.CacheTTL)
}
