package ioc

import (
	"context"
	"fmt"
	"time"

	"gitee.com/flycash/payment-processor/internal/pkg/redis/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

// InitRedisClient 没有配置 REDIS_ADDR 时返回 nil，查询缓存退化为进程内缓存
func InitRedisClient(ctx context.Context, cfg Config, reg prometheus.Registerer) (*redis.Client, error) {
	if cfg.RedisAddr == "" {
		return nil, nil
	}
	cmd := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
	})
	cmd = metrics.WithMetrics(cmd, reg)

	const timeout = 3 * time.Second
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := cmd.Ping(pingCtx).Err(); err != nil {
		_ = cmd.Close()
		return nil, fmt.Errorf("连接 redis %s 失败: %w", cfg.RedisAddr, err)
	}
	return cmd, nil
}
