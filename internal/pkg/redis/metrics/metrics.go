package metrics

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

const (
	successStatus = "success"
	errorStatus   = "error"
)

// Hook 实现了 redis.Hook 接口，为所有 Redis 操作添加指标收集
type Hook struct {
	// Redis命令计数器
	commandCounter *prometheus.CounterVec
	// Redis命令执行时间
	commandDuration *prometheus.HistogramVec
	// Redis管道命令计数器
	pipelineCounter *prometheus.CounterVec
	// Redis连接计数器
	connectionCounter *prometheus.CounterVec
}

// NewMetricsHook 创建一个新的 Redis 指标收集钩子，指标注册到 reg
func NewMetricsHook(reg prometheus.Registerer) *Hook {
	factory := promauto.With(reg)
	return &Hook{
		commandCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "redis_commands_total",
				Help: "Total number of Redis commands executed",
			},
			[]string{"command", "status"},
		),
		commandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "redis_command_duration_seconds",
				Help:    "Redis command execution time in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 10),
			},
			[]string{"command"},
		),
		pipelineCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "redis_pipeline_commands_total",
				Help: "Total number of Redis pipeline executions",
			},
			[]string{"status"},
		),
		connectionCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "redis_connections_total",
				Help: "Total number of Redis connections created",
			},
			[]string{"status"},
		),
	}
}

// ProcessHook 处理Redis命令的指标收集
func (h *Hook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		startTime := time.Now()
		err := next(ctx, cmd)
		h.commandDuration.WithLabelValues(cmd.Name()).Observe(time.Since(startTime).Seconds())
		// redis.Nil 是缓存未命中，不算失败
		h.commandCounter.WithLabelValues(cmd.Name(), status(err)).Inc()
		return err
	}
}

// ProcessPipelineHook 处理Redis管道命令的指标收集
func (h *Hook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		st := status(err)
		for _, cmd := range cmds {
			if status(cmd.Err()) == errorStatus {
				st = errorStatus
				break
			}
		}
		h.pipelineCounter.WithLabelValues(st).Inc()
		return err
	}
}

// DialHook 处理Redis连接的指标收集
func (h *Hook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		conn, err := next(ctx, network, addr)
		h.connectionCounter.WithLabelValues(status(err)).Inc()
		return conn, err
	}
}

func status(err error) string {
	if err != nil && !errors.Is(err, redis.Nil) {
		return errorStatus
	}
	return successStatus
}

// WithMetrics 为Redis客户端添加指标收集功能
func WithMetrics(client *redis.Client, reg prometheus.Registerer) *redis.Client {
	client.AddHook(NewMetricsHook(reg))
	return client
}
