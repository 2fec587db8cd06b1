package chaos

import (
	"context"
	"net/http"
	"time"

	"gitee.com/flycash/payment-processor/internal/errs"
	"gitee.com/flycash/payment-processor/internal/service/settings"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline 写入接口的故障注入链，固定先延迟后故障
func Pipeline(store *settings.Store, lifecycle context.Context, reg prometheus.Registerer) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		NewDelayBuilder(store, lifecycle, reg).Build(),
		NewFailureBuilder(store, reg).Build(),
	}
}

// DelayBuilder 模拟延迟。
// 等待只会被进程退出打断，客户端断开不会打断，保证处理函数最多写一次响应
type DelayBuilder struct {
	store     *settings.Store
	lifecycle context.Context

	delayed     prometheus.Counter
	interrupted prometheus.Counter

	logger *elog.Component
}

func NewDelayBuilder(store *settings.Store, lifecycle context.Context, reg prometheus.Registerer) *DelayBuilder {
	factory := promauto.With(reg)
	return &DelayBuilder{
		store:     store,
		lifecycle: lifecycle,
		delayed: factory.NewCounter(prometheus.CounterOpts{
			Name: "payment_chaos_delayed_total",
			Help: "Number of payment requests delayed by the simulated latency.",
		}),
		interrupted: factory.NewCounter(prometheus.CounterOpts{
			Name: "payment_chaos_delay_interrupted_total",
			Help: "Number of simulated delays interrupted by shutdown.",
		}),
		logger: elog.DefaultLogger,
	}
}

func (b *DelayBuilder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		// 每次请求都读最新的配置
		d := b.store.Delay()
		if d <= 0 {
			ctx.Next()
			return
		}
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			b.delayed.Inc()
		case <-b.lifecycle.Done():
			b.interrupted.Inc()
			b.logger.Warn("服务退出，放弃模拟延迟中的请求",
				elog.String("path", ctx.FullPath()),
				elog.Any("delay", d))
			ctx.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"message": errs.InternalErrorMessage})
			return
		}
		ctx.Next()
	}
}

// FailureBuilder 模拟故障，打开时直接返回 500，响应和真实的存储失败一致
type FailureBuilder struct {
	store  *settings.Store
	failed prometheus.Counter
}

func NewFailureBuilder(store *settings.Store, reg prometheus.Registerer) *FailureBuilder {
	return &FailureBuilder{
		store: store,
		failed: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "payment_chaos_failed_total",
			Help: "Number of payment requests failed by the simulated failure.",
		}),
	}
}

func (b *FailureBuilder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if b.store.Failure() {
			b.failed.Inc()
			_ = ctx.Error(errs.ErrSimulatedFailure)
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": errs.InternalErrorMessage})
			return
		}
		ctx.Next()
	}
}
