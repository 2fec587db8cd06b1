package limit

import (
	"net/http"
	"strconv"

	"gitee.com/flycash/payment-processor/internal/errs"
	"gitee.com/flycash/payment-processor/internal/pkg/ratelimit"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const rejectedBody = "Calm down, bitch. Try again later."

// Builder 限流中间件构建器，所有请求共用同一个限流 key
type Builder struct {
	limitedKey string
	limiter    ratelimit.Limiter
	rejected   prometheus.Counter

	logger *elog.Component
}

func NewBuilder(limitedKey string, limiter ratelimit.Limiter, reg prometheus.Registerer) *Builder {
	return &Builder{
		limitedKey: limitedKey,
		limiter:    limiter,
		rejected: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name:        "http_rate_limited_total",
			Help:        "Number of requests rejected by the rate limiter.",
			ConstLabels: prometheus.Labels{"key": limitedKey},
		}),
		logger: elog.DefaultLogger,
	}
}

func (b *Builder) Build() gin.HandlerFunc {
	retryAfter := strconv.Itoa(int(b.limiter.Window().Seconds()))
	return func(ctx *gin.Context) {
		limited, err := b.limiter.Limit(ctx.Request.Context(), b.limitedKey)
		if err != nil {
			// 排队期间请求被取消
			b.logger.Warn("排队中的请求被取消", elog.String("key", b.limitedKey), elog.FieldErr(err))
			ctx.AbortWithStatus(http.StatusServiceUnavailable)
			return
		}
		if limited {
			b.rejected.Inc()
			_ = ctx.Error(errs.ErrRateLimited)
			ctx.Header("Retry-After", retryAfter)
			ctx.Abort()
			ctx.String(http.StatusTooManyRequests, rejectedBody)
			return
		}
		ctx.Next()
	}
}
