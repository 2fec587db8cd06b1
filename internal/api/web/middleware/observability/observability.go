package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Builder struct {
	// apiDurationHistogram tracks API response times
	apiDurationHistogram *prometheus.HistogramVec
}

// New creates a new Builder with initialized metrics
func New(reg prometheus.Registerer) *Builder {
	return &Builder{
		apiDurationHistogram: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_server_handling_seconds",
				Help:    "Histogram of response latency (seconds) of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

func (b *Builder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		startTime := time.Now()

		ctx.Next()

		// 未匹配的路由统一归到一个标签，避免路径参数撑爆基数
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		b.apiDurationHistogram.WithLabelValues(
			ctx.Request.Method,
			route,
			strconv.Itoa(ctx.Writer.Status()),
		).Observe(time.Since(startTime).Seconds())
	}
}
