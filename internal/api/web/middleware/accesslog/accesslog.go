package accesslog

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

type Builder struct {
	logger *elog.Component
}

func NewBuilder() *Builder {
	return &Builder{
		logger: elog.DefaultLogger,
	}
}

func (b *Builder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		// 中间件拒绝请求时会把原因挂在 ctx.Errors 上
		var reason error
		if last := ctx.Errors.Last(); last != nil {
			reason = last.Err
		}
		b.logger.Debug("access",
			elog.String("method", ctx.Request.Method),
			elog.String("path", ctx.Request.URL.Path),
			elog.Int("status", ctx.Writer.Status()),
			elog.Any("latency", time.Since(start)),
			elog.FieldErr(reason))
	}
}
