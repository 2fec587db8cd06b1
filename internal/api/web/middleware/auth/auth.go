package auth

import (
	"crypto/subtle"
	"net/http"

	"gitee.com/flycash/payment-processor/internal/errs"
	"gitee.com/flycash/payment-processor/internal/service/settings"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

// HeaderToken 管理接口携带 token 的请求头
const HeaderToken = "X-Rinha-Token"

// Builder 管理接口鉴权中间件构建器，每次请求都和当前 token 比较
type Builder struct {
	store  *settings.Store
	logger *elog.Component
}

func NewBuilder(store *settings.Store) *Builder {
	return &Builder{
		store:  store,
		logger: elog.DefaultLogger,
	}
}

func (b *Builder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := ctx.GetHeader(HeaderToken)
		if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(b.store.Token())) != 1 {
			b.logger.Warn("管理接口鉴权失败",
				elog.String("path", ctx.FullPath()),
				elog.String("ip", ctx.ClientIP()),
				elog.FieldErr(errs.ErrUnauthorized))
			_ = ctx.Error(errs.ErrUnauthorized)
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			return
		}
		ctx.Next()
	}
}
