package ioc

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"gitee.com/flycash/payment-processor/internal/api/web"
	"gitee.com/flycash/payment-processor/internal/api/web/middleware/accesslog"
	"gitee.com/flycash/payment-processor/internal/api/web/middleware/auth"
	"gitee.com/flycash/payment-processor/internal/api/web/middleware/chaos"
	"gitee.com/flycash/payment-processor/internal/api/web/middleware/limit"
	"gitee.com/flycash/payment-processor/internal/api/web/middleware/observability"
	"gitee.com/flycash/payment-processor/internal/pkg/ratelimit"
	"gitee.com/flycash/payment-processor/internal/service/settings"
	"gitee.com/flycash/payment-processor/internal/service/summary"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	healthLimitKey    = "service-health"
	healthPermitLimit = 1
	healthQueueLimit  = 2
)

func InitSettingsStore(cfg Config) *settings.Store {
	return settings.NewStore(cfg.InitialToken)
}

func InitFeeRate(cfg Config) summary.FeeRate {
	return summary.FeeRate(cfg.TransactionFee)
}

func InitGinEngine(
	lifecycle context.Context,
	cfg Config,
	store *settings.Store,
	paymentHdl *web.PaymentHandler,
	adminHdl *web.AdminHandler,
	reg *prometheus.Registry,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		accesslog.NewBuilder().Build(),
		observability.New(reg).Build(),
	)
	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	limiter := ratelimit.NewFixedWindowLimiter(cfg.RateLimitWindow, healthPermitLimit, healthQueueLimit)
	paymentHdl.RegisterRoutes(engine,
		limit.NewBuilder(healthLimitKey, limiter, reg).Build(),
		chaos.Pipeline(store, lifecycle, reg))
	adminHdl.RegisterRoutes(engine, auth.NewBuilder(store).Build())
	return engine
}

func InitWebServer(cfg Config, engine *gin.Engine) *http.Server {
	return &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
