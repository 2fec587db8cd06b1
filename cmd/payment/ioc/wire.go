//go:build wireinject

package ioc

import (
	"context"

	"gitee.com/flycash/payment-processor/internal/api/web"
	"gitee.com/flycash/payment-processor/internal/ioc"
	"gitee.com/flycash/payment-processor/internal/repository"
	"gitee.com/flycash/payment-processor/internal/repository/dao"
	"gitee.com/flycash/payment-processor/internal/service/payment"
	"gitee.com/flycash/payment-processor/internal/service/summary"
	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	BaseSet = wire.NewSet(
		ioc.InitConfig,
		ioc.InitRegistry,
		wire.Bind(new(prometheus.Registerer), new(*prometheus.Registry)),
		ioc.InitDB,
		ioc.InitRedisClient,
		ioc.InitPaymentCache,
		ioc.InitSettingsStore,
		ioc.InitFeeRate,
	)
	paymentSvcSet = wire.NewSet(
		payment.NewService,
		repository.NewPaymentRepository,
		dao.NewPaymentDAO,
	)
	summarySvcSet = wire.NewSet(
		summary.NewService,
	)
	webSet = wire.NewSet(
		web.NewPaymentHandler,
		web.NewAdminHandler,
		ioc.InitGinEngine,
		ioc.InitWebServer,
	)
)

// InitApp ctx 是进程的生命周期，收到退出信号时取消
func InitApp(ctx context.Context) (*ioc.App, error) {
	wire.Build(
		BaseSet,
		paymentSvcSet,
		summarySvcSet,
		webSet,
		wire.Struct(new(ioc.App), "*"),
	)
	return nil, nil
}
