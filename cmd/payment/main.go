package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"gitee.com/flycash/payment-processor/cmd/payment/ioc"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// 收到信号后取消，模拟延迟中的请求会立刻结束
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := ioc.InitApp(ctx)
	if err != nil {
		elog.Panic("startup", elog.FieldErr(err))
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(app.Serve)
	eg.Go(func() error {
		<-egCtx.Done()
		elog.DefaultLogger.Info("开始关闭服务")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return app.Close(shutdownCtx)
	})
	if err = eg.Wait(); err != nil {
		elog.Error("服务异常退出", elog.FieldErr(err))
	}
}
