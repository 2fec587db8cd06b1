package ioc

import (
	"context"
	"errors"
	"net/http"

	"github.com/ego-component/egorm"
	"github.com/gotomicro/ego/core/elog"
	"github.com/hashicorp/go-multierror"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Server *http.Server
	DB     *egorm.Component
	// 没有配置 redis 时为 nil
	Redis *redis.Client
}

// Serve 阻塞直到服务关闭，正常关闭时返回 nil
func (a *App) Serve() error {
	elog.DefaultLogger.Info("启动 HTTP 服务", elog.String("addr", a.Server.Addr))
	if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close 先等待处理中的请求结束，再关闭数据库和 redis
func (a *App) Close(ctx context.Context) error {
	var result *multierror.Error
	if err := a.Server.Shutdown(ctx); err != nil {
		result = multierror.Append(result, err)
	}
	if a.DB != nil {
		if sqlDB, err := a.DB.DB(); err != nil {
			result = multierror.Append(result, err)
		} else if err = sqlDB.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
