package ratelimit

import (
	"context"
	"time"
)

type Limiter interface {
	// Limit 判断是否应该限流。
	// 没有许可但队列未满时会阻塞排队，直到拿到许可或者 ctx 被取消
	Limit(ctx context.Context, key string) (bool, error)
	// Window 窗口长度，用于告诉调用方多久之后重试
	Window() time.Duration
}
