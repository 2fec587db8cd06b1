package ratelimit

import (
	"container/list"
	"context"
	"sync"
	"time"
)

var _ Limiter = (*FixedWindowLimiter)(nil)

// FixedWindowLimiter 固定窗口限流器，每个窗口最多放行 permitLimit 个请求，
// 超出的请求最多 queueLimit 个按先来先服务排队等下一个窗口，再多就直接拒绝。
type FixedWindowLimiter struct {
	mu          sync.Mutex
	window      time.Duration
	permitLimit int
	queueLimit  int
	windows     map[string]*fixedWindow
}

type fixedWindow struct {
	start   time.Time
	permits int
	// 元素类型是 *waiter
	queue *list.List
	timer *time.Timer
}

type waiter struct {
	ready   chan struct{}
	granted bool
}

// NewFixedWindowLimiter 创建一个固定窗口限流器
func NewFixedWindowLimiter(window time.Duration, permitLimit, queueLimit int) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		window:      window,
		permitLimit: permitLimit,
		queueLimit:  queueLimit,
		windows:     make(map[string]*fixedWindow),
	}
}

func (l *FixedWindowLimiter) Window() time.Duration {
	return l.window
}

func (l *FixedWindowLimiter) Limit(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	w := l.getWindow(key)
	now := time.Now()
	l.refresh(w, now)

	// 有人在排队时新请求不能插队
	if w.permits > 0 && w.queue.Len() == 0 {
		w.permits--
		l.mu.Unlock()
		return false, nil
	}
	if w.queue.Len() >= l.queueLimit {
		l.mu.Unlock()
		return true, nil
	}

	wt := &waiter{ready: make(chan struct{})}
	elem := w.queue.PushBack(wt)
	l.arm(w, now)
	l.mu.Unlock()

	select {
	case <-wt.ready:
		return false, nil
	case <-ctx.Done():
		l.mu.Lock()
		defer l.mu.Unlock()
		if wt.granted {
			// 取消和放行同时发生，许可已经扣掉了
			return false, nil
		}
		w.queue.Remove(elem)
		return false, ctx.Err()
	}
}

func (l *FixedWindowLimiter) getWindow(key string) *fixedWindow {
	w, ok := l.windows[key]
	if !ok {
		w = &fixedWindow{queue: list.New()}
		l.windows[key] = w
	}
	return w
}

// refresh 窗口到期后补满许可，并优先放行排队中的请求。调用方必须持有锁
func (l *FixedWindowLimiter) refresh(w *fixedWindow, now time.Time) {
	if !w.start.IsZero() && now.Sub(w.start) < l.window {
		return
	}
	w.start = now
	w.permits = l.permitLimit
	for w.permits > 0 && w.queue.Len() > 0 {
		front := w.queue.Front()
		wt := w.queue.Remove(front).(*waiter)
		wt.granted = true
		close(wt.ready)
		w.permits--
	}
}

// arm 有请求排队时启动定时器，保证没有新请求进来也能在窗口切换时放行队列。调用方必须持有锁
func (l *FixedWindowLimiter) arm(w *fixedWindow, now time.Time) {
	if w.timer != nil || w.queue.Len() == 0 {
		return
	}
	d := w.start.Add(l.window).Sub(now)
	w.timer = time.AfterFunc(d, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		w.timer = nil
		at := time.Now()
		l.refresh(w, at)
		l.arm(w, at)
	})
}
