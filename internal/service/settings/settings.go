package settings

import (
	"sync/atomic"
	"time"

	"gitee.com/flycash/payment-processor/internal/domain"
)

// Store 进程级的运行时配置。
// 每个字段各自原子更新，字段之间不保证隔离；
// 请求在执行的那一刻读到什么就是什么，和管理接口的并发修改之间没有先后保证。
type Store struct {
	token   atomic.Pointer[string]
	delay   atomic.Int64
	failure atomic.Bool
}

// NewStore 创建运行时配置，delay 为 0，failure 为 false
func NewStore(initialToken string) *Store {
	s := &Store{}
	s.token.Store(&initialToken)
	return s
}

// Get 返回三个字段的快照
func (s *Store) Get() domain.Settings {
	return domain.Settings{
		Token:   s.Token(),
		Delay:   s.delay.Load(),
		Failure: s.failure.Load(),
	}
}

func (s *Store) Token() string {
	return *s.token.Load()
}

func (s *Store) Delay() time.Duration {
	return time.Duration(s.delay.Load()) * time.Millisecond
}

func (s *Store) Failure() bool {
	return s.failure.Load()
}

func (s *Store) SetToken(v string) domain.Change[string] {
	was := s.token.Swap(&v)
	return domain.Change[string]{Config: domain.SettingToken, Was: *was, Is: v}
}

// SetDelay 设置模拟延迟（毫秒），负数按 0 处理，超过 domain.MaxDelayMillis 按上限处理
func (s *Store) SetDelay(ms int64) domain.Change[int64] {
	ms = max(0, min(ms, domain.MaxDelayMillis))
	was := s.delay.Swap(ms)
	return domain.Change[int64]{Config: domain.SettingDelay, Was: was, Is: ms}
}

func (s *Store) SetFailure(v bool) domain.Change[bool] {
	was := s.failure.Swap(v)
	return domain.Change[bool]{Config: domain.SettingFailure, Was: was, Is: v}
}
