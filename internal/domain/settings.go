package domain

import (
	"math"
	"time"
)

const (
	SettingToken   = "token"
	SettingDelay   = "delay"
	SettingFailure = "failure"
)

// Settings 运行时配置的快照，三个字段之间没有原子性保证
type Settings struct {
	Token   string
	Delay   int64 // 毫秒
	Failure bool
}

// MaxDelayMillis 模拟延迟的上限（毫秒），再大换算成 time.Duration 会溢出
const MaxDelayMillis = int64(math.MaxInt64 / int64(time.Millisecond))

// Change 记录一次配置修改前后的值
type Change[T any] struct {
	Config string
	Was    T
	Is     T
}
