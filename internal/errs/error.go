package errs

import (
	"errors"
)

// 定义统一的错误类型
var (
	ErrInvalidParameter = errors.New("参数错误")
	ErrUnauthorized     = errors.New("认证失败")

	ErrPaymentDuplicate = errors.New("支付记录 correlationId 冲突")
	ErrPaymentNotFound  = errors.New("支付记录不存在")
	ErrStorageFailure   = errors.New("支付记录存储失败")

	ErrRateLimited      = errors.New("请求被限流")
	ErrSimulatedFailure = errors.New("模拟故障")
)

// InternalErrorMessage 服务端错误统一返回的信息，存储失败和模拟故障共用，不暴露内部细节
const InternalErrorMessage = "internal server error"
