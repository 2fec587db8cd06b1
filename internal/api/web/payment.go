package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gitee.com/flycash/payment-processor/internal/errs"
	"gitee.com/flycash/payment-processor/internal/service/payment"
	"gitee.com/flycash/payment-processor/internal/service/settings"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"github.com/gotomicro/ego/core/elog"
)

// PaymentHandler 对外的支付接口和健康检查
type PaymentHandler struct {
	svc    payment.Service
	store  *settings.Store
	logger *elog.Component
}

func NewPaymentHandler(svc payment.Service, store *settings.Store) *PaymentHandler {
	return &PaymentHandler{
		svc:    svc,
		store:  store,
		logger: elog.DefaultLogger,
	}
}

// RegisterRoutes healthGuard 只作用于健康检查，chaos 按顺序作用于写入接口
func (h *PaymentHandler) RegisterRoutes(server gin.IRouter, healthGuard gin.HandlerFunc, chaos []gin.HandlerFunc) {
	server.GET("/payments/service-health", healthGuard, h.Health)
	create := make([]gin.HandlerFunc, 0, len(chaos)+1)
	create = append(create, chaos...)
	create = append(create, h.Create)
	server.POST("/payments", create...)
	server.GET("/payments/:id", h.Lookup)
}

func (h *PaymentHandler) Health(ctx *gin.Context) {
	s := h.store.Get()
	code := http.StatusOK
	if s.Failure {
		code = http.StatusServiceUnavailable
	}
	ctx.JSON(code, HealthVO{
		Failing:         s.Failure,
		MinResponseTime: s.Delay,
	})
}

func (h *PaymentHandler) Create(ctx *gin.Context) {
	var req PaymentReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, MessageVO{Message: fmt.Sprintf("%s: %s", errs.ErrInvalidParameter, err)})
		return
	}
	if req.CorrelationID == uuid.Nil || req.RequestedAt.IsZero() {
		ctx.JSON(http.StatusBadRequest, MessageVO{Message: fmt.Sprintf("%s: correlationId 和 requestedAt 必填", errs.ErrInvalidParameter)})
		return
	}

	// 客户端超时断开不能打断写入，否则调用方无法判断记录是否落库
	err := h.svc.Record(context.WithoutCancel(ctx.Request.Context()), req.toDomain())
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, MessageVO{Message: msgPaymentProcessed})
	case errors.Is(err, errs.ErrPaymentDuplicate):
		msg := fmt.Sprintf("Payment could not be processed. CorrelationId already exists: %s. Error details: %s",
			req.CorrelationID, err)
		h.logger.Warn(msg)
		ctx.JSON(http.StatusUnprocessableEntity, MessageVO{Message: msg})
	default:
		h.logger.Error("写入支付记录失败",
			elog.String("correlationId", req.CorrelationID.String()),
			elog.FieldErr(err))
		ctx.JSON(http.StatusInternalServerError, MessageVO{Message: errs.InternalErrorMessage})
	}
}

func (h *PaymentHandler) Lookup(ctx *gin.Context) {
	// 不是合法的 UUID 就不可能存在
	id, err := uuid.FromString(ctx.Param("id"))
	if err != nil {
		ctx.Status(http.StatusNotFound)
		return
	}
	p, err := h.svc.Lookup(ctx.Request.Context(), id)
	switch {
	case err == nil:
		ctx.JSON(http.StatusOK, newPaymentVO(p))
	case errors.Is(err, errs.ErrPaymentNotFound):
		ctx.Status(http.StatusNotFound)
	default:
		h.logger.Error("查询支付记录失败",
			elog.String("correlationId", id.String()),
			elog.FieldErr(err))
		ctx.JSON(http.StatusInternalServerError, MessageVO{Message: errs.InternalErrorMessage})
	}
}
