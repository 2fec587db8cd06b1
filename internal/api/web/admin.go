package web

import (
	"fmt"
	"net/http"
	"time"

	"gitee.com/flycash/payment-processor/internal/domain"
	"gitee.com/flycash/payment-processor/internal/errs"
	"gitee.com/flycash/payment-processor/internal/service/payment"
	"gitee.com/flycash/payment-processor/internal/service/settings"
	"gitee.com/flycash/payment-processor/internal/service/summary"
	"github.com/ecodeclub/ekit"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

// AdminHandler 管理接口，全部要求携带 token
type AdminHandler struct {
	paymentSvc payment.Service
	summarySvc summary.Service
	store      *settings.Store
	logger     *elog.Component
}

func NewAdminHandler(paymentSvc payment.Service, summarySvc summary.Service, store *settings.Store) *AdminHandler {
	return &AdminHandler{
		paymentSvc: paymentSvc,
		summarySvc: summarySvc,
		store:      store,
		logger:     elog.DefaultLogger,
	}
}

func (h *AdminHandler) RegisterRoutes(server gin.IRouter, auth gin.HandlerFunc) {
	g := server.Group("/admin", auth)
	g.GET("/payments-summary", h.Summary)
	g.PUT("/configurations/token", h.SetToken)
	g.PUT("/configurations/delay", h.SetDelay)
	g.PUT("/configurations/failure", h.SetFailure)
	g.POST("/purge-payments", h.Purge)
}

func (h *AdminHandler) Summary(ctx *gin.Context) {
	from, err := h.parseBound(ctx, "from")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}
	to, err := h.parseBound(ctx, "to")
	if err != nil {
		h.badRequest(ctx, err)
		return
	}
	s, err := h.summarySvc.Summarize(ctx.Request.Context(), from, to)
	if err != nil {
		h.logger.Error("统计支付记录失败", elog.FieldErr(err))
		ctx.JSON(http.StatusInternalServerError, MessageVO{Message: errs.InternalErrorMessage})
		return
	}
	ctx.JSON(http.StatusOK, newSummaryVO(s))
}

// parseBound 参数缺失时返回 nil
func (h *AdminHandler) parseBound(ctx *gin.Context, name string) (*time.Time, error) {
	raw := ctx.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s 不是合法的 RFC3339 时间", errs.ErrInvalidParameter, name)
	}
	return ekit.ToPtr(t.UTC()), nil
}

func (h *AdminHandler) SetToken(ctx *gin.Context) {
	var req TokenReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.badRequest(ctx, err)
		return
	}
	if req.Token == nil || *req.Token == "" {
		h.badRequest(ctx, fmt.Errorf("%w: token 不能为空", errs.ErrInvalidParameter))
		return
	}
	change := h.store.SetToken(*req.Token)
	h.logger.Info("修改 token")
	ctx.JSON(http.StatusOK, newChangeVO(change))
}

func (h *AdminHandler) SetDelay(ctx *gin.Context) {
	var req DelayReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.badRequest(ctx, err)
		return
	}
	if req.Delay == nil || *req.Delay < 0 {
		h.badRequest(ctx, fmt.Errorf("%w: delay 必须是非负整数", errs.ErrInvalidParameter))
		return
	}
	if *req.Delay > domain.MaxDelayMillis {
		h.badRequest(ctx, fmt.Errorf("%w: delay 不能超过 %d", errs.ErrInvalidParameter, domain.MaxDelayMillis))
		return
	}
	change := h.store.SetDelay(*req.Delay)
	h.logger.Info("修改模拟延迟", elog.Int64("was", change.Was), elog.Int64("is", change.Is))
	ctx.JSON(http.StatusOK, newChangeVO(change))
}

func (h *AdminHandler) SetFailure(ctx *gin.Context) {
	var req FailureReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		h.badRequest(ctx, err)
		return
	}
	if req.Failure == nil {
		h.badRequest(ctx, fmt.Errorf("%w: failure 必填", errs.ErrInvalidParameter))
		return
	}
	change := h.store.SetFailure(*req.Failure)
	h.logger.Info("修改模拟故障", elog.Any("was", change.Was), elog.Any("is", change.Is))
	ctx.JSON(http.StatusOK, newChangeVO(change))
}

func (h *AdminHandler) Purge(ctx *gin.Context) {
	if err := h.paymentSvc.Purge(ctx.Request.Context()); err != nil {
		h.logger.Error("清空支付记录失败", elog.FieldErr(err))
		ctx.JSON(http.StatusInternalServerError, MessageVO{Message: errs.InternalErrorMessage})
		return
	}
	h.logger.Warn("已清空全部支付记录")
	ctx.JSON(http.StatusOK, MessageVO{Message: msgPaymentsPurged})
}

func (h *AdminHandler) badRequest(ctx *gin.Context, err error) {
	ctx.JSON(http.StatusBadRequest, MessageVO{Message: err.Error()})
}
