package admin

import (
	"strings"

	"github.com/bazaar-next/internal/http/response"
	"github.com/bazaar-next/internal/logger"
	"github.com/bazaar-next/internal/models"
	"github.com/bazaar-next/internal/queue"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// PaymentSucceededEventRequest 支付成功事件
type PaymentSucceededEventRequest struct {
	UserID      uint   `json:"user_id" binding:"required"`
	OrderID     uint   `json:"order_id" binding:"required"`
	OrderAmount string `json:"order_amount" binding:"required"`
}

// OrderRefundedEventRequest 订单退款事件
type OrderRefundedEventRequest struct {
	UserID  uint   `json:"user_id" binding:"required"`
	OrderID uint   `json:"order_id" binding:"required"`
	Amount  string `json:"amount" binding:"required"`
}

// NotifyPaymentSucceeded 支付成功事件入站：入队返现任务，队列关闭时同步入账。
// 返现凭引用幂等，事件重放不会重复加款。
func (h *Handler) NotifyPaymentSucceeded(c *gin.Context) {
	var req PaymentSucceededEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.OrderAmount))
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	// 订单系统保证每单只投递一次支付成功事件
	if err := h.UserRepo.IncrementOrderCount(req.UserID); err != nil {
		logger.Warnw("user_order_count_increment_failed", "user_id", req.UserID, "order_id", req.OrderID, "error", err)
	}

	if h.QueueClient != nil && h.QueueClient.Enabled() {
		if err := h.QueueClient.EnqueueWalletCashback(queue.WalletCashbackPayload{
			UserID:      req.UserID,
			OrderID:     req.OrderID,
			OrderAmount: amount.String(),
		}); err != nil {
			logger.Errorw("wallet_cashback_enqueue_failed", "order_id", req.OrderID, "error", err)
			respondError(c, response.CodeInternal, "error.queue_unavailable", err)
			return
		}
		response.Success(c, gin.H{"enqueued": true})
		return
	}

	txn, err := h.WalletService.CreditCashback(req.UserID, req.OrderID, models.NewMoneyFromDecimal(amount))
	if err != nil {
		respondWalletOperationError(c, err)
		return
	}
	response.Success(c, gin.H{
		"enqueued":    false,
		"transaction": txn,
	})
}

// NotifyOrderRefunded 订单退款事件入站：入队退款任务，队列关闭时同步入账。
func (h *Handler) NotifyOrderRefunded(c *gin.Context) {
	var req OrderRefundedEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if h.QueueClient != nil && h.QueueClient.Enabled() {
		if err := h.QueueClient.EnqueueWalletRefund(queue.WalletRefundPayload{
			UserID:  req.UserID,
			OrderID: req.OrderID,
			Amount:  amount.String(),
		}); err != nil {
			logger.Errorw("wallet_refund_enqueue_failed", "order_id", req.OrderID, "error", err)
			respondError(c, response.CodeInternal, "error.queue_unavailable", err)
			return
		}
		response.Success(c, gin.H{"enqueued": true})
		return
	}

	txn, err := h.WalletService.CreditRefund(req.UserID, req.OrderID, models.NewMoneyFromDecimal(amount))
	if err != nil {
		respondWalletOperationError(c, err)
		return
	}
	response.Success(c, gin.H{
		"enqueued":    false,
		"transaction": txn,
	})
}
