package admin

import (
	"errors"
	"strings"

	"github.com/bazaar-next/internal/http/response"
	"github.com/bazaar-next/internal/models"
	"github.com/bazaar-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CommitCouponRedemptionRequest 核销优惠券请求（下单链路回调）
type CommitCouponRedemptionRequest struct {
	UserID   uint   `json:"user_id" binding:"required"`
	OrderID  uint   `json:"order_id" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Discount string `json:"discount" binding:"required"`
}

// CommitCouponRedemption 核销优惠券使用额度
func (h *Handler) CommitCouponRedemption(c *gin.Context) {
	var req CommitCouponRedemptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	discount, err := decimal.NewFromString(strings.TrimSpace(req.Discount))
	if err != nil || discount.IsNegative() {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	usage, err := h.CouponService.CommitRedemption(service.CommitRedemptionInput{
		UserID:   req.UserID,
		OrderID:  req.OrderID,
		Code:     req.Code,
		Discount: models.NewMoneyFromDecimal(discount),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponInvalid):
			respondError(c, response.CodeBadRequest, "error.coupon_invalid", nil)
		case errors.Is(err, service.ErrCouponNotFound):
			respondError(c, response.CodeNotFound, "error.coupon_not_found", nil)
		case errors.Is(err, service.ErrCouponPerUserLimit):
			respondError(c, response.CodeBadRequest, "error.coupon_per_user_limit_reached", nil)
		case errors.Is(err, service.ErrCouponUsageLimit):
			respondError(c, response.CodeBadRequest, "error.coupon_usage_limit_reached", nil)
		default:
			respondError(c, response.CodeInternal, "error.coupon_redeem_failed", err)
		}
		return
	}

	response.Success(c, usage)
}

// ReleaseCouponRedemption 释放订单占用的优惠券额度（订单取消）
func (h *Handler) ReleaseCouponRedemption(c *gin.Context) {
	orderID, ok := parsePathUint(c, "order_id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.CouponService.ReleaseRedemption(orderID); err != nil {
		respondError(c, response.CodeInternal, "error.coupon_release_failed", err)
		return
	}
	response.Success(c, gin.H{"released": true})
}
