package public

import (
	"strconv"
	"strings"

	"github.com/bazaar-next/internal/http/response"
	"github.com/bazaar-next/internal/i18n"
	"github.com/bazaar-next/internal/models"
	"github.com/bazaar-next/internal/repository"
	"github.com/bazaar-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CouponValidateRequest 优惠券校验请求
type CouponValidateRequest struct {
	Code        string `json:"code" binding:"required"`
	OrderAmount string `json:"order_amount" binding:"required"`
}

// ValidateCoupon 校验优惠码并试算折扣
// 业务拒绝不是错误：统一返回 200，由 valid/message 字段表达结果。
func (h *Handler) ValidateCoupon(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	var req CouponValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.OrderAmount))
	if err != nil || amount.IsNegative() {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.CouponService.Validate(service.ValidateCouponInput{
		UserID:      uid,
		Code:        req.Code,
		OrderAmount: models.NewMoneyFromDecimal(amount),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.coupon_fetch_failed", err)
		return
	}

	response.Success(c, buildCouponValidationPayload(c, result))
}

// ListMyCouponUsages 获取当前用户的优惠券使用记录
func (h *Handler) ListMyCouponUsages(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	usages, total, err := h.CouponService.ListUsagesByUser(repository.CouponUsageListFilter{
		UserID:   uid,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.coupon_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, usages, pagination)
}

func buildCouponValidationPayload(c *gin.Context, result *service.CouponValidation) gin.H {
	payload := gin.H{
		"valid":        result.Valid,
		"discount":     result.Discount,
		"final_amount": result.FinalAmount,
	}
	locale := i18n.ResolveLocale(c)
	if result.MessageKey != "" {
		payload["message"] = i18n.Sprintf(locale, result.MessageKey, result.MessageArgs...)
	} else if result.Valid {
		payload["message"] = i18n.Sprintf(locale, "coupon.applied")
	}
	if result.Coupon != nil {
		payload["coupon"] = gin.H{
			"code":         result.Coupon.Code,
			"type":         result.Coupon.Type,
			"value":        result.Coupon.Value,
			"max_discount": result.Coupon.MaxDiscount,
			"description":  result.Coupon.Description,
		}
	}
	return payload
}
