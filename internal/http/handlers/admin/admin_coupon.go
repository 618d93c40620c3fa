package admin

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/bazaar-next/internal/http/response"
	"github.com/bazaar-next/internal/models"
	"github.com/bazaar-next/internal/repository"
	"github.com/bazaar-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// CreateCouponRequest 创建优惠券请求
type CreateCouponRequest struct {
	Code           string  `json:"code" binding:"required"`
	Type           string  `json:"type" binding:"required"`
	Value          float64 `json:"value" binding:"required"`
	MinOrderAmount float64 `json:"min_order_amount"`
	MaxDiscount    float64 `json:"max_discount"`
	UsageLimit     int     `json:"usage_limit"`
	PerUserLimit   int     `json:"per_user_limit"`
	FirstOrderOnly bool    `json:"first_order_only"`
	Description    string  `json:"description"`
	StartsAt       string  `json:"starts_at"`
	EndsAt         string  `json:"ends_at"`
	IsActive       *bool   `json:"is_active"`
}

// CreateCoupon 创建优惠券
func (h *Handler) CreateCoupon(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	startsAt, err := parseTimeNullable(req.StartsAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	endsAt, err := parseTimeNullable(req.EndsAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	coupon, err := h.CouponAdminService.Create(service.CreateCouponInput{
		Code:           req.Code,
		Type:           req.Type,
		Value:          models.NewMoneyFromDecimal(decimal.NewFromFloat(req.Value)),
		MinOrderAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(req.MinOrderAmount)),
		MaxDiscount:    models.NewMoneyFromDecimal(decimal.NewFromFloat(req.MaxDiscount)),
		UsageLimit:     req.UsageLimit,
		PerUserLimit:   req.PerUserLimit,
		FirstOrderOnly: req.FirstOrderOnly,
		Description:    req.Description,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
		IsActive:       req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponInvalid):
			respondError(c, response.CodeBadRequest, "error.coupon_invalid", nil)
		case errors.Is(err, service.ErrCouponCodeExists):
			respondError(c, response.CodeConflict, "error.coupon_exists", nil)
		default:
			respondError(c, response.CodeInternal, "error.coupon_create_failed", err)
		}
		return
	}

	response.Success(c, coupon)
}

// UpdateCoupon 更新优惠券
func (h *Handler) UpdateCoupon(c *gin.Context) {
	couponID, ok := parsePathUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	startsAt, err := parseTimeNullable(req.StartsAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	endsAt, err := parseTimeNullable(req.EndsAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	coupon, err := h.CouponAdminService.Update(couponID, service.UpdateCouponInput{
		Code:           req.Code,
		Type:           req.Type,
		Value:          models.NewMoneyFromDecimal(decimal.NewFromFloat(req.Value)),
		MinOrderAmount: models.NewMoneyFromDecimal(decimal.NewFromFloat(req.MinOrderAmount)),
		MaxDiscount:    models.NewMoneyFromDecimal(decimal.NewFromFloat(req.MaxDiscount)),
		UsageLimit:     req.UsageLimit,
		PerUserLimit:   req.PerUserLimit,
		FirstOrderOnly: req.FirstOrderOnly,
		Description:    req.Description,
		StartsAt:       startsAt,
		EndsAt:         endsAt,
		IsActive:       req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponNotFound):
			respondError(c, response.CodeNotFound, "error.coupon_not_found", nil)
		case errors.Is(err, service.ErrCouponInvalid):
			respondError(c, response.CodeBadRequest, "error.coupon_invalid", nil)
		case errors.Is(err, service.ErrCouponCodeExists):
			respondError(c, response.CodeConflict, "error.coupon_exists", nil)
		default:
			respondError(c, response.CodeInternal, "error.coupon_update_failed", err)
		}
		return
	}

	response.Success(c, coupon)
}

// DeleteCoupon 删除优惠券
func (h *Handler) DeleteCoupon(c *gin.Context) {
	couponID, ok := parsePathUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	if err := h.CouponAdminService.Delete(couponID); err != nil {
		switch {
		case errors.Is(err, service.ErrCouponNotFound):
			respondError(c, response.CodeNotFound, "error.coupon_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.coupon_delete_failed", err)
		}
		return
	}
	response.Success(c, gin.H{
		"deleted": true,
	})
}

// GetAdminCoupon 获取优惠券详情
func (h *Handler) GetAdminCoupon(c *gin.Context) {
	couponID, ok := parsePathUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	coupon, err := h.CouponAdminService.GetByID(couponID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCouponNotFound):
			respondError(c, response.CodeNotFound, "error.coupon_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.coupon_fetch_failed", err)
		}
		return
	}
	response.Success(c, coupon)
}

// GetAdminCoupons 获取优惠券列表
func (h *Handler) GetAdminCoupons(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	code := c.Query("code")
	var id uint
	if rawID := strings.TrimSpace(c.Query("id")); rawID != "" {
		parsed, err := strconv.ParseUint(rawID, 10, 64)
		if err != nil || parsed == 0 {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		id = uint(parsed)
	}
	var isActive *bool
	if raw := c.Query("is_active"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		isActive = &parsed
	}

	coupons, total, err := h.CouponAdminService.List(repository.CouponListFilter{
		ID:       id,
		Code:     code,
		Type:     strings.TrimSpace(c.Query("type")),
		IsActive: isActive,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.coupon_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, coupons, pagination)
}

func parseTimeNullable(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
