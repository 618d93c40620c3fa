package service

import (
	"strings"
	"time"

	"github.com/bazaar-next/internal/constants"
	"github.com/bazaar-next/internal/models"
	"github.com/bazaar-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CouponService 优惠券服务
type CouponService struct {
	couponRepo repository.CouponRepository
	usageRepo  repository.CouponUsageRepository
}

// NewCouponService 创建优惠券服务
func NewCouponService(couponRepo repository.CouponRepository, usageRepo repository.CouponUsageRepository) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		usageRepo:  usageRepo,
	}
}

// CouponValidation 优惠券校验结果
// 业务拒绝不走 error，全部落在结果里，error 仅表示基础设施故障。
type CouponValidation struct {
	Valid       bool
	MessageKey  string
	MessageArgs []interface{}
	Discount    models.Money
	FinalAmount models.Money
	Coupon      *models.Coupon
}

// ValidateCouponInput 优惠券校验输入
type ValidateCouponInput struct {
	UserID      uint
	Code        string
	OrderAmount models.Money
}

// Validate 校验优惠码并计算折扣
// 校验顺序固定：存在性/启用 → 生效时间 → 失效时间 → 总量上限 → 每人上限 → 消费门槛。
func (s *CouponService) Validate(input ValidateCouponInput) (*CouponValidation, error) {
	rejected := func(key string, args ...interface{}) *CouponValidation {
		return &CouponValidation{
			Valid:       false,
			MessageKey:  key,
			MessageArgs: args,
			FinalAmount: models.NewMoneyFromDecimal(input.OrderAmount.Decimal),
		}
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return rejected("error.coupon_invalid"), nil
	}

	coupon, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if coupon == nil || !coupon.IsActive {
		return rejected("error.coupon_invalid"), nil
	}

	now := time.Now()
	if coupon.StartsAt != nil && now.Before(*coupon.StartsAt) {
		return rejected("error.coupon_not_started"), nil
	}
	if coupon.EndsAt != nil && now.After(*coupon.EndsAt) {
		return rejected("error.coupon_expired"), nil
	}

	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return rejected("error.coupon_usage_limit"), nil
	}

	if coupon.PerUserLimit > 0 && input.UserID != 0 {
		count, err := s.usageRepo.CountByUser(coupon.ID, input.UserID)
		if err != nil {
			return nil, err
		}
		if int(count) >= coupon.PerUserLimit {
			return rejected("error.coupon_per_user_limit", count), nil
		}
	}

	if input.OrderAmount.Decimal.Cmp(coupon.MinOrderAmount.Decimal) < 0 {
		return rejected("error.coupon_min_amount", coupon.MinOrderAmount.String()), nil
	}

	discount := s.calculateDiscount(coupon, input.OrderAmount)
	final := input.OrderAmount.Decimal.Sub(discount.Decimal)
	if final.LessThan(decimal.Zero) {
		final = decimal.Zero
	}

	return &CouponValidation{
		Valid:       true,
		Discount:    discount,
		FinalAmount: models.NewMoneyFromDecimal(final),
		Coupon:      coupon,
	}, nil
}

// calculateDiscount 按类型计算折扣，取整到整卢比。
// 先取整再按订单金额封顶，取整不能把折扣抬到超过订单金额。
func (s *CouponService) calculateDiscount(coupon *models.Coupon, orderAmount models.Money) models.Money {
	var discount decimal.Decimal
	switch strings.ToLower(strings.TrimSpace(coupon.Type)) {
	case constants.CouponTypePercent:
		percent := coupon.Value.Decimal.Div(decimal.NewFromInt(100))
		discount = orderAmount.Decimal.Mul(percent)
		if coupon.MaxDiscount.Decimal.GreaterThan(decimal.Zero) && discount.GreaterThan(coupon.MaxDiscount.Decimal) {
			discount = coupon.MaxDiscount.Decimal
		}
	case constants.CouponTypeFixed:
		discount = coupon.Value.Decimal
	default:
		return models.Money{}
	}

	if discount.LessThan(decimal.Zero) {
		discount = decimal.Zero
	}
	discount = models.NewMoneyFromDecimal(discount).RoundRupee().Decimal
	if discount.GreaterThan(orderAmount.Decimal) {
		discount = orderAmount.Decimal
	}
	return models.NewMoneyFromDecimal(discount)
}

// CommitRedemptionInput 优惠券核销输入
type CommitRedemptionInput struct {
	UserID   uint
	OrderID  uint
	Code     string
	Discount models.Money
}

// CommitRedemption 核销优惠券：条件递增总使用次数并写入使用记录。
// 总量校验通过 WHERE 子句完成，并发核销不会超出 usage_limit。
func (s *CouponService) CommitRedemption(input CommitRedemptionInput) (*models.CouponUsage, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" || input.UserID == 0 || input.OrderID == 0 {
		return nil, ErrCouponInvalid
	}

	coupon, err := s.couponRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if coupon == nil || !coupon.IsActive {
		return nil, ErrCouponNotFound
	}

	var usage *models.CouponUsage
	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		couponRepo := s.couponRepo.WithTx(tx)
		usageRepo := s.usageRepo.WithTx(tx)

		if coupon.PerUserLimit > 0 {
			count, err := usageRepo.CountByUser(coupon.ID, input.UserID)
			if err != nil {
				return err
			}
			if int(count) >= coupon.PerUserLimit {
				return ErrCouponPerUserLimit
			}
		}

		taken, err := couponRepo.IncrementUsedCountIfBelowLimit(coupon.ID)
		if err != nil {
			return err
		}
		if !taken {
			return ErrCouponUsageLimit
		}

		record := &models.CouponUsage{
			CouponID:       coupon.ID,
			UserID:         input.UserID,
			OrderID:        input.OrderID,
			DiscountAmount: input.Discount,
			CreatedAt:      time.Now(),
		}
		if err := usageRepo.Create(record); err != nil {
			return err
		}
		usage = record
		return nil
	}); err != nil {
		return nil, err
	}
	return usage, nil
}

// ReleaseRedemption 释放订单占用的优惠券额度（订单取消时调用）。
func (s *CouponService) ReleaseRedemption(orderID uint) error {
	if orderID == 0 {
		return nil
	}
	return models.DB.Transaction(func(tx *gorm.DB) error {
		couponRepo := s.couponRepo.WithTx(tx)
		usageRepo := s.usageRepo.WithTx(tx)

		usages, err := usageRepo.ListByOrderID(orderID)
		if err != nil {
			return err
		}
		for _, usage := range usages {
			if err := couponRepo.DecrementUsedCount(usage.CouponID, 1); err != nil {
				return err
			}
		}
		return usageRepo.DeleteByOrderID(orderID)
	})
}

// ListUsagesByUser 查询用户优惠券使用记录
func (s *CouponService) ListUsagesByUser(filter repository.CouponUsageListFilter) ([]models.CouponUsage, int64, error) {
	return s.usageRepo.ListByUser(filter)
}
