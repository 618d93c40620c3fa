package service

import (
	"strings"
	"time"

	"github.com/bazaar-next/internal/constants"
	"github.com/bazaar-next/internal/models"
	"github.com/bazaar-next/internal/repository"

	"github.com/shopspring/decimal"
)

// CouponAdminService 优惠券管理服务
type CouponAdminService struct {
	repo repository.CouponRepository
}

// NewCouponAdminService 创建优惠券管理服务
func NewCouponAdminService(repo repository.CouponRepository) *CouponAdminService {
	return &CouponAdminService{repo: repo}
}

// CreateCouponInput 创建优惠券输入
type CreateCouponInput struct {
	Code           string
	Type           string
	Value          models.Money
	MinOrderAmount models.Money
	MaxDiscount    models.Money
	UsageLimit     int
	PerUserLimit   int
	FirstOrderOnly bool
	Description    string
	StartsAt       *time.Time
	EndsAt         *time.Time
	IsActive       *bool
}

// UpdateCouponInput 更新优惠券输入
type UpdateCouponInput struct {
	Code           string
	Type           string
	Value          models.Money
	MinOrderAmount models.Money
	MaxDiscount    models.Money
	UsageLimit     int
	PerUserLimit   int
	FirstOrderOnly bool
	Description    string
	StartsAt       *time.Time
	EndsAt         *time.Time
	IsActive       *bool
}

// Create 创建优惠券
func (s *CouponAdminService) Create(input CreateCouponInput) (*models.Coupon, error) {
	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, ErrCouponInvalid
	}
	couponType, err := normalizeCouponType(input.Type, input.Value)
	if err != nil {
		return nil, err
	}

	exist, err := s.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if exist != nil {
		return nil, ErrCouponCodeExists
	}

	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return nil, ErrCouponInvalid
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	coupon := &models.Coupon{
		Code:           code,
		Type:           couponType,
		Value:          input.Value,
		MinOrderAmount: input.MinOrderAmount,
		MaxDiscount:    input.MaxDiscount,
		UsageLimit:     input.UsageLimit,
		UsedCount:      0,
		PerUserLimit:   input.PerUserLimit,
		FirstOrderOnly: input.FirstOrderOnly,
		Description:    strings.TrimSpace(input.Description),
		StartsAt:       input.StartsAt,
		EndsAt:         input.EndsAt,
		IsActive:       isActive,
	}

	if err := s.repo.Create(coupon); err != nil {
		return nil, ErrCouponCreateFailed
	}
	return coupon, nil
}

// Update 更新优惠券
func (s *CouponAdminService) Update(id uint, input UpdateCouponInput) (*models.Coupon, error) {
	if id == 0 {
		return nil, ErrCouponInvalid
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrCouponNotFound
	}

	code := strings.ToUpper(strings.TrimSpace(input.Code))
	if code == "" {
		return nil, ErrCouponInvalid
	}
	couponType, err := normalizeCouponType(input.Type, input.Value)
	if err != nil {
		return nil, err
	}

	if code != existing.Code {
		dup, err := s.repo.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, ErrCouponCodeExists
		}
	}

	if input.StartsAt != nil && input.EndsAt != nil && input.EndsAt.Before(*input.StartsAt) {
		return nil, ErrCouponInvalid
	}

	isActive := existing.IsActive
	if input.IsActive != nil {
		isActive = *input.IsActive
	}

	existing.Code = code
	existing.Type = couponType
	existing.Value = input.Value
	existing.MinOrderAmount = input.MinOrderAmount
	existing.MaxDiscount = input.MaxDiscount
	existing.UsageLimit = input.UsageLimit
	existing.PerUserLimit = input.PerUserLimit
	existing.FirstOrderOnly = input.FirstOrderOnly
	existing.Description = strings.TrimSpace(input.Description)
	existing.StartsAt = input.StartsAt
	existing.EndsAt = input.EndsAt
	existing.IsActive = isActive

	if err := s.repo.Update(existing); err != nil {
		return nil, ErrCouponUpdateFailed
	}
	return existing, nil
}

// Delete 删除优惠券
func (s *CouponAdminService) Delete(id uint) error {
	if id == 0 {
		return ErrCouponInvalid
	}
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrCouponNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return ErrCouponDeleteFailed
	}
	return nil
}

// GetByID 获取优惠券详情
func (s *CouponAdminService) GetByID(id uint) (*models.Coupon, error) {
	coupon, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponNotFound
	}
	return coupon, nil
}

// List 获取优惠券列表
func (s *CouponAdminService) List(filter repository.CouponListFilter) ([]models.Coupon, int64, error) {
	return s.repo.List(filter)
}

func normalizeCouponType(raw string, value models.Money) (string, error) {
	couponType := strings.ToLower(strings.TrimSpace(raw))
	if couponType != constants.CouponTypeFixed && couponType != constants.CouponTypePercent {
		return "", ErrCouponInvalid
	}
	if value.Decimal.LessThanOrEqual(decimal.Zero) {
		return "", ErrCouponInvalid
	}
	if couponType == constants.CouponTypePercent && value.Decimal.GreaterThan(decimal.NewFromInt(100)) {
		return "", ErrCouponInvalid
	}
	return couponType, nil
}
