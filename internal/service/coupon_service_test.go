package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/bazaar-next/internal/constants"
	"github.com/bazaar-next/internal/models"
	"github.com/bazaar-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCouponServiceTest(t *testing.T) (*CouponService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Coupon{},
		&models.CouponUsage{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	couponRepo := repository.NewCouponRepository(db)
	usageRepo := repository.NewCouponUsageRepository(db)
	return NewCouponService(couponRepo, usageRepo), db
}

func createTestCoupon(t *testing.T, db *gorm.DB, coupon models.Coupon) *models.Coupon {
	t.Helper()
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}
	return &coupon
}

func TestCouponValidatePercentageWithCap(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, models.Coupon{
		Code:           "SAVE20",
		Type:           constants.CouponTypePercent,
		Value:          models.NewMoneyFromInt(20),
		MinOrderAmount: models.NewMoneyFromInt(500),
		MaxDiscount:    models.NewMoneyFromInt(300),
		IsActive:       true,
	})

	result, err := svc.Validate(ValidateCouponInput{
		UserID:      1,
		Code:        "save20",
		OrderAmount: models.NewMoneyFromInt(1000),
	})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid, got key %s", result.MessageKey)
	}
	if !result.Discount.Decimal.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("expected discount 200, got %s", result.Discount.String())
	}
	if !result.FinalAmount.Decimal.Equal(decimal.NewFromInt(800)) {
		t.Fatalf("expected final 800, got %s", result.FinalAmount.String())
	}

	// 超过封顶时按 max_discount 收敛
	result, err = svc.Validate(ValidateCouponInput{
		UserID:      1,
		Code:        "SAVE20",
		OrderAmount: models.NewMoneyFromInt(5000),
	})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !result.Discount.Decimal.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected capped discount 300, got %s", result.Discount.String())
	}
}

func TestCouponValidatePercentageRoundsToRupee(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, models.Coupon{
		Code:     "ODD15",
		Type:     constants.CouponTypePercent,
		Value:    models.NewMoneyFromInt(15),
		IsActive: true,
	})

	result, err := svc.Validate(ValidateCouponInput{
		UserID:      1,
		Code:        "ODD15",
		OrderAmount: models.NewMoneyFromInt(333),
	})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	// 333 * 15% = 49.95 → 50
	if !result.Discount.Decimal.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected rounded discount 50, got %s", result.Discount.String())
	}
	if !result.FinalAmount.Decimal.Equal(decimal.NewFromInt(283)) {
		t.Fatalf("expected final 283, got %s", result.FinalAmount.String())
	}
}

func TestCouponValidateFixedCappedAtOrderAmount(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, models.Coupon{
		Code:     "FLAT500",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromInt(500),
		IsActive: true,
	})

	result, err := svc.Validate(ValidateCouponInput{
		UserID:      1,
		Code:        "FLAT500",
		OrderAmount: models.NewMoneyFromInt(300),
	})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !result.Discount.Decimal.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("expected discount capped at 300, got %s", result.Discount.String())
	}
	if !result.FinalAmount.Decimal.IsZero() {
		t.Fatalf("expected final 0, got %s", result.FinalAmount.String())
	}
}

func TestCouponValidateFixedFractionalCartNeverOvershoots(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	createTestCoupon(t, db, models.Coupon{
		Code:     "FLAT50",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromInt(50),
		IsActive: true,
	})

	orderAmount, err := decimal.NewFromString("30.50")
	if err != nil {
		t.Fatalf("parse amount failed: %v", err)
	}
	result, err := svc.Validate(ValidateCouponInput{
		UserID:      1,
		Code:        "FLAT50",
		OrderAmount: models.NewMoneyFromDecimal(orderAmount),
	})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid, got key %s", result.MessageKey)
	}
	// 封顶后折扣保持 30.50，不能被取整抬到 31
	if !result.Discount.Decimal.Equal(orderAmount) {
		t.Fatalf("expected discount 30.50, got %s", result.Discount.String())
	}
	if !result.FinalAmount.Decimal.IsZero() {
		t.Fatalf("expected final 0, got %s", result.FinalAmount.String())
	}
}

func TestCouponValidateRejections(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	now := time.Now()
	future := now.Add(24 * time.Hour)
	past := now.Add(-24 * time.Hour)

	createTestCoupon(t, db, models.Coupon{
		Code: "DISABLED", Type: constants.CouponTypeFixed,
		Value: models.NewMoneyFromInt(10), IsActive: false,
	})
	createTestCoupon(t, db, models.Coupon{
		Code: "SOON", Type: constants.CouponTypeFixed,
		Value: models.NewMoneyFromInt(10), StartsAt: &future, IsActive: true,
	})
	createTestCoupon(t, db, models.Coupon{
		Code: "GONE", Type: constants.CouponTypeFixed,
		Value: models.NewMoneyFromInt(10), EndsAt: &past, IsActive: true,
	})
	createTestCoupon(t, db, models.Coupon{
		Code: "FULL", Type: constants.CouponTypeFixed,
		Value: models.NewMoneyFromInt(10), UsageLimit: 5, UsedCount: 5, IsActive: true,
	})
	createTestCoupon(t, db, models.Coupon{
		Code: "MIN500", Type: constants.CouponTypeFixed,
		Value: models.NewMoneyFromInt(10), MinOrderAmount: models.NewMoneyFromInt(500), IsActive: true,
	})

	cases := []struct {
		name string
		code string
		key  string
	}{
		{"unknown code", "NOPE", "error.coupon_invalid"},
		{"disabled", "DISABLED", "error.coupon_invalid"},
		{"not started", "SOON", "error.coupon_not_started"},
		{"expired", "GONE", "error.coupon_expired"},
		{"usage limit", "FULL", "error.coupon_usage_limit"},
		{"min amount", "MIN500", "error.coupon_min_amount"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.Validate(ValidateCouponInput{
				UserID:      1,
				Code:        tc.code,
				OrderAmount: models.NewMoneyFromInt(100),
			})
			if err != nil {
				t.Fatalf("validate failed: %v", err)
			}
			if result.Valid {
				t.Fatalf("expected rejection")
			}
			if result.MessageKey != tc.key {
				t.Fatalf("expected key %s, got %s", tc.key, result.MessageKey)
			}
			if !result.FinalAmount.Decimal.Equal(decimal.NewFromInt(100)) {
				t.Fatalf("expected final to keep order amount, got %s", result.FinalAmount.String())
			}
		})
	}
}

func TestCouponValidatePerUserLimit(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := createTestCoupon(t, db, models.Coupon{
		Code: "ONCE", Type: constants.CouponTypeFixed,
		Value: models.NewMoneyFromInt(10), PerUserLimit: 1, IsActive: true,
	})
	if err := db.Create(&models.CouponUsage{
		CouponID: coupon.ID, UserID: 7, OrderID: 1001,
		DiscountAmount: models.NewMoneyFromInt(10),
	}).Error; err != nil {
		t.Fatalf("create usage failed: %v", err)
	}

	result, err := svc.Validate(ValidateCouponInput{
		UserID:      7,
		Code:        "ONCE",
		OrderAmount: models.NewMoneyFromInt(100),
	})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if result.Valid || result.MessageKey != "error.coupon_per_user_limit" {
		t.Fatalf("expected per-user rejection, got %+v", result)
	}

	// 其他用户不受影响
	result, err = svc.Validate(ValidateCouponInput{
		UserID:      8,
		Code:        "ONCE",
		OrderAmount: models.NewMoneyFromInt(100),
	})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid for other user, got key %s", result.MessageKey)
	}
}

func TestCouponCommitRedemption(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := createTestCoupon(t, db, models.Coupon{
		Code: "COMMIT10", Type: constants.CouponTypeFixed,
		Value: models.NewMoneyFromInt(10), UsageLimit: 2, PerUserLimit: 1, IsActive: true,
	})

	usage, err := svc.CommitRedemption(CommitRedemptionInput{
		UserID: 11, OrderID: 2001, Code: "commit10",
		Discount: models.NewMoneyFromInt(10),
	})
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if usage == nil || usage.CouponID != coupon.ID || usage.OrderID != 2001 {
		t.Fatalf("unexpected usage: %+v", usage)
	}

	var refreshed models.Coupon
	if err := db.First(&refreshed, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if refreshed.UsedCount != 1 {
		t.Fatalf("expected used_count 1, got %d", refreshed.UsedCount)
	}

	// 同一用户超出 per_user_limit
	_, err = svc.CommitRedemption(CommitRedemptionInput{
		UserID: 11, OrderID: 2002, Code: "COMMIT10",
		Discount: models.NewMoneyFromInt(10),
	})
	if !errors.Is(err, ErrCouponPerUserLimit) {
		t.Fatalf("expected per-user limit, got: %v", err)
	}

	// 第二个名额被其他用户占用后总量见顶
	if _, err := svc.CommitRedemption(CommitRedemptionInput{
		UserID: 12, OrderID: 2003, Code: "COMMIT10",
		Discount: models.NewMoneyFromInt(10),
	}); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	_, err = svc.CommitRedemption(CommitRedemptionInput{
		UserID: 13, OrderID: 2004, Code: "COMMIT10",
		Discount: models.NewMoneyFromInt(10),
	})
	if !errors.Is(err, ErrCouponUsageLimit) {
		t.Fatalf("expected usage limit, got: %v", err)
	}
}

func TestCouponCommitRedemptionInvalidInput(t *testing.T) {
	svc, _ := setupCouponServiceTest(t)

	_, err := svc.CommitRedemption(CommitRedemptionInput{UserID: 0, OrderID: 1, Code: "X"})
	if !errors.Is(err, ErrCouponInvalid) {
		t.Fatalf("expected invalid input, got: %v", err)
	}
	_, err = svc.CommitRedemption(CommitRedemptionInput{UserID: 1, OrderID: 1, Code: "MISSING"})
	if !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("expected not found, got: %v", err)
	}
}

func TestCouponReleaseRedemption(t *testing.T) {
	svc, db := setupCouponServiceTest(t)
	coupon := createTestCoupon(t, db, models.Coupon{
		Code: "REL10", Type: constants.CouponTypeFixed,
		Value: models.NewMoneyFromInt(10), UsageLimit: 10, IsActive: true,
	})

	if _, err := svc.CommitRedemption(CommitRedemptionInput{
		UserID: 21, OrderID: 3001, Code: "REL10",
		Discount: models.NewMoneyFromInt(10),
	}); err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	if err := svc.ReleaseRedemption(3001); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	var refreshed models.Coupon
	if err := db.First(&refreshed, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if refreshed.UsedCount != 0 {
		t.Fatalf("expected used_count back to 0, got %d", refreshed.UsedCount)
	}

	var count int64
	if err := db.Model(&models.CouponUsage{}).Where("order_id = ?", 3001).Count(&count).Error; err != nil {
		t.Fatalf("count usages failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected usages removed, got %d", count)
	}

	// 重复释放与空订单号都应幂等
	if err := svc.ReleaseRedemption(3001); err != nil {
		t.Fatalf("repeat release failed: %v", err)
	}
	if err := svc.ReleaseRedemption(0); err != nil {
		t.Fatalf("zero order release failed: %v", err)
	}
}
