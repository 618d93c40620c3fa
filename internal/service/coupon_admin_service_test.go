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
	"gorm.io/gorm"
)

func setupCouponAdminServiceTest(t *testing.T) (*CouponAdminService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_admin_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Coupon{},
		&models.CouponUsage{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	return NewCouponAdminService(repository.NewCouponRepository(db)), db
}

func TestCouponAdminCreateDefaultsActive(t *testing.T) {
	svc, db := setupCouponAdminServiceTest(t)

	coupon, err := svc.Create(CreateCouponInput{
		Code:  "newyear",
		Type:  constants.CouponTypeFixed,
		Value: models.NewMoneyFromInt(50),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if coupon.Code != "NEWYEAR" {
		t.Fatalf("expected upper-cased code, got %s", coupon.Code)
	}

	var stored models.Coupon
	if err := db.First(&stored, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if !stored.IsActive {
		t.Fatalf("expected coupon active by default")
	}
}

func TestCouponAdminCreateInactivePersists(t *testing.T) {
	svc, db := setupCouponAdminServiceTest(t)

	inactive := false
	coupon, err := svc.Create(CreateCouponInput{
		Code:     "PAUSED",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromInt(50),
		IsActive: &inactive,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	// 重新从库里读，停用状态必须落库
	var stored models.Coupon
	if err := db.First(&stored, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if stored.IsActive {
		t.Fatalf("expected coupon stored as inactive")
	}

	couponSvc := NewCouponService(
		repository.NewCouponRepository(db),
		repository.NewCouponUsageRepository(db),
	)
	result, err := couponSvc.Validate(ValidateCouponInput{
		UserID:      1,
		Code:        "PAUSED",
		OrderAmount: models.NewMoneyFromInt(100),
	})
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if result.Valid || result.MessageKey != "error.coupon_invalid" {
		t.Fatalf("expected inactive coupon rejected, got %+v", result)
	}
}

func TestCouponAdminUpdateDeactivates(t *testing.T) {
	svc, db := setupCouponAdminServiceTest(t)

	coupon, err := svc.Create(CreateCouponInput{
		Code:  "TOGGLE",
		Type:  constants.CouponTypeFixed,
		Value: models.NewMoneyFromInt(20),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	inactive := false
	if _, err := svc.Update(coupon.ID, UpdateCouponInput{
		Code:     "TOGGLE",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromInt(20),
		IsActive: &inactive,
	}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	var stored models.Coupon
	if err := db.First(&stored, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if stored.IsActive {
		t.Fatalf("expected coupon deactivated after update")
	}
}

func TestCouponAdminCreateRejectsBadInput(t *testing.T) {
	svc, _ := setupCouponAdminServiceTest(t)

	cases := []struct {
		name  string
		input CreateCouponInput
	}{
		{"empty code", CreateCouponInput{Type: constants.CouponTypeFixed, Value: models.NewMoneyFromInt(10)}},
		{"unknown type", CreateCouponInput{Code: "X1", Type: "bogo", Value: models.NewMoneyFromInt(10)}},
		{"zero value", CreateCouponInput{Code: "X2", Type: constants.CouponTypeFixed}},
		{"percent over 100", CreateCouponInput{Code: "X3", Type: constants.CouponTypePercent, Value: models.NewMoneyFromInt(150)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(tc.input); !errors.Is(err, ErrCouponInvalid) {
				t.Fatalf("expected invalid input, got: %v", err)
			}
		})
	}

	if _, err := svc.Create(CreateCouponInput{
		Code: "DUP", Type: constants.CouponTypeFixed, Value: models.NewMoneyFromInt(10),
	}); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if _, err := svc.Create(CreateCouponInput{
		Code: "dup", Type: constants.CouponTypeFixed, Value: models.NewMoneyFromInt(10),
	}); !errors.Is(err, ErrCouponCodeExists) {
		t.Fatalf("expected duplicate code, got: %v", err)
	}
}
