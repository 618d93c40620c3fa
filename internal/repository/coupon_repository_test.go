package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/bazaar-next/internal/constants"
	"github.com/bazaar-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCouponRepositoryTest(t *testing.T) (*GormCouponRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:coupon_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Coupon{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewCouponRepository(db), db
}

func TestCouponRepositoryIncrementUsedCountIfBelowLimit(t *testing.T) {
	repo, db := setupCouponRepositoryTest(t)
	coupon := models.Coupon{
		Code:       "LIMIT2",
		Type:       constants.CouponTypeFixed,
		Value:      models.NewMoneyFromInt(10),
		UsageLimit: 2,
		IsActive:   true,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		taken, err := repo.IncrementUsedCountIfBelowLimit(coupon.ID)
		if err != nil {
			t.Fatalf("increment %d failed: %v", i, err)
		}
		if !taken {
			t.Fatalf("expected slot %d to be taken", i)
		}
	}

	taken, err := repo.IncrementUsedCountIfBelowLimit(coupon.ID)
	if err != nil {
		t.Fatalf("increment failed: %v", err)
	}
	if taken {
		t.Fatalf("expected increment beyond limit to be rejected")
	}

	var refreshed models.Coupon
	if err := db.First(&refreshed, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if refreshed.UsedCount != 2 {
		t.Fatalf("expected used_count 2, got %d", refreshed.UsedCount)
	}
}

func TestCouponRepositoryIncrementUnlimited(t *testing.T) {
	repo, db := setupCouponRepositoryTest(t)
	coupon := models.Coupon{
		Code:     "NOLIMIT",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromInt(10),
		IsActive: true,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		taken, err := repo.IncrementUsedCountIfBelowLimit(coupon.ID)
		if err != nil {
			t.Fatalf("increment %d failed: %v", i, err)
		}
		if !taken {
			t.Fatalf("expected unlimited coupon to accept increment %d", i)
		}
	}
}

func TestCouponRepositoryDecrementUsedCountFloorsAtZero(t *testing.T) {
	repo, db := setupCouponRepositoryTest(t)
	coupon := models.Coupon{
		Code:      "DEC1",
		Type:      constants.CouponTypeFixed,
		Value:     models.NewMoneyFromInt(10),
		UsedCount: 1,
		IsActive:  true,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	if err := repo.DecrementUsedCount(coupon.ID, 1); err != nil {
		t.Fatalf("decrement failed: %v", err)
	}
	if err := repo.DecrementUsedCount(coupon.ID, 1); err != nil {
		t.Fatalf("decrement at zero failed: %v", err)
	}

	var refreshed models.Coupon
	if err := db.First(&refreshed, coupon.ID).Error; err != nil {
		t.Fatalf("reload coupon failed: %v", err)
	}
	if refreshed.UsedCount != 0 {
		t.Fatalf("expected used_count 0, got %d", refreshed.UsedCount)
	}
}

func TestCouponRepositoryGetByCode(t *testing.T) {
	repo, db := setupCouponRepositoryTest(t)
	coupon := models.Coupon{
		Code:     "FETCH1",
		Type:     constants.CouponTypeFixed,
		Value:    models.NewMoneyFromInt(10),
		IsActive: true,
	}
	if err := db.Create(&coupon).Error; err != nil {
		t.Fatalf("create coupon failed: %v", err)
	}

	found, err := repo.GetByCode("FETCH1")
	if err != nil {
		t.Fatalf("get by code failed: %v", err)
	}
	if found == nil || found.ID != coupon.ID {
		t.Fatalf("unexpected coupon: %+v", found)
	}

	missing, err := repo.GetByCode("MISSING")
	if err != nil {
		t.Fatalf("get missing failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing code, got %+v", missing)
	}
}
