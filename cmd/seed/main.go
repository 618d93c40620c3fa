package main

import (
	"time"

	"github.com/bazaar-next/internal/config"
	"github.com/bazaar-next/internal/constants"
	"github.com/bazaar-next/internal/logger"
	"github.com/bazaar-next/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 示例用户
	users := []models.User{
		{
			Email:         "asha@example.in",
			DisplayName:   "Asha",
			Locale:        "en",
			Status:        constants.UserStatusActive,
			WalletBalance: models.NewMoneyFromDecimal(decimal.NewFromInt(1500)),
		},
		{
			Email:         "ravi@example.in",
			DisplayName:   "Ravi",
			Locale:        "hi",
			Status:        constants.UserStatusActive,
			WalletBalance: models.NewMoneyFromDecimal(decimal.NewFromInt(250)),
		},
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte("Seed@12345"), bcrypt.DefaultCost)
	if err != nil {
		stdLog.Fatalf("Failed to hash seed password: %v", err)
	}
	for _, user := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", user.Email).First(&existing).Error; err != nil {
			user.PasswordHash = string(passwordHash)
			if err := models.DB.Create(&user).Error; err != nil {
				stdLog.Printf("Failed to create user %s: %v", user.Email, err)
			} else {
				stdLog.Printf("Created user: %s", user.Email)
			}
		} else {
			stdLog.Printf("User already exists: %s", user.Email)
		}
	}

	// 示例优惠券
	now := time.Now()
	monthEnd := now.AddDate(0, 1, 0)
	active := true
	coupons := []models.Coupon{
		{
			Code:           "SAVE20",
			Type:           constants.CouponTypePercent,
			Value:          models.NewMoneyFromDecimal(decimal.NewFromInt(20)),
			MinOrderAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(500)),
			MaxDiscount:    models.NewMoneyFromDecimal(decimal.NewFromInt(300)),
			UsageLimit:     1000,
			PerUserLimit:   2,
			Description:    "20% off orders above ₹500",
			StartsAt:       &now,
			EndsAt:         &monthEnd,
			IsActive:       active,
		},
		{
			Code:           "FLAT50",
			Type:           constants.CouponTypeFixed,
			Value:          models.NewMoneyFromDecimal(decimal.NewFromInt(50)),
			MinOrderAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(199)),
			UsageLimit:     0,
			PerUserLimit:   1,
			Description:    "Flat ₹50 off orders above ₹199",
			IsActive:       active,
		},
		{
			Code:           "WELCOME10",
			Type:           constants.CouponTypePercent,
			Value:          models.NewMoneyFromDecimal(decimal.NewFromInt(10)),
			FirstOrderOnly: true,
			PerUserLimit:   1,
			Description:    "10% off your first order",
			IsActive:       active,
		},
	}
	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&coupon).Error; err != nil {
				stdLog.Printf("Failed to create coupon %s: %v", coupon.Code, err)
			} else {
				stdLog.Printf("Created coupon: %s", coupon.Code)
			}
		} else {
			stdLog.Printf("Coupon already exists: %s", coupon.Code)
		}
	}

	stdLog.Printf("Seed finished")
}
