package router

import (
	"fmt"
	"strings"

	"github.com/bazaar-next/internal/cache"
	"github.com/bazaar-next/internal/config"
	adminhandlers "github.com/bazaar-next/internal/http/handlers/admin"
	publichandlers "github.com/bazaar-next/internal/http/handlers/public"
	"github.com/bazaar-next/internal/logger"
	"github.com/bazaar-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "bz"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	couponRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:coupon_validate", redisPrefix),
		WindowSeconds: cfg.Security.CouponRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.CouponRateLimit.MaxAttempts,
		MessageKey:    "error.rate_limited",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", publicHandler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)
		}

		// 用户接口（需鉴权）
		user := apiV1.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/me", publicHandler.GetCurrentUser)
			user.PUT("/me/profile", publicHandler.UpdateUserProfile)
			user.PUT("/me/password", publicHandler.ChangeUserPassword)
			user.POST("/coupons/validate", RateLimitMiddleware(redisClient, couponRule, KeyByIP), publicHandler.ValidateCoupon)
			user.GET("/me/coupon-usages", publicHandler.ListMyCouponUsages)
			user.GET("/me/wallet", publicHandler.GetMyWallet)
			user.GET("/me/wallet/transactions", publicHandler.GetMyWalletTransactions)
			user.POST("/me/gift-cards/redeem", publicHandler.RedeemGiftCard)
		}

		// 管理员接口
		admin := apiV1.Group("/admin")
		{
			// 登录接口（无需鉴权）
			admin.POST("/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)

			// 需要鉴权的接口
			authorized := admin.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
			{
				authorized.PUT("/password", adminHandler.UpdateAdminPassword)

				// 权限管理
				authorized.GET("/authz/me", adminHandler.GetAuthzMe)
				authorized.GET("/authz/roles", adminHandler.ListAuthzRoles)
				authorized.GET("/authz/admins", adminHandler.ListAuthzAdmins)
				authorized.POST("/authz/roles", adminHandler.CreateAuthzRole)
				authorized.POST("/authz/policies", adminHandler.GrantAuthzPolicy)
				authorized.DELETE("/authz/policies", adminHandler.RevokeAuthzPolicy)
				authorized.PUT("/authz/admins/:id/roles", adminHandler.SetAuthzAdminRoles)

				// 优惠券管理
				authorized.POST("/coupons", adminHandler.CreateCoupon)
				authorized.GET("/coupons", adminHandler.GetAdminCoupons)
				authorized.GET("/coupons/:id", adminHandler.GetAdminCoupon)
				authorized.PUT("/coupons/:id", adminHandler.UpdateCoupon)
				authorized.DELETE("/coupons/:id", adminHandler.DeleteCoupon)
				authorized.POST("/coupons/redemptions", adminHandler.CommitCouponRedemption)
				authorized.DELETE("/coupons/redemptions/:order_id", adminHandler.ReleaseCouponRedemption)

				// 用户与钱包
				authorized.GET("/users", adminHandler.GetAdminUsers)
				authorized.GET("/users/:id", adminHandler.GetAdminUser)
				authorized.GET("/users/:id/wallet", adminHandler.GetAdminUserWallet)
				authorized.POST("/users/:id/wallet/credit", adminHandler.CreditAdminUserWallet)
				authorized.POST("/users/:id/wallet/debit", adminHandler.DebitAdminUserWallet)
				authorized.GET("/wallet/transactions", adminHandler.GetAdminWalletTransactions)
				authorized.POST("/wallet/events/payment-succeeded", adminHandler.NotifyPaymentSucceeded)
				authorized.POST("/wallet/events/order-refunded", adminHandler.NotifyOrderRefunded)
			}
		}
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
