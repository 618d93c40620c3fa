package provider

import (
	"strings"

	"github.com/bazaar-next/internal/authz"
	"github.com/bazaar-next/internal/cache"
	"github.com/bazaar-next/internal/config"
	"github.com/bazaar-next/internal/logger"
	"github.com/bazaar-next/internal/models"
	"github.com/bazaar-next/internal/queue"
	"github.com/bazaar-next/internal/repository"
	"github.com/bazaar-next/internal/service"

	"github.com/shopspring/decimal"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo       repository.AdminRepository
	UserRepo        repository.UserRepository
	CouponRepo      repository.CouponRepository
	CouponUsageRepo repository.CouponUsageRepository
	WalletTxnRepo   repository.WalletTransactionRepository

	// Services
	AuthzService       *authz.Service
	AuthService        *service.AuthService
	UserAuthService    *service.UserAuthService
	CaptchaService     *service.CaptchaService
	CouponService      *service.CouponService
	CouponAdminService *service.CouponAdminService
	WalletService      *service.WalletService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.CouponUsageRepo = repository.NewCouponUsageRepository(db)
	c.WalletTxnRepo = repository.NewWalletTransactionRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.CouponService = service.NewCouponService(c.CouponRepo, c.CouponUsageRepo)
	c.CouponAdminService = service.NewCouponAdminService(c.CouponRepo)
	c.WalletService = service.NewWalletService(
		c.UserRepo,
		c.WalletTxnRepo,
		resolveGiftCardAmount(c.Config.Wallet.GiftCardAmount),
		c.Config.Wallet.CashbackPercent,
	)
}

func resolveGiftCardAmount(raw string) models.Money {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return models.NewMoneyFromInt(0)
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		logger.Warnw("provider_gift_card_amount_invalid", "value", raw, "error", err)
		return models.NewMoneyFromInt(0)
	}
	return models.NewMoneyFromDecimal(amount)
}
