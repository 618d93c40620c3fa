package service

import "errors"

// 优惠券相关错误
var (
	ErrCouponInvalid      = errors.New("coupon invalid")
	ErrCouponNotFound     = errors.New("coupon not found")
	ErrCouponInactive     = errors.New("coupon inactive")
	ErrCouponNotStarted   = errors.New("coupon not started")
	ErrCouponExpired      = errors.New("coupon expired")
	ErrCouponUsageLimit   = errors.New("coupon usage limit reached")
	ErrCouponPerUserLimit = errors.New("coupon per user limit reached")
	ErrCouponMinAmount    = errors.New("coupon min order amount not met")
	ErrCouponCodeExists   = errors.New("coupon code exists")
	ErrCouponCreateFailed = errors.New("coupon create failed")
	ErrCouponUpdateFailed = errors.New("coupon update failed")
	ErrCouponDeleteFailed = errors.New("coupon delete failed")
	ErrCouponFetchFailed  = errors.New("coupon fetch failed")
)

// 钱包相关错误
var (
	ErrWalletUserNotFound            = errors.New("wallet user not found")
	ErrWalletInvalidAmount           = errors.New("wallet invalid amount")
	ErrWalletInsufficientBalance     = errors.New("wallet insufficient balance")
	ErrWalletUpdateFailed            = errors.New("wallet update failed")
	ErrWalletTransactionCreateFailed = errors.New("wallet transaction create failed")
	ErrWalletTransactionFetchFailed  = errors.New("wallet transaction fetch failed")
)

// 礼品卡相关错误
var (
	ErrGiftCardCodeFormat = errors.New("gift card code format invalid")
	ErrGiftCardRedeemed   = errors.New("gift card already redeemed")
)

// 用户与认证相关错误
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrUserDisabled       = errors.New("user disabled")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminNotFound      = errors.New("admin not found")
	ErrTokenInvalid       = errors.New("token invalid")
	ErrWeakPassword       = errors.New("weak password")
	ErrEmailInvalid       = errors.New("email invalid")
)

// 验证码相关错误
var (
	ErrCaptchaRequired = errors.New("captcha required")
	ErrCaptchaInvalid  = errors.New("captcha invalid")
)
