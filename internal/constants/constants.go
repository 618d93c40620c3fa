package constants

// 优惠券类型常量
const (
	CouponTypePercent = "percentage"
	CouponTypeFixed   = "fixed"
)

// 钱包交易类型常量
const (
	WalletTxnTypeCredit   = "credit"
	WalletTxnTypeDebit    = "debit"
	WalletTxnTypeRefund   = "refund"
	WalletTxnTypeGiftCard = "giftcard"
	WalletTxnTypeCashback = "cashback"
)

// 钱包交易来源常量
const (
	WalletTxnSourceOrderRefund = "order_refund"
	WalletTxnSourceGiftCard    = "giftcard"
	WalletTxnSourceCashback    = "cashback"
	WalletTxnSourceAdmin       = "admin"
	WalletTxnSourceReferral    = "referral"
	WalletTxnSourcePromo       = "promo"
)

// 钱包交易状态常量（pending/failed 为异步到账预留，当前路径均直接 completed）
const (
	WalletTxnStatusPending   = "pending"
	WalletTxnStatusCompleted = "completed"
	WalletTxnStatusFailed    = "failed"
)

// 用户状态常量
const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"
)

// 站点货币常量
const (
	SiteCurrencyDefault = "INR"
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型常量
const (
	TaskWalletCashback = "wallet:cashback"
	TaskWalletRefund   = "wallet:refund"
)
