package models

import (
	"time"

	"gorm.io/gorm"
)

// WalletTransaction 钱包流水
type WalletTransaction struct {
	ID           uint           `gorm:"primarykey" json:"id"`                                // 主键
	UserID       uint           `gorm:"index;not null" json:"user_id"`                       // 用户ID
	Type         string         `gorm:"index;not null" json:"type"`                          // 类型（credit/debit/refund/giftcard/cashback）
	Amount       Money          `gorm:"type:decimal(20,2);not null" json:"amount"`           // 变动金额（始终为正）
	Balance      Money          `gorm:"type:decimal(20,2);not null" json:"balance"`          // 变动后余额快照
	Description  string         `gorm:"type:text" json:"description"`                        // 描述
	Source       string         `gorm:"index" json:"source"`                                 // 来源（order_refund/giftcard/cashback/admin/referral/promo）
	OrderID      *uint          `gorm:"index" json:"order_id"`                               // 关联订单ID（可空）
	GiftCardCode *string        `gorm:"uniqueIndex" json:"gift_card_code"`                   // 礼品卡码（兑换流水唯一）
	Reference    string         `gorm:"uniqueIndex;not null" json:"reference"`               // 幂等引用（同一引用只入账一次）
	Status       string         `gorm:"index;not null;default:'completed'" json:"status"`    // 状态（pending/completed/failed）
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt    time.Time      `gorm:"index" json:"updated_at"`                             // 更新时间
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (WalletTransaction) TableName() string {
	return "wallet_transactions"
}
