package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表（钱包余额内嵌为单一标量字段）
type User struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                       // 主键
	Email         string         `gorm:"uniqueIndex;not null" json:"email"`                          // 邮箱
	PasswordHash  string         `gorm:"not null" json:"-"`                                          // 密码哈希（不返回给前端）
	DisplayName   string         `gorm:"default:''" json:"display_name"`                             // 昵称
	Locale        string         `gorm:"default:'en'" json:"locale"`                                 // 语言偏好
	Status        string         `gorm:"default:'active'" json:"status"`                             // 账号状态
	WalletBalance Money          `gorm:"type:decimal(20,2);not null;default:0" json:"wallet_balance"` // 钱包余额（非负）
	OrderCount    int            `gorm:"not null;default:0" json:"order_count"`                      // 已完成订单数
	TokenVersion  uint64         `gorm:"not null;default:0" json:"-"`                                // Token 版本（用于全量失效）
	LastLoginAt   *time.Time     `json:"last_login_at"`                                              // 最后登录时间
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt     time.Time      `gorm:"index" json:"updated_at"`                                    // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                             // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
