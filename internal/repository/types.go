package repository

import "time"

// UserListFilter 查询用户列表的过滤条件
type UserListFilter struct {
	Page     int
	PageSize int
	Keyword  string
	Status   string
}

// WalletTransactionListFilter 查询钱包流水列表的过滤条件
type WalletTransactionListFilter struct {
	Page        int
	PageSize    int
	UserID      uint
	Type        string
	Source      string
	Status      string
	OrderID     uint
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
