package queue

import (
	"encoding/json"

	"github.com/bazaar-next/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskWalletCashback 订单返现入账任务
	TaskWalletCashback = constants.TaskWalletCashback
	// TaskWalletRefund 订单退款入账任务
	TaskWalletRefund = constants.TaskWalletRefund
)

// WalletCashbackPayload 返现任务载荷
type WalletCashbackPayload struct {
	UserID      uint   `json:"user_id"`
	OrderID     uint   `json:"order_id"`
	OrderAmount string `json:"order_amount"`
}

// WalletRefundPayload 退款任务载荷
type WalletRefundPayload struct {
	UserID  uint   `json:"user_id"`
	OrderID uint   `json:"order_id"`
	Amount  string `json:"amount"`
}

// NewWalletCashbackTask 创建返现任务
func NewWalletCashbackTask(payload WalletCashbackPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWalletCashback, body), nil
}

// NewWalletRefundTask 创建退款任务
func NewWalletRefundTask(payload WalletRefundPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWalletRefund, body), nil
}
