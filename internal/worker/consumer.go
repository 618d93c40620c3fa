package worker

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/bazaar-next/internal/logger"
	"github.com/bazaar-next/internal/models"
	"github.com/bazaar-next/internal/provider"
	"github.com/bazaar-next/internal/queue"
	"github.com/bazaar-next/internal/service"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskWalletCashback, c.handleWalletCashback)
	mux.HandleFunc(queue.TaskWalletRefund, c.handleWalletRefund)
}

func (c *Consumer) handleWalletCashback(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_wallet_cashback_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.WalletCashbackPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_wallet_cashback_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == 0 || payload.OrderID == 0 {
		logger.Debugw("worker_wallet_cashback_skip_invalid_payload", "user_id", payload.UserID, "order_id", payload.OrderID)
		return nil
	}
	amount, err := decimal.NewFromString(payload.OrderAmount)
	if err != nil {
		logger.Warnw("worker_wallet_cashback_parse_amount_failed", "order_id", payload.OrderID, "amount", payload.OrderAmount, "error", err)
		return nil
	}
	if _, err := c.WalletService.CreditCashback(payload.UserID, payload.OrderID, models.NewMoneyFromDecimal(amount)); err != nil {
		switch {
		case errors.Is(err, service.ErrWalletUserNotFound):
			logger.Debugw("worker_wallet_cashback_skip_user_not_found", "user_id", payload.UserID, "order_id", payload.OrderID)
			return nil
		case errors.Is(err, service.ErrWalletInvalidAmount):
			logger.Debugw("worker_wallet_cashback_skip_invalid_amount", "order_id", payload.OrderID, "amount", payload.OrderAmount)
			return nil
		default:
			logger.Warnw("worker_wallet_cashback_failed", "user_id", payload.UserID, "order_id", payload.OrderID, "error", err)
			return err
		}
	}
	return nil
}

func (c *Consumer) handleWalletRefund(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_wallet_refund_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.WalletRefundPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_wallet_refund_unmarshal_failed", "error", err)
		return err
	}
	if payload.UserID == 0 || payload.OrderID == 0 {
		logger.Debugw("worker_wallet_refund_skip_invalid_payload", "user_id", payload.UserID, "order_id", payload.OrderID)
		return nil
	}
	amount, err := decimal.NewFromString(payload.Amount)
	if err != nil {
		logger.Warnw("worker_wallet_refund_parse_amount_failed", "order_id", payload.OrderID, "amount", payload.Amount, "error", err)
		return nil
	}
	if _, err := c.WalletService.CreditRefund(payload.UserID, payload.OrderID, models.NewMoneyFromDecimal(amount)); err != nil {
		switch {
		case errors.Is(err, service.ErrWalletUserNotFound):
			logger.Debugw("worker_wallet_refund_skip_user_not_found", "user_id", payload.UserID, "order_id", payload.OrderID)
			return nil
		case errors.Is(err, service.ErrWalletInvalidAmount):
			logger.Debugw("worker_wallet_refund_skip_invalid_amount", "order_id", payload.OrderID, "amount", payload.Amount)
			return nil
		default:
			logger.Warnw("worker_wallet_refund_failed", "user_id", payload.UserID, "order_id", payload.OrderID, "error", err)
			return err
		}
	}
	return nil
}
