package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/bazaar-next/internal/constants"
	"github.com/bazaar-next/internal/models"
	"github.com/bazaar-next/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupWalletServiceTest(t *testing.T) (*WalletService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:wallet_service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.WalletTransaction{},
	); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	models.DB = db
	userRepo := repository.NewUserRepository(db)
	txnRepo := repository.NewWalletTransactionRepository(db)
	return NewWalletService(userRepo, txnRepo, models.NewMoneyFromInt(100), 2), db
}

func createWalletTestUser(t *testing.T, db *gorm.DB, id uint, balance int64) {
	t.Helper()
	user := models.User{
		ID:            id,
		Email:         fmt.Sprintf("wallet_user_%d@example.in", id),
		PasswordHash:  "hash",
		Status:        constants.UserStatusActive,
		WalletBalance: models.NewMoneyFromInt(balance),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
}

func TestWalletCreditIdempotentByReference(t *testing.T) {
	svc, db := setupWalletServiceTest(t)
	createWalletTestUser(t, db, 201, 0)

	input := WalletCreditInput{
		UserID:    201,
		Amount:    models.NewMoneyFromInt(120),
		Source:    constants.WalletTxnSourceAdmin,
		Reference: "admin:credit:unit-1",
	}
	first, err := svc.Credit(input)
	if err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if !first.Balance.Decimal.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("unexpected balance snapshot: %s", first.Balance.String())
	}

	second, err := svc.Credit(input)
	if err != nil {
		t.Fatalf("repeat credit failed: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected same transaction, got %d and %d", first.ID, second.ID)
	}

	balance, err := svc.GetBalance(201)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if !balance.Decimal.Equal(decimal.NewFromInt(120)) {
		t.Fatalf("expected balance 120, got %s", balance.String())
	}
}

func TestWalletCreditGeneratesReferenceWhenOmitted(t *testing.T) {
	svc, db := setupWalletServiceTest(t)
	createWalletTestUser(t, db, 205, 0)

	txn, err := svc.Credit(WalletCreditInput{
		UserID: 205,
		Amount: models.NewMoneyFromInt(50),
		Source: constants.WalletTxnSourceAdmin,
	})
	if err != nil {
		t.Fatalf("credit without reference failed: %v", err)
	}
	if txn.Reference == "" {
		t.Fatalf("expected generated reference")
	}
	if !strings.HasPrefix(txn.Reference, "credit:205:") {
		t.Fatalf("unexpected reference: %s", txn.Reference)
	}

	balance, err := svc.GetBalance(205)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if !balance.Decimal.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected balance 50, got %s", balance.String())
	}
}

func TestWalletCreditRejectsBadInput(t *testing.T) {
	svc, db := setupWalletServiceTest(t)
	createWalletTestUser(t, db, 202, 0)

	_, err := svc.Credit(WalletCreditInput{UserID: 202, Amount: models.NewMoneyFromInt(0), Reference: "r1"})
	if !errors.Is(err, ErrWalletInvalidAmount) {
		t.Fatalf("expected invalid amount, got: %v", err)
	}
	_, err = svc.Credit(WalletCreditInput{UserID: 999, Amount: models.NewMoneyFromInt(10), Reference: "r2"})
	if !errors.Is(err, ErrWalletUserNotFound) {
		t.Fatalf("expected user not found, got: %v", err)
	}
}

func TestWalletDebitInsufficientBalance(t *testing.T) {
	svc, db := setupWalletServiceTest(t)
	createWalletTestUser(t, db, 203, 50)

	_, err := svc.Debit(WalletDebitInput{
		UserID:    203,
		Amount:    models.NewMoneyFromInt(80),
		Source:    constants.WalletTxnSourceAdmin,
		Reference: "admin:debit:unit-1",
	})
	if !errors.Is(err, ErrWalletInsufficientBalance) {
		t.Fatalf("expected insufficient balance, got: %v", err)
	}

	// 扣款失败后余额保持不变，流水也不落库
	balance, err := svc.GetBalance(203)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if !balance.Decimal.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected balance 50, got %s", balance.String())
	}
	var count int64
	if err := db.Model(&models.WalletTransaction{}).Where("user_id = ?", 203).Count(&count).Error; err != nil {
		t.Fatalf("count transactions failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no transactions, got %d", count)
	}
}

func TestWalletDebitSuccess(t *testing.T) {
	svc, db := setupWalletServiceTest(t)
	createWalletTestUser(t, db, 204, 200)

	txn, err := svc.Debit(WalletDebitInput{
		UserID:      204,
		Amount:      models.NewMoneyFromInt(75),
		Source:      constants.WalletTxnSourceAdmin,
		Reference:   "admin:debit:unit-2",
		Description: "manual adjustment",
	})
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if txn.Type != constants.WalletTxnTypeDebit || !txn.Balance.Decimal.Equal(decimal.NewFromInt(125)) {
		t.Fatalf("unexpected transaction: %+v", txn)
	}

	balance, err := svc.GetBalance(204)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if !balance.Decimal.Equal(decimal.NewFromInt(125)) {
		t.Fatalf("expected balance 125, got %s", balance.String())
	}
}

func TestWalletRedeemGiftCard(t *testing.T) {
	svc, db := setupWalletServiceTest(t)
	createWalletTestUser(t, db, 205, 10)

	txn, err := svc.RedeemGiftCard(205, "abcd1234efgh5678")
	if err != nil {
		t.Fatalf("redeem failed: %v", err)
	}
	if txn.Type != constants.WalletTxnTypeGiftCard || !txn.Amount.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected transaction: %+v", txn)
	}
	if txn.GiftCardCode == nil || *txn.GiftCardCode != "ABCD1234EFGH5678" {
		t.Fatalf("expected uppercase gift card code, got %+v", txn.GiftCardCode)
	}
	if txn.Reference != "gift_card:ABCD1234EFGH5678" {
		t.Fatalf("unexpected reference: %s", txn.Reference)
	}

	// 同一张卡不能二次兑换，换个用户也不行
	if _, err := svc.RedeemGiftCard(205, "ABCD1234EFGH5678"); !errors.Is(err, ErrGiftCardRedeemed) {
		t.Fatalf("expected already redeemed, got: %v", err)
	}
	createWalletTestUser(t, db, 206, 0)
	if _, err := svc.RedeemGiftCard(206, "ABCD1234EFGH5678"); !errors.Is(err, ErrGiftCardRedeemed) {
		t.Fatalf("expected already redeemed for other user, got: %v", err)
	}

	balance, err := svc.GetBalance(205)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if !balance.Decimal.Equal(decimal.NewFromInt(110)) {
		t.Fatalf("expected balance 110, got %s", balance.String())
	}
}

func TestWalletRedeemGiftCardFormat(t *testing.T) {
	svc, db := setupWalletServiceTest(t)
	createWalletTestUser(t, db, 207, 0)

	for _, code := range []string{"", "SHORT", "ABCD-1234-EFGH-5678", "abcd1234efgh567"} {
		if _, err := svc.RedeemGiftCard(207, code); !errors.Is(err, ErrGiftCardCodeFormat) {
			t.Fatalf("expected format error for %q, got: %v", code, err)
		}
	}
}

func TestWalletCreditCashback(t *testing.T) {
	svc, db := setupWalletServiceTest(t)
	createWalletTestUser(t, db, 208, 0)

	txn, err := svc.CreditCashback(208, 5001, models.NewMoneyFromInt(2500))
	if err != nil {
		t.Fatalf("cashback failed: %v", err)
	}
	// 2500 * 2% = 50
	if txn.Type != constants.WalletTxnTypeCashback || !txn.Amount.Decimal.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("unexpected transaction: %+v", txn)
	}
	if txn.Reference != "cashback:order:5001" {
		t.Fatalf("unexpected reference: %s", txn.Reference)
	}

	// 同一订单重复投递只入账一次
	repeat, err := svc.CreditCashback(208, 5001, models.NewMoneyFromInt(2500))
	if err != nil {
		t.Fatalf("repeat cashback failed: %v", err)
	}
	if repeat.ID != txn.ID {
		t.Fatalf("expected same transaction, got %d and %d", txn.ID, repeat.ID)
	}
	balance, err := svc.GetBalance(208)
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if !balance.Decimal.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected balance 50, got %s", balance.String())
	}
}

func TestWalletCreditCashbackDisabled(t *testing.T) {
	_, db := setupWalletServiceTest(t)
	createWalletTestUser(t, db, 209, 0)
	userRepo := repository.NewUserRepository(db)
	txnRepo := repository.NewWalletTransactionRepository(db)
	svc := NewWalletService(userRepo, txnRepo, models.NewMoneyFromInt(100), 0)

	txn, err := svc.CreditCashback(209, 5002, models.NewMoneyFromInt(1000))
	if err != nil {
		t.Fatalf("cashback failed: %v", err)
	}
	if txn != nil {
		t.Fatalf("expected no transaction when cashback disabled, got %+v", txn)
	}
}

func TestWalletCreditRefund(t *testing.T) {
	svc, db := setupWalletServiceTest(t)
	createWalletTestUser(t, db, 210, 0)

	txn, err := svc.CreditRefund(210, 5003, models.NewMoneyFromInt(450))
	if err != nil {
		t.Fatalf("refund failed: %v", err)
	}
	if txn.Type != constants.WalletTxnTypeRefund || txn.Reference != "refund:order:5003" {
		t.Fatalf("unexpected transaction: %+v", txn)
	}
	if txn.OrderID == nil || *txn.OrderID != 5003 {
		t.Fatalf("expected order id 5003, got %+v", txn.OrderID)
	}

	repeat, err := svc.CreditRefund(210, 5003, models.NewMoneyFromInt(450))
	if err != nil {
		t.Fatalf("repeat refund failed: %v", err)
	}
	if repeat.ID != txn.ID {
		t.Fatalf("expected same transaction, got %d and %d", txn.ID, repeat.ID)
	}
}
