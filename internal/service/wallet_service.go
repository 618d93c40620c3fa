package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/bazaar-next/internal/constants"
	"github.com/bazaar-next/internal/models"
	"github.com/bazaar-next/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var giftCardCodePattern = regexp.MustCompile(`^[A-Z0-9]{16}$`)

// WalletService 钱包服务，余额挂在用户表上，所有变动都带流水。
type WalletService struct {
	userRepo        repository.UserRepository
	txnRepo         repository.WalletTransactionRepository
	giftCardAmount  models.Money
	cashbackPercent int
}

// WalletCreditInput 钱包入账输入
type WalletCreditInput struct {
	UserID      uint
	Amount      models.Money
	TxnType     string
	Source      string
	Reference   string
	Description string
	OrderID     *uint
}

// WalletDebitInput 钱包扣款输入
type WalletDebitInput struct {
	UserID      uint
	Amount      models.Money
	Source      string
	Reference   string
	Description string
	OrderID     *uint
}

// NewWalletService 创建钱包服务
func NewWalletService(
	userRepo repository.UserRepository,
	txnRepo repository.WalletTransactionRepository,
	giftCardAmount models.Money,
	cashbackPercent int,
) *WalletService {
	return &WalletService{
		userRepo:        userRepo,
		txnRepo:         txnRepo,
		giftCardAmount:  giftCardAmount,
		cashbackPercent: cashbackPercent,
	}
}

// GetBalance 查询用户钱包余额
func (s *WalletService) GetBalance(userID uint) (models.Money, error) {
	if userID == 0 {
		return models.Money{}, ErrWalletUserNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return models.Money{}, err
	}
	if user == nil {
		return models.Money{}, ErrWalletUserNotFound
	}
	return user.WalletBalance, nil
}

// ListTransactions 分页查询钱包流水
func (s *WalletService) ListTransactions(filter repository.WalletTransactionListFilter) ([]models.WalletTransaction, int64, error) {
	return s.txnRepo.List(filter)
}

// GetLatestTransaction 查询用户最近一笔流水，无流水时返回 nil。
func (s *WalletService) GetLatestTransaction(userID uint) (*models.WalletTransaction, error) {
	if userID == 0 {
		return nil, ErrWalletUserNotFound
	}
	return s.txnRepo.GetLatestByUser(userID)
}

// Credit 钱包入账，同一 Reference 只入账一次。
func (s *WalletService) Credit(input WalletCreditInput) (*models.WalletTransaction, error) {
	var txn *models.WalletTransaction
	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		result, err := s.CreditInTx(tx, input)
		if err != nil {
			return err
		}
		txn = result
		return nil
	}); err != nil {
		return nil, err
	}
	return txn, nil
}

// CreditInTx 在事务内执行钱包入账并写入唯一引用流水
func (s *WalletService) CreditInTx(tx *gorm.DB, input WalletCreditInput) (*models.WalletTransaction, error) {
	if tx == nil {
		return nil, ErrWalletUpdateFailed
	}
	if input.UserID == 0 {
		return nil, ErrWalletUserNotFound
	}
	amount := input.Amount.Decimal.Round(2)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrWalletInvalidAmount
	}
	reference := strings.TrimSpace(input.Reference)
	if reference == "" {
		reference = buildWalletReference("credit", input.UserID)
	}
	txnType := strings.TrimSpace(input.TxnType)
	if txnType == "" {
		txnType = constants.WalletTxnTypeCredit
	}

	userRepo := s.userRepo.WithTx(tx)
	txnRepo := s.txnRepo.WithTx(tx)

	exists, err := txnRepo.GetByReference(reference)
	if err != nil {
		return nil, err
	}
	if exists != nil {
		return exists, nil
	}

	user, err := userRepo.GetByIDForUpdate(input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrWalletUserNotFound
	}

	after := user.WalletBalance.Decimal.Round(2).Add(amount)
	if err := userRepo.CreditBalance(input.UserID, models.NewMoneyFromDecimal(amount)); err != nil {
		return nil, ErrWalletUpdateFailed
	}

	now := time.Now()
	txn := &models.WalletTransaction{
		UserID:      input.UserID,
		Type:        txnType,
		Amount:      models.NewMoneyFromDecimal(amount),
		Balance:     models.NewMoneyFromDecimal(after),
		Description: strings.TrimSpace(input.Description),
		Source:      strings.TrimSpace(input.Source),
		OrderID:     input.OrderID,
		Reference:   reference,
		Status:      constants.WalletTxnStatusCompleted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := txnRepo.Create(txn); err != nil {
		return nil, ErrWalletTransactionCreateFailed
	}
	return txn, nil
}

// Debit 钱包扣款，余额不足直接拒绝。
// 扣减条件写进 UPDATE 的 WHERE 子句，并发扣款不会把余额扣成负数。
func (s *WalletService) Debit(input WalletDebitInput) (*models.WalletTransaction, error) {
	if input.UserID == 0 {
		return nil, ErrWalletUserNotFound
	}
	amount := input.Amount.Decimal.Round(2)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrWalletInvalidAmount
	}
	reference := strings.TrimSpace(input.Reference)
	if reference == "" {
		reference = buildWalletReference("debit", input.UserID)
	}

	var txn *models.WalletTransaction
	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		userRepo := s.userRepo.WithTx(tx)
		txnRepo := s.txnRepo.WithTx(tx)

		exists, err := txnRepo.GetByReference(reference)
		if err != nil {
			return err
		}
		if exists != nil {
			txn = exists
			return nil
		}

		user, err := userRepo.GetByIDForUpdate(input.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrWalletUserNotFound
		}

		debited, err := userRepo.DebitBalanceIfSufficient(input.UserID, models.NewMoneyFromDecimal(amount))
		if err != nil {
			return ErrWalletUpdateFailed
		}
		if !debited {
			return ErrWalletInsufficientBalance
		}

		after := user.WalletBalance.Decimal.Round(2).Sub(amount)
		now := time.Now()
		record := &models.WalletTransaction{
			UserID:      input.UserID,
			Type:        constants.WalletTxnTypeDebit,
			Amount:      models.NewMoneyFromDecimal(amount),
			Balance:     models.NewMoneyFromDecimal(after),
			Description: strings.TrimSpace(input.Description),
			Source:      strings.TrimSpace(input.Source),
			OrderID:     input.OrderID,
			Reference:   reference,
			Status:      constants.WalletTxnStatusCompleted,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := txnRepo.Create(record); err != nil {
			return ErrWalletTransactionCreateFailed
		}
		txn = record
		return nil
	}); err != nil {
		return nil, err
	}
	return txn, nil
}

// RedeemGiftCard 兑换礼品卡：16 位大写字母数字码，同一码只能兑换一次。
func (s *WalletService) RedeemGiftCard(userID uint, code string) (*models.WalletTransaction, error) {
	if userID == 0 {
		return nil, ErrWalletUserNotFound
	}
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if !giftCardCodePattern.MatchString(normalized) {
		return nil, ErrGiftCardCodeFormat
	}

	var txn *models.WalletTransaction
	if err := models.DB.Transaction(func(tx *gorm.DB) error {
		userRepo := s.userRepo.WithTx(tx)
		txnRepo := s.txnRepo.WithTx(tx)

		redeemed, err := txnRepo.GetByGiftCardCode(normalized)
		if err != nil {
			return err
		}
		if redeemed != nil {
			return ErrGiftCardRedeemed
		}

		user, err := userRepo.GetByIDForUpdate(userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrWalletUserNotFound
		}

		amount := s.giftCardAmount.Decimal.Round(2)
		if amount.LessThanOrEqual(decimal.Zero) {
			return ErrWalletInvalidAmount
		}
		after := user.WalletBalance.Decimal.Round(2).Add(amount)
		if err := userRepo.CreditBalance(userID, models.NewMoneyFromDecimal(amount)); err != nil {
			return ErrWalletUpdateFailed
		}

		now := time.Now()
		record := &models.WalletTransaction{
			UserID:       userID,
			Type:         constants.WalletTxnTypeGiftCard,
			Amount:       models.NewMoneyFromDecimal(amount),
			Balance:      models.NewMoneyFromDecimal(after),
			Description:  fmt.Sprintf("礼品卡兑换：%s", normalized),
			Source:       constants.WalletTxnSourceGiftCard,
			GiftCardCode: &normalized,
			Reference:    fmt.Sprintf("gift_card:%s", normalized),
			Status:       constants.WalletTxnStatusCompleted,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		// gift_card_code 上的唯一索引兜底并发兑换
		if err := txnRepo.Create(record); err != nil {
			return ErrGiftCardRedeemed
		}
		txn = record
		return nil
	}); err != nil {
		return nil, err
	}
	return txn, nil
}

// CreditCashback 订单返现入账，按订单号幂等。
func (s *WalletService) CreditCashback(userID, orderID uint, orderAmount models.Money) (*models.WalletTransaction, error) {
	if s.cashbackPercent <= 0 {
		return nil, nil
	}
	percent := decimal.NewFromInt(int64(s.cashbackPercent)).Div(decimal.NewFromInt(100))
	amount := orderAmount.Decimal.Mul(percent).Round(2)
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, nil
	}
	return s.Credit(WalletCreditInput{
		UserID:      userID,
		Amount:      models.NewMoneyFromDecimal(amount),
		TxnType:     constants.WalletTxnTypeCashback,
		Source:      constants.WalletTxnSourceCashback,
		Reference:   fmt.Sprintf("cashback:order:%d", orderID),
		Description: fmt.Sprintf("订单返现：%d", orderID),
		OrderID:     &orderID,
	})
}

// CreditRefund 订单退款入账，按订单号幂等。
func (s *WalletService) CreditRefund(userID, orderID uint, amount models.Money) (*models.WalletTransaction, error) {
	return s.Credit(WalletCreditInput{
		UserID:      userID,
		Amount:      amount,
		TxnType:     constants.WalletTxnTypeRefund,
		Source:      constants.WalletTxnSourceOrderRefund,
		Reference:   fmt.Sprintf("refund:order:%d", orderID),
		Description: fmt.Sprintf("订单退款：%d", orderID),
		OrderID:     &orderID,
	})
}

func buildWalletReference(prefix string, id uint) string {
	normalized := strings.TrimSpace(prefix)
	if normalized == "" {
		normalized = "wallet"
	}
	return fmt.Sprintf("%s:%d:%d", normalized, id, time.Now().UnixNano())
}
