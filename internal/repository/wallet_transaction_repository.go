package repository

import (
	"errors"
	"strings"

	"github.com/bazaar-next/internal/models"

	"gorm.io/gorm"
)

// WalletTransactionRepository 钱包流水数据访问接口
type WalletTransactionRepository interface {
	Create(txn *models.WalletTransaction) error
	GetByReference(reference string) (*models.WalletTransaction, error)
	GetByGiftCardCode(code string) (*models.WalletTransaction, error)
	GetLatestByUser(userID uint) (*models.WalletTransaction, error)
	List(filter WalletTransactionListFilter) ([]models.WalletTransaction, int64, error)
	WithTx(tx *gorm.DB) *GormWalletTransactionRepository
}

// GormWalletTransactionRepository GORM 实现
type GormWalletTransactionRepository struct {
	db *gorm.DB
}

// NewWalletTransactionRepository 创建钱包流水仓库
func NewWalletTransactionRepository(db *gorm.DB) *GormWalletTransactionRepository {
	return &GormWalletTransactionRepository{db: db}
}

// WithTx 绑定事务
func (r *GormWalletTransactionRepository) WithTx(tx *gorm.DB) *GormWalletTransactionRepository {
	if tx == nil {
		return r
	}
	return &GormWalletTransactionRepository{db: tx}
}

// Create 创建钱包流水
func (r *GormWalletTransactionRepository) Create(txn *models.WalletTransaction) error {
	return r.db.Create(txn).Error
}

// GetByReference 按幂等引用获取流水
func (r *GormWalletTransactionRepository) GetByReference(reference string) (*models.WalletTransaction, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, nil
	}
	var txn models.WalletTransaction
	if err := r.db.Where("reference = ?", reference).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

// GetByGiftCardCode 按礼品卡码获取兑换流水
func (r *GormWalletTransactionRepository) GetByGiftCardCode(code string) (*models.WalletTransaction, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	var txn models.WalletTransaction
	if err := r.db.Where("gift_card_code = ?", code).First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

// GetLatestByUser 获取用户最近一笔流水
func (r *GormWalletTransactionRepository) GetLatestByUser(userID uint) (*models.WalletTransaction, error) {
	if userID == 0 {
		return nil, nil
	}
	var txn models.WalletTransaction
	if err := r.db.Where("user_id = ?", userID).Order("id desc").First(&txn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &txn, nil
}

// List 分页查询钱包流水
func (r *GormWalletTransactionRepository) List(filter WalletTransactionListFilter) ([]models.WalletTransaction, int64, error) {
	query := r.db.Model(&models.WalletTransaction{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.OrderID != 0 {
		query = query.Where("order_id = ?", filter.OrderID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Source != "" {
		query = query.Where("source = ?", filter.Source)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var txns []models.WalletTransaction
	if err := query.Order("id desc").Find(&txns).Error; err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}
