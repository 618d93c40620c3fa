package repository

import (
	"errors"

	"github.com/bazaar-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByEmail(email string) (*models.User, error)
	GetByID(id uint) (*models.User, error)
	GetByIDForUpdate(id uint) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	List(filter UserListFilter) ([]models.User, int64, error)
	CreditBalance(id uint, amount models.Money) error
	DebitBalanceIfSufficient(id uint, amount models.Money) (bool, error)
	IncrementOrderCount(id uint) error
	WithTx(tx *gorm.DB) *GormUserRepository
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// WithTx 绑定事务
func (r *GormUserRepository) WithTx(tx *gorm.DB) *GormUserRepository {
	if tx == nil {
		return r
	}
	return &GormUserRepository{db: tx}
}

// GetByEmail 根据邮箱获取用户
func (r *GormUserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByIDForUpdate 根据 ID 获取用户并加行锁，需在事务内调用。
func (r *GormUserRepository) GetByIDForUpdate(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update 更新用户
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// List 用户列表
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if filter.Keyword != "" {
		like := "%" + filter.Keyword + "%"
		query = query.Where("email LIKE ? OR display_name LIKE ?", like, like)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	var users []models.User
	if err := query.Order("id DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// CreditBalance 增加钱包余额
func (r *GormUserRepository) CreditBalance(id uint, amount models.Money) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance + ?", amount.Decimal)).Error
}

// DebitBalanceIfSufficient 条件扣减钱包余额，余额不足时不生效。
// 扣减条件写进 WHERE 子句，并发扣款也不会把余额扣成负数。
func (r *GormUserRepository) DebitBalanceIfSufficient(id uint, amount models.Money) (bool, error) {
	result := r.db.Model(&models.User{}).
		Where("id = ?", id).
		Where("wallet_balance >= ?", amount.Decimal).
		UpdateColumn("wallet_balance", gorm.Expr("wallet_balance - ?", amount.Decimal))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IncrementOrderCount 增加用户订单计数
func (r *GormUserRepository) IncrementOrderCount(id uint) error {
	return r.db.Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("order_count", gorm.Expr("order_count + ?", 1)).Error
}
