package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/bazaar-next/internal/constants"
	"github.com/bazaar-next/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupUserRepositoryTest(t *testing.T) (*GormUserRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:user_repo_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	return NewUserRepository(db), db
}

func createRepoTestUser(t *testing.T, db *gorm.DB, email string, balance int64) *models.User {
	t.Helper()
	user := models.User{
		Email:         email,
		PasswordHash:  "hash",
		Status:        constants.UserStatusActive,
		WalletBalance: models.NewMoneyFromInt(balance),
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return &user
}

func TestUserRepositoryDebitBalanceIfSufficient(t *testing.T) {
	repo, db := setupUserRepositoryTest(t)
	user := createRepoTestUser(t, db, "debit_repo@example.in", 100)

	debited, err := repo.DebitBalanceIfSufficient(user.ID, models.NewMoneyFromInt(60))
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if !debited {
		t.Fatalf("expected debit to succeed")
	}

	// 余额不足时条件更新不生效
	debited, err = repo.DebitBalanceIfSufficient(user.ID, models.NewMoneyFromInt(60))
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if debited {
		t.Fatalf("expected debit beyond balance to be rejected")
	}

	refreshed, err := repo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if !refreshed.WalletBalance.Decimal.Equal(decimal.NewFromInt(40)) {
		t.Fatalf("expected balance 40, got %s", refreshed.WalletBalance.String())
	}
}

func TestUserRepositoryDebitExactBalance(t *testing.T) {
	repo, db := setupUserRepositoryTest(t)
	user := createRepoTestUser(t, db, "debit_exact@example.in", 50)

	debited, err := repo.DebitBalanceIfSufficient(user.ID, models.NewMoneyFromInt(50))
	if err != nil {
		t.Fatalf("debit failed: %v", err)
	}
	if !debited {
		t.Fatalf("expected debit of exact balance to succeed")
	}

	refreshed, err := repo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if !refreshed.WalletBalance.Decimal.IsZero() {
		t.Fatalf("expected zero balance, got %s", refreshed.WalletBalance.String())
	}
}

func TestUserRepositoryCreditBalance(t *testing.T) {
	repo, db := setupUserRepositoryTest(t)
	user := createRepoTestUser(t, db, "credit_repo@example.in", 10)

	if err := repo.CreditBalance(user.ID, models.NewMoneyFromInt(90)); err != nil {
		t.Fatalf("credit failed: %v", err)
	}

	refreshed, err := repo.GetByID(user.ID)
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if !refreshed.WalletBalance.Decimal.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected balance 100, got %s", refreshed.WalletBalance.String())
	}
}

func TestUserRepositoryGetByEmail(t *testing.T) {
	repo, db := setupUserRepositoryTest(t)
	user := createRepoTestUser(t, db, "lookup@example.in", 0)

	found, err := repo.GetByEmail("lookup@example.in")
	if err != nil {
		t.Fatalf("get by email failed: %v", err)
	}
	if found == nil || found.ID != user.ID {
		t.Fatalf("unexpected user: %+v", found)
	}

	missing, err := repo.GetByEmail("missing@example.in")
	if err != nil {
		t.Fatalf("get missing failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expected nil for missing email, got %+v", missing)
	}
}
