package public

import (
	"strconv"
	"strings"

	"github.com/bazaar-next/internal/http/response"
	"github.com/bazaar-next/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetMyWallet 获取当前用户钱包余额
func (h *Handler) GetMyWallet(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	balance, err := h.WalletService.GetBalance(uid)
	if err != nil {
		respondWalletOperationError(c, err)
		return
	}
	latest, err := h.WalletService.GetLatestTransaction(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "error.wallet_fetch_failed", err)
		return
	}
	response.Success(c, gin.H{
		"user_id":            uid,
		"balance":            balance,
		"latest_transaction": latest,
	})
}

// GetMyWalletTransactions 获取当前用户钱包流水
func (h *Handler) GetMyWalletTransactions(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	transactions, total, err := h.WalletService.ListTransactions(repository.WalletTransactionListFilter{
		Page:     page,
		PageSize: pageSize,
		UserID:   uid,
		Type:     strings.TrimSpace(c.Query("type")),
		Source:   strings.TrimSpace(c.Query("source")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.wallet_fetch_failed", err)
		return
	}

	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, transactions, pagination)
}
