package admin

import (
	"strconv"
	"strings"
	"time"

	"github.com/bazaar-next/internal/constants"
	"github.com/bazaar-next/internal/http/response"
	"github.com/bazaar-next/internal/models"
	"github.com/bazaar-next/internal/repository"
	"github.com/bazaar-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AdminWalletMutationRequest 管理端余额调整请求
type AdminWalletMutationRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Reference   string `json:"reference"`
	Description string `json:"description"`
	OrderID     *uint  `json:"order_id"`
}

// GetAdminUserWallet 管理端获取用户钱包信息
func (h *Handler) GetAdminUserWallet(c *gin.Context) {
	userID, ok := parsePathUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.user_id_invalid", nil)
		return
	}
	user, err := h.UserRepo.GetByID(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.user_fetch_failed", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		return
	}
	response.Success(c, gin.H{
		"user":    user,
		"balance": user.WalletBalance,
	})
}

// GetAdminWalletTransactions 管理端查询钱包流水
func (h *Handler) GetAdminWalletTransactions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	filter := repository.WalletTransactionListFilter{
		Page:     page,
		PageSize: pageSize,
		Type:     strings.TrimSpace(c.Query("type")),
		Source:   strings.TrimSpace(c.Query("source")),
		Status:   strings.TrimSpace(c.Query("status")),
	}
	if rawUserID := strings.TrimSpace(c.Query("user_id")); rawUserID != "" {
		parsed, err := strconv.ParseUint(rawUserID, 10, 64)
		if err != nil || parsed == 0 {
			respondError(c, response.CodeBadRequest, "error.user_id_invalid", err)
			return
		}
		filter.UserID = uint(parsed)
	}
	if rawOrderID := strings.TrimSpace(c.Query("order_id")); rawOrderID != "" {
		parsed, err := strconv.ParseUint(rawOrderID, 10, 64)
		if err != nil || parsed == 0 {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		filter.OrderID = uint(parsed)
	}
	if rawFrom := strings.TrimSpace(c.Query("created_from")); rawFrom != "" {
		parsed, err := time.Parse(time.RFC3339, rawFrom)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		filter.CreatedFrom = &parsed
	}
	if rawTo := strings.TrimSpace(c.Query("created_to")); rawTo != "" {
		parsed, err := time.Parse(time.RFC3339, rawTo)
		if err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
		filter.CreatedTo = &parsed
	}

	transactions, total, err := h.WalletService.ListTransactions(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.wallet_fetch_failed", err)
		return
	}
	pagination := response.BuildPagination(page, pageSize, total)
	response.SuccessWithPage(c, transactions, pagination)
}

// CreditAdminUserWallet 管理端给用户钱包加款
func (h *Handler) CreditAdminUserWallet(c *gin.Context) {
	userID, ok := parsePathUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.user_id_invalid", nil)
		return
	}
	var req AdminWalletMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	txn, err := h.WalletService.Credit(service.WalletCreditInput{
		UserID:      userID,
		Amount:      models.NewMoneyFromDecimal(amount),
		TxnType:     constants.WalletTxnTypeCredit,
		Source:      constants.WalletTxnSourceAdmin,
		Reference:   strings.TrimSpace(req.Reference),
		Description: strings.TrimSpace(req.Description),
		OrderID:     req.OrderID,
	})
	if err != nil {
		respondWalletOperationError(c, err)
		return
	}

	response.Success(c, gin.H{
		"transaction": txn,
		"balance":     txn.Balance,
	})
}

// DebitAdminUserWallet 管理端从用户钱包扣款
func (h *Handler) DebitAdminUserWallet(c *gin.Context) {
	userID, ok := parsePathUint(c, "id")
	if !ok {
		respondError(c, response.CodeBadRequest, "error.user_id_invalid", nil)
		return
	}
	var req AdminWalletMutationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	txn, err := h.WalletService.Debit(service.WalletDebitInput{
		UserID:      userID,
		Amount:      models.NewMoneyFromDecimal(amount),
		Source:      constants.WalletTxnSourceAdmin,
		Reference:   strings.TrimSpace(req.Reference),
		Description: strings.TrimSpace(req.Description),
		OrderID:     req.OrderID,
	})
	if err != nil {
		respondWalletOperationError(c, err)
		return
	}

	response.Success(c, gin.H{
		"transaction": txn,
		"balance":     txn.Balance,
	})
}
