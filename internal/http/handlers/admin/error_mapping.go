package admin

import (
	"errors"

	"github.com/bazaar-next/internal/http/response"
	"github.com/bazaar-next/internal/service"

	"github.com/gin-gonic/gin"
)

func respondWalletOperationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWalletUserNotFound):
		respondError(c, response.CodeNotFound, "error.user_not_found", nil)
	case errors.Is(err, service.ErrWalletInvalidAmount):
		respondError(c, response.CodeBadRequest, "error.wallet_invalid_amount", nil)
	case errors.Is(err, service.ErrWalletInsufficientBalance):
		respondError(c, response.CodeBadRequest, "error.wallet_insufficient_balance", nil)
	default:
		respondError(c, response.CodeInternal, "error.wallet_update_failed", err)
	}
}
