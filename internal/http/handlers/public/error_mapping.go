package public

import (
	"errors"

	"github.com/bazaar-next/internal/http/response"
	"github.com/bazaar-next/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target error
	code   int
	key    string
}

func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError, fallbackCode int, fallbackKey string) {
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			respondError(c, rule.code, rule.key, nil)
			return
		}
	}
	respondError(c, fallbackCode, fallbackKey, err)
}

var walletOperationErrorRules = []mappedHandlerError{
	{target: service.ErrWalletUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrWalletInvalidAmount, code: response.CodeBadRequest, key: "error.wallet_invalid_amount"},
	{target: service.ErrWalletInsufficientBalance, code: response.CodeBadRequest, key: "error.wallet_insufficient_balance"},
}

var giftCardRedeemErrorRules = []mappedHandlerError{
	{target: service.ErrGiftCardCodeFormat, code: response.CodeBadRequest, key: "error.gift_card_code_format"},
	{target: service.ErrGiftCardRedeemed, code: response.CodeBadRequest, key: "error.gift_card_redeemed"},
	{target: service.ErrWalletUserNotFound, code: response.CodeNotFound, key: "error.user_not_found"},
	{target: service.ErrWalletInvalidAmount, code: response.CodeBadRequest, key: "error.wallet_invalid_amount"},
}

func respondWalletOperationError(c *gin.Context, err error) {
	respondWithMappedError(c, err, walletOperationErrorRules, response.CodeInternal, "error.wallet_update_failed")
}

func respondGiftCardRedeemError(c *gin.Context, err error) {
	respondWithMappedError(c, err, giftCardRedeemErrorRules, response.CodeInternal, "error.gift_card_failed")
}
