package public

import (
	"strings"

	"github.com/bazaar-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RedeemGiftCardRequest 兑换礼品卡请求
type RedeemGiftCardRequest struct {
	Code           string                `json:"code" binding:"required"`
	CaptchaPayload CaptchaPayloadRequest `json:"captcha_payload"`
}

// RedeemGiftCard 用户兑换礼品卡
func (h *Handler) RedeemGiftCard(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req RedeemGiftCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	if !h.verifyCaptcha(c, req.CaptchaPayload) {
		return
	}

	txn, err := h.WalletService.RedeemGiftCard(uid, strings.TrimSpace(req.Code))
	if err != nil {
		respondGiftCardRedeemError(c, err)
		return
	}

	response.Success(c, gin.H{
		"transaction":  txn,
		"balance":      txn.Balance,
		"wallet_delta": txn.Amount,
	})
}
