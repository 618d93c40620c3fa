package public

import (
	"errors"

	"github.com/bazaar-next/internal/http/response"
	"github.com/bazaar-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetImageCaptcha 获取图片验证码挑战
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	if h.CaptchaService == nil || !h.CaptchaService.Enabled() {
		respondError(c, response.CodeBadRequest, "error.captcha_unavailable", nil)
		return
	}

	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCaptchaInvalid):
			respondError(c, response.CodeBadRequest, "error.captcha_unavailable", nil)
		default:
			respondError(c, response.CodeInternal, "error.captcha_generate_failed", err)
		}
		return
	}

	response.Success(c, gin.H{
		"captcha_id":   challenge.CaptchaID,
		"image_base64": challenge.ImageBase64,
	})
}

func (h *Handler) verifyCaptcha(c *gin.Context, payload CaptchaPayloadRequest) bool {
	if h.CaptchaService == nil {
		return true
	}
	captchaErr := h.CaptchaService.Verify(payload.toServicePayload())
	if captchaErr == nil {
		return true
	}
	switch {
	case errors.Is(captchaErr, service.ErrCaptchaRequired):
		respondError(c, response.CodeBadRequest, "error.captcha_required", nil)
	case errors.Is(captchaErr, service.ErrCaptchaInvalid):
		respondError(c, response.CodeBadRequest, "error.captcha_invalid", nil)
	default:
		respondError(c, response.CodeInternal, "error.captcha_verify_failed", captchaErr)
	}
	return false
}
