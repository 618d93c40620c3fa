package service

import (
	"strings"
	"sync"
	"time"

	"github.com/bazaar-next/internal/config"

	"github.com/mojocn/base64Captcha"
)

const captchaStoreMaxEntries = 10240

// CaptchaVerifyPayload 验证码校验请求载荷
type CaptchaVerifyPayload struct {
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService 图片验证码服务
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu    sync.Mutex
	store base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: cfg}
}

// Enabled 判断验证码是否开启
func (s *CaptchaService) Enabled() bool {
	return s != nil && s.cfg.Enabled
}

// GenerateImageChallenge 生成图片验证码
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	if !s.Enabled() {
		return nil, ErrCaptchaInvalid
	}

	driver := base64Captcha.NewDriverString(
		s.resolveHeight(),
		s.resolveWidth(),
		s.cfg.NoiseCount,
		base64Captcha.OptionShowHollowLine,
		s.resolveLength(),
		"0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.ensureStore())
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}

	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify 校验验证码，未开启时直接放行。
func (s *CaptchaService) Verify(payload CaptchaVerifyPayload) error {
	if !s.Enabled() {
		return nil
	}
	captchaID := strings.TrimSpace(payload.CaptchaID)
	captchaCode := strings.TrimSpace(payload.CaptchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaRequired
	}
	if !s.ensureStore().Verify(captchaID, captchaCode, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func (s *CaptchaService) ensureStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		expire := time.Duration(s.cfg.ExpireSeconds) * time.Second
		if expire <= 0 {
			expire = 5 * time.Minute
		}
		s.store = base64Captcha.NewMemoryStore(captchaStoreMaxEntries, expire)
	}
	return s.store
}

func (s *CaptchaService) resolveLength() int {
	if s.cfg.Length < 4 || s.cfg.Length > 8 {
		return 5
	}
	return s.cfg.Length
}

func (s *CaptchaService) resolveWidth() int {
	if s.cfg.Width <= 0 {
		return 240
	}
	return s.cfg.Width
}

func (s *CaptchaService) resolveHeight() int {
	if s.cfg.Height <= 0 {
		return 80
	}
	return s.cfg.Height
}
