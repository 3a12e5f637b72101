package service

import (
	"strings"
	"time"

	"github.com/devlegal/internal/config"

	"github.com/mojocn/base64Captcha"
)

const captchaSource = "23456789abcdefghjkmnpqrstuvwxyz"

// CaptchaChallenge 图片验证码挑战
type CaptchaChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService 图片验证码服务，用于评论与联系表单
type CaptchaService struct {
	enabled bool
	captcha *base64Captcha.Captcha
	store   base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	cfg = normalizeCaptchaConfig(cfg)
	store := base64Captcha.NewMemoryStore(cfg.MaxStore, time.Duration(cfg.ExpireSeconds)*time.Second)
	driver := base64Captcha.NewDriverString(
		cfg.Height, cfg.Width, 0,
		base64Captcha.OptionShowHollowLine,
		cfg.Length, captchaSource,
		nil, base64Captcha.DefaultEmbeddedFonts, nil,
	)
	return &CaptchaService{
		enabled: cfg.Enabled,
		captcha: base64Captcha.NewCaptcha(driver, store),
		store:   store,
	}
}

// Enabled 是否启用
func (s *CaptchaService) Enabled() bool {
	return s != nil && s.enabled
}

// Generate 生成图片验证码
func (s *CaptchaService) Generate() (*CaptchaChallenge, error) {
	if !s.Enabled() {
		return nil, ErrCaptchaDisabled
	}
	id, b64s, _, err := s.captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// Verify 校验验证码；未启用时直接通过
func (s *CaptchaService) Verify(captchaID, code string) error {
	if !s.Enabled() {
		return nil
	}
	captchaID, code = strings.TrimSpace(captchaID), strings.ToLower(strings.TrimSpace(code))
	if captchaID == "" || code == "" {
		return ErrCaptchaRequired
	}
	// 一次性：无论成败都清除
	if !s.store.Verify(captchaID, code, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func normalizeCaptchaConfig(cfg config.CaptchaConfig) config.CaptchaConfig {
	cfg.Length = clampOr(cfg.Length, 4, 8, 5)
	cfg.Width = clampOr(cfg.Width, 80, 640, 240)
	cfg.Height = clampOr(cfg.Height, 30, 240, 80)
	if cfg.ExpireSeconds <= 0 {
		cfg.ExpireSeconds = 300
	}
	if cfg.MaxStore <= 0 {
		cfg.MaxStore = 10240
	}
	return cfg
}

// clampOr 超出 [lo, hi] 时使用 fallback
func clampOr(value, lo, hi, fallback int) int {
	if value < lo || value > hi {
		return fallback
	}
	return value
}
