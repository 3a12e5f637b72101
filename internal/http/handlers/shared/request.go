package shared

import (
	"strings"

	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
)

// 返回 JSON 而非页面的路径前缀
var jsonPathPrefixes = []string{"/api/", "/news-links/api", "/documents/", "/admin/upload"}

// IsJSONPath 路径是否属于 JSON 接口
func IsJSONPath(path string) bool {
	for _, prefix := range jsonPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// WantsJSON 请求是否期望 JSON 响应
func WantsJSON(c *gin.Context) bool {
	if IsJSONPath(c.Request.URL.Path) {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

// CaptchaPayloadRequest 验证码字段，JSON 与表单通用
type CaptchaPayloadRequest struct {
	CaptchaID   string `json:"captcha_id" form:"captcha_id"`
	CaptchaCode string `json:"captcha_code" form:"captcha_code"`
}

// Verify 交给验证码服务校验；服务未配置时放行
func (r CaptchaPayloadRequest) Verify(captcha *service.CaptchaService) error {
	if captcha == nil {
		return nil
	}
	return captcha.Verify(r.CaptchaID, r.CaptchaCode)
}
