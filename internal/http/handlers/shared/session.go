package shared

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookie 会话 Cookie 属性
type SessionCookie struct {
	Name   string
	Secure bool
}

// Write 写入 HttpOnly 会话 Cookie
func (s SessionCookie) Write(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, token, int(ttl/time.Second), "/", "", s.Secure, true)
}

// Clear 清除会话 Cookie
func (s SessionCookie) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.Name, "", -1, "/", "", s.Secure, true)
}

// TokenFromRequest 读取会话令牌：优先 Cookie，其次 Authorization: Bearer
func (s SessionCookie) TokenFromRequest(c *gin.Context) (string, bool) {
	if value, err := c.Cookie(s.Name); err == nil && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value), true
	}
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1]), false
	}
	return "", false
}
