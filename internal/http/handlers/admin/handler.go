package admin

import (
	handlershared "github.com/devlegal/internal/http/handlers/shared"
	"github.com/devlegal/internal/provider"
)

// Handler 后台管理处理器入口
// 说明：该处理器用于后台页面、写操作 API、新闻线索与文档管理。
type Handler struct {
	*provider.Container
}

// New 创建后台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

func (h *Handler) sessionCookie() handlershared.SessionCookie {
	return handlershared.SessionCookie{
		Name:   h.Config.Session.CookieName,
		Secure: h.Config.Server.IsProduction(),
	}
}
