package public

import "github.com/devlegal/internal/provider"

// Handler 访客侧处理器：站点页面、博客、联系表单与只读 JSON 接口
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
