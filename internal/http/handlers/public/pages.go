package public

import (
	"net/http"

	handlershared "github.com/devlegal/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// Home 首页：最新 3 篇已发布文章；查询失败时降级为空列表
func (h *Handler) Home(c *gin.Context) {
	posts, err := h.PostService.Latest()
	if err != nil {
		handlershared.RequestLog(c).Errorw("home_latest_posts_failed", "error", err)
		posts = nil
	}
	h.renderPage(c, http.StatusOK, HomeView{
		Layout: handlershared.NewLayout(c, "DevLegal - Technology Law Experts"),
		Posts:  posts,
	})
}

// About 关于页
func (h *Handler) About(c *gin.Context) {
	h.renderPage(c, http.StatusOK, handlershared.StaticView{
		Layout:   handlershared.NewLayout(c, "About - DevLegal"),
		Template: templateAbout,
	})
}

// Services 服务页
func (h *Handler) Services(c *gin.Context) {
	h.renderPage(c, http.StatusOK, handlershared.StaticView{
		Layout:   handlershared.NewLayout(c, "Services - DevLegal"),
		Template: templateServices,
	})
}

// Contact 联系页
func (h *Handler) Contact(c *gin.Context) {
	h.renderPage(c, http.StatusOK, ContactView{
		Layout:         handlershared.NewLayout(c, "Contact - DevLegal"),
		CaptchaEnabled: h.CaptchaService.Enabled(),
	})
}

// NotFound 未匹配路由：JSON 路径返回 {error}，其余渲染 404 页
func (h *Handler) NotFound(c *gin.Context) {
	if c.Request.Method != http.MethodGet || handlershared.IsJSONPath(c.Request.URL.Path) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	h.renderNotFound(c)
}
