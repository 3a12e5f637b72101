package shared

import (
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"github.com/devlegal/internal/render"
	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	siteName     = "DevLegal"
	dateLayout   = "January 2, 2006"
	notFoundPage = "404.html"
	errorPage    = "500.html"
)

// Layout 所有页面共用的标量绑定
type Layout struct {
	Title    string
	Identity *service.Identity
}

// NewLayout 基于当前请求身份构建布局
func NewLayout(c *gin.Context, title string) Layout {
	return Layout{Title: title, Identity: CurrentIdentity(c)}
}

// Bind 合并布局绑定与页面绑定
func (l Layout) Bind(page render.Bindings) render.Bindings {
	out := render.Bindings{
		"title":     render.Text(l.Title),
		"site_name": render.Text(siteName),
		"year":      render.Int(int64(time.Now().Year())),
		"nav_user":  render.HTML(l.navUser()),
		"is_admin":  render.Bool(l.Identity != nil && l.Identity.IsAdmin),
	}
	for key, value := range page {
		out[key] = value
	}
	return out
}

func (l Layout) navUser() string {
	if l.Identity == nil {
		return ""
	}
	links := fmt.Sprintf(`<span class="nav-user">%s</span>`, html.EscapeString(l.Identity.Username))
	if l.Identity.IsAdmin {
		links += `<a class="nav-link" href="/admin">Admin</a>`
	}
	links += `<form class="nav-logout" method="post" action="/admin/logout"><button type="submit">Logout</button></form>`
	return links
}

// StaticView 仅含布局绑定的页面
type StaticView struct {
	Layout
	Template string
}

// TemplateName 模板名
func (v StaticView) TemplateName() string { return v.Template }

// Bindings 模板绑定
func (v StaticView) Bindings() render.Bindings { return v.Bind(nil) }

// RenderPage 渲染页面；失败时回退到 500 页
func RenderPage(c *gin.Context, renderer *render.Renderer, status int, view render.View) {
	body, err := renderer.Render(view)
	if err != nil {
		RequestLog(c).Errorw("page_render_failed", "template", view.TemplateName(), "error", err)
		RenderError(c, renderer, http.StatusInternalServerError)
		return
	}
	c.Data(status, "text/html; charset=utf-8", []byte(body))
}

// RenderError 渲染 404/500 主题错误页；错误页自身缺失时输出纯文本
func RenderError(c *gin.Context, renderer *render.Renderer, status int) {
	template := errorPage
	title := "Server Error - " + siteName
	if status == http.StatusNotFound {
		template = notFoundPage
		title = "Page Not Found - " + siteName
	}
	view := StaticView{Layout: NewLayout(c, title), Template: template}
	body, err := renderer.Render(view)
	if err != nil {
		RequestLog(c).Errorw("error_page_render_failed", "template", template, "error", err)
		c.String(status, http.StatusText(status))
		return
	}
	c.Data(status, "text/html; charset=utf-8", []byte(body))
}

// FormatDate 页面展示用日期
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}

// Pagination 上一页/下一页链接片段
func Pagination(basePath string, page, limit int, total int64) string {
	hasPrev := page > 1
	hasNext := int64(page*limit) < total
	if !hasPrev && !hasNext {
		return ""
	}
	sep := "?"
	if strings.Contains(basePath, "?") {
		sep = "&"
	}
	out := `<nav class="pagination">`
	if hasPrev {
		out += fmt.Sprintf(`<a class="prev" href="%s%spage=%d">&larr; Newer</a>`, html.EscapeString(basePath), sep, page-1)
	}
	out += fmt.Sprintf(`<span class="current">Page %d</span>`, page)
	if hasNext {
		out += fmt.Sprintf(`<a class="next" href="%s%spage=%d">Older &rarr;</a>`, html.EscapeString(basePath), sep, page+1)
	}
	return out + `</nav>`
}
