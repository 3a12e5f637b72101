package admin

import (
	handlershared "github.com/devlegal/internal/http/handlers/shared"
	"github.com/devlegal/internal/repository"
	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
)

// Dashboard 后台首页统计
func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.DashboardService.Stats()
	if err != nil {
		requestLog(c).Warnw("admin_dashboard_stats_failed", "error", err)
		stats = repository.DashboardStats{}
	}
	h.renderPage(c, DashboardView{
		Layout: handlershared.NewLayout(c, "Admin Dashboard"),
		Stats:  stats,
	})
}

// PostsPage 文章管理页
func (h *Handler) PostsPage(c *gin.Context) {
	page, limit := handlershared.ParsePagination(c)
	result, err := h.PostService.List(service.PostListInput{Page: page, Limit: limit})
	if err != nil {
		h.renderServerError(c, "admin_posts_page_failed", err)
		return
	}
	categories, err := h.CategoryService.List()
	if err != nil {
		h.renderServerError(c, "admin_posts_page_failed", err)
		return
	}
	tags, err := h.TagService.List()
	if err != nil {
		h.renderServerError(c, "admin_posts_page_failed", err)
		return
	}
	h.renderPage(c, PostsView{
		Layout:     handlershared.NewLayout(c, "Manage Posts"),
		Page:       result,
		Categories: categories,
		Tags:       tags,
	})
}

// CategoriesPage 分类管理页
func (h *Handler) CategoriesPage(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		h.renderServerError(c, "admin_categories_page_failed", err)
		return
	}
	h.renderPage(c, CategoriesView{
		Layout:     handlershared.NewLayout(c, "Manage Categories"),
		Categories: categories,
	})
}

// TagsPage 标签管理页
func (h *Handler) TagsPage(c *gin.Context) {
	tags, err := h.TagService.List()
	if err != nil {
		h.renderServerError(c, "admin_tags_page_failed", err)
		return
	}
	h.renderPage(c, TagsView{
		Layout: handlershared.NewLayout(c, "Manage Tags"),
		Tags:   tags,
	})
}

// CommentsPage 评论审核页
func (h *Handler) CommentsPage(c *gin.Context) {
	comments, err := h.CommentService.List(repository.CommentListFilter{})
	if err != nil {
		h.renderServerError(c, "admin_comments_page_failed", err)
		return
	}
	h.renderPage(c, CommentsView{
		Layout:   handlershared.NewLayout(c, "Manage Comments"),
		Comments: comments,
	})
}

// NewsLinksPage 新闻线索管理页
func (h *Handler) NewsLinksPage(c *gin.Context) {
	links, err := h.NewsLinkService.List()
	if err != nil {
		h.renderServerError(c, "admin_news_links_page_failed", err)
		return
	}
	h.renderPage(c, NewsLinksView{
		Layout: handlershared.NewLayout(c, "News Links"),
		Links:  links,
	})
}

// DocumentsPage 文档管理页
func (h *Handler) DocumentsPage(c *gin.Context) {
	files, err := h.UploadService.ListDocuments()
	if err != nil {
		h.renderServerError(c, "admin_documents_page_failed", err)
		return
	}
	h.renderPage(c, DocumentsView{
		Layout:   handlershared.NewLayout(c, "Documents"),
		Files:    files,
		MaxBytes: h.UploadService.MaxBytes(),
	})
}
