package public

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	handlershared "github.com/devlegal/internal/http/handlers/shared"
	"github.com/devlegal/internal/models"
	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
)

// commentFormRequest 文章页评论表单
type commentFormRequest struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Content string `form:"content" json:"content"`
	handlershared.CaptchaPayloadRequest
}

func pageFromQuery(c *gin.Context) int {
	page, _ := strconv.Atoi(strings.TrimSpace(c.Query("page")))
	page, _ = service.NormalizePage(page, 0)
	return page
}

// BlogIndex 博客列表
func (h *Handler) BlogIndex(c *gin.Context) {
	page, err := h.PostService.ListPublished(service.PostListInput{Page: pageFromQuery(c)})
	if err != nil {
		h.renderServerError(c, "blog_index_failed", err)
		return
	}
	h.renderPage(c, http.StatusOK, PostListView{
		Layout:     handlershared.NewLayout(c, "Blog - DevLegal"),
		Template:   templateBlogIndex,
		Heading:    "Blog",
		BasePath:   "/blog",
		Page:       page,
		Categories: h.sidebarCategories(c),
	})
}

// BlogPost 文章详情；未发布视为不存在，每次访问浏览数 +1
func (h *Handler) BlogPost(c *gin.Context) {
	post, err := h.PostService.ViewPublished(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.renderServerError(c, "blog_post_failed", err)
		return
	}

	comments, err := h.CommentService.VisibleForPost(post)
	if err != nil {
		handlershared.RequestLog(c).Warnw("blog_post_comments_failed", "post_id", post.ID, "error", err)
		comments = []models.Comment{}
	}

	h.renderPage(c, http.StatusOK, PostView{
		Layout:         handlershared.NewLayout(c, fmt.Sprintf("%s - DevLegal Blog", post.Title)),
		Post:           post,
		Comments:       comments,
		CommentStatus:  strings.TrimSpace(c.Query("comment")),
		CaptchaEnabled: h.CaptchaService.Enabled(),
	})
}

// BlogCategory 分类文章列表
func (h *Handler) BlogCategory(c *gin.Context) {
	category, err := h.CategoryService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.renderServerError(c, "blog_category_failed", err)
		return
	}
	page, err := h.PostService.ListPublished(service.PostListInput{Page: pageFromQuery(c), CategorySlug: category.Slug})
	if err != nil {
		h.renderServerError(c, "blog_category_posts_failed", err)
		return
	}
	h.renderPage(c, http.StatusOK, PostListView{
		Layout:      handlershared.NewLayout(c, fmt.Sprintf("%s - DevLegal Blog", category.Name)),
		Template:    templateBlogCategory,
		Heading:     category.Name,
		Description: category.Description,
		BasePath:    "/blog/category/" + url.PathEscape(category.Slug),
		Page:        page,
		Categories:  h.sidebarCategories(c),
	})
}

// BlogTag 标签文章列表（经 post_tags 过滤）
func (h *Handler) BlogTag(c *gin.Context) {
	tag, err := h.TagService.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			h.renderNotFound(c)
			return
		}
		h.renderServerError(c, "blog_tag_failed", err)
		return
	}
	page, err := h.PostService.ListPublished(service.PostListInput{Page: pageFromQuery(c), TagSlug: tag.Slug})
	if err != nil {
		h.renderServerError(c, "blog_tag_posts_failed", err)
		return
	}
	h.renderPage(c, http.StatusOK, PostListView{
		Layout:     handlershared.NewLayout(c, fmt.Sprintf("%s - DevLegal Blog", tag.Name)),
		Template:   templateBlogTag,
		Heading:    tag.Name,
		BasePath:   "/blog/tag/" + url.PathEscape(tag.Slug),
		Page:       page,
		Categories: h.sidebarCategories(c),
	})
}

// BlogSearch 按标题/正文搜索已发布文章
func (h *Handler) BlogSearch(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	view := PostListView{
		Layout:   handlershared.NewLayout(c, "Search - DevLegal Blog"),
		Template: templateBlogSearch,
		Heading:  "Search",
		Query:    query,
		BasePath: "/blog/search?q=" + url.QueryEscape(query),
	}
	if query == "" {
		h.renderPage(c, http.StatusOK, view)
		return
	}

	page, err := h.PostService.ListPublished(service.PostListInput{Page: pageFromQuery(c), Search: query})
	if err != nil {
		h.renderServerError(c, "blog_search_failed", err)
		return
	}
	view.Layout.Title = fmt.Sprintf("Search: %s - DevLegal Blog", query)
	view.Page = page
	h.renderPage(c, http.StatusOK, view)
}

// SubmitComment 访客提交评论，处理后跳回文章页并带上结果状态
func (h *Handler) SubmitComment(c *gin.Context) {
	slug := c.Param("slug")
	var req commentFormRequest
	if err := c.ShouldBind(&req); err != nil {
		h.redirectToPost(c, slug, commentStatusInvalid)
		return
	}

	err := req.Verify(h.CaptchaService)
	if err == nil {
		_, err = h.CommentService.Submit(slug, service.CommentInput{
			Name:    req.Name,
			Email:   req.Email,
			Content: req.Content,
		})
	}
	if errors.Is(err, service.ErrNotFound) {
		h.renderNotFound(c)
		return
	}
	status := resolveCommentOutcome(err)
	if status == "" {
		h.renderServerError(c, "comment_submit_failed", err)
		return
	}
	h.redirectToPost(c, slug, status)
}

func (h *Handler) redirectToPost(c *gin.Context, slug, status string) {
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("%s?comment=%s#comments", postURL(slug), url.QueryEscape(status)))
}

// sidebarCategories 侧栏分类；失败不影响主内容
func (h *Handler) sidebarCategories(c *gin.Context) []models.Category {
	categories, err := h.CategoryService.List()
	if err != nil {
		handlershared.RequestLog(c).Warnw("sidebar_categories_failed", "error", err)
		return nil
	}
	return categories
}
