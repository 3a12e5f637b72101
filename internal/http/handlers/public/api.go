package public

import (
	"errors"
	"strings"

	"github.com/devlegal/internal/dto"
	handlershared "github.com/devlegal/internal/http/handlers/shared"
	"github.com/devlegal/internal/http/response"
	"github.com/devlegal/internal/service"

	"github.com/gin-gonic/gin"
)

// ListPosts 文章列表；非管理员只能看到已发布文章
func (h *Handler) ListPosts(c *gin.Context) {
	page, limit := handlershared.ParsePagination(c)
	input := service.PostListInput{
		Page:         page,
		Limit:        limit,
		CategorySlug: strings.TrimSpace(c.Query("category")),
		TagSlug:      strings.TrimSpace(c.Query("tag")),
		Search:       strings.TrimSpace(c.Query("search")),
	}

	var (
		result *service.PostPage
		err    error
	)
	if isAdmin(c) {
		input.Published = handlershared.ParseOptionalBool(c, "published")
		result, err = h.PostService.List(input)
	} else {
		result, err = h.PostService.ListPublished(input)
	}
	if err != nil {
		respondServiceError(c, err, "Failed to fetch posts")
		return
	}

	response.OK(c, gin.H{
		"posts": dto.NewPosts(result.Posts),
		"page":  result.Page,
		"limit": result.Limit,
		"total": result.Total,
	})
}

// GetPost 单篇文章；非管理员请求未发布文章返回 404
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := handlershared.ParseID(c, "id")
	if !ok {
		response.NotFound(c, "Post not found")
		return
	}
	post, err := h.PostService.GetByID(id, !isAdmin(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.NotFound(c, "Post not found")
			return
		}
		respondServiceError(c, err, "Failed to fetch post")
		return
	}
	response.OK(c, gin.H{"post": dto.NewPost(post)})
}

// ListCategories 分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondServiceError(c, err, "Failed to fetch categories")
		return
	}
	response.OK(c, gin.H{"categories": dto.NewCategories(categories)})
}

// ListTags 标签列表
func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.TagService.List()
	if err != nil {
		respondServiceError(c, err, "Failed to fetch tags")
		return
	}
	response.OK(c, gin.H{"tags": dto.NewTags(tags)})
}

// GetImageCaptcha 下发图片验证码；未启用时返回错误
func (h *Handler) GetImageCaptcha(c *gin.Context) {
	challenge, err := h.CaptchaService.Generate()
	if err != nil {
		respondServiceError(c, err, "Failed to generate captcha")
		return
	}
	response.OK(c, challenge)
}
